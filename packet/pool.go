package packet

import "github.com/cooldogedev/prism/version"

var (
	clientBound = map[Kind]func() ClientBound{
		KindChat:        func() ClientBound { return &Chat{} },
		KindDisconnect:  func() ClientBound { return &Disconnect{} },
		KindTitle:       func() ClientBound { return &Title{} },
		KindOpenWindow:  func() ClientBound { return &OpenWindow{} },
		KindCloseWindow: func() ClientBound { return &CloseWindow{} },
		KindSetSlot:     func() ClientBound { return &SetSlot{} },
		KindWindowItems: func() ClientBound { return &WindowItems{} },
	}
	serverBound = map[Kind]func() ServerBound{
		KindClientChat:              func() ServerBound { return &ClientChat{} },
		KindClientSettings:          func() ServerBound { return &ClientSettings{} },
		KindClickWindow:             func() ServerBound { return &ClickWindow{} },
		KindCreativeInventoryAction: func() ServerBound { return &CreativeInventoryAction{} },
		KindServerCloseWindow:       func() ServerBound { return &ServerCloseWindow{} },
	}
)

// ClientBoundPool maps the packet ids of one version to factories of client bound packets.
type ClientBoundPool map[int32]func() ClientBound

// ServerBoundPool maps the packet ids of one version to factories of server bound packets.
type ServerBoundPool map[int32]func() ServerBound

// NewClientBoundPool creates the pool of client bound packets of v.
func NewClientBoundPool(v version.Version) ClientBoundPool {
	pool := ClientBoundPool{}
	for kind, factory := range clientBound {
		if id, ok := ID(kind, v); ok {
			pool[id] = factory
		}
	}
	return pool
}

// NewServerBoundPool creates the pool of server bound packets of v.
func NewServerBoundPool(v version.Version) ServerBoundPool {
	pool := ServerBoundPool{}
	for kind, factory := range serverBound {
		if id, ok := ID(kind, v); ok {
			pool[id] = factory
		}
	}
	return pool
}

var (
	clientBoundPools []ClientBoundPool
	serverBoundPools []ServerBoundPool
)

func init() {
	for _, v := range version.All() {
		clientBoundPools = append(clientBoundPools, NewClientBoundPool(v))
		serverBoundPools = append(serverBoundPools, NewServerBoundPool(v))
	}
}

// ClientBoundPoolFor returns the pool of client bound packets of v built at init. The pool returned
// is shared and must not be modified. It returns nil for unknown versions.
func ClientBoundPoolFor(v version.Version) ClientBoundPool {
	if i := v.Ordinal(); i >= 0 && i < len(clientBoundPools) {
		return clientBoundPools[i]
	}
	return nil
}

// ServerBoundPoolFor returns the pool of server bound packets of v built at init. The pool returned
// is shared and must not be modified. It returns nil for unknown versions.
func ServerBoundPoolFor(v version.Version) ServerBoundPool {
	if i := v.Ordinal(); i >= 0 && i < len(serverBoundPools) {
		return serverBoundPools[i]
	}
	return nil
}
