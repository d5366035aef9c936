package session

import "github.com/cooldogedev/prism/packet"

// Context is passed to every Processor hook. A hook cancels the action it was called for by calling
// Cancel.
type Context struct {
	cancelled bool
}

// NewContext returns a Context that is not cancelled.
func NewContext() *Context {
	return &Context{}
}

// Cancel cancels the action.
func (c *Context) Cancel() {
	c.cancelled = true
}

// Cancelled ...
func (c *Context) Cancelled() bool {
	return c.cancelled
}

// Processor observes the packets of a session and its transfers. Hooks are called from the goroutine
// that handles the direction of the packet, so they must not block for long.
type Processor interface {
	// ProcessServer is called for every packet read from the server, before it is encoded for the
	// client. The packet may be modified.
	ProcessServer(ctx *Context, pk packet.ClientBound)
	// ProcessClient is called for every packet read from the client after it was handled, before it
	// is encoded for the server.
	ProcessClient(ctx *Context, pk packet.ServerBound)
	// ProcessPreTransfer is called before the session is transferred. The target may be changed.
	ProcessPreTransfer(ctx *Context, origin *string, target *string)
	// ProcessPostTransfer is called after the session was transferred.
	ProcessPostTransfer(origin string, target string)
	// ProcessTransferFailure is called when dialing the target of a transfer failed.
	ProcessTransferFailure(origin string, target string, err error)
	// ProcessDisconnection is called once when the session closes.
	ProcessDisconnection()
}

// NopProcessor implements Processor without doing anything.
type NopProcessor struct{}

// ProcessServer ...
func (NopProcessor) ProcessServer(*Context, packet.ClientBound) {}

// ProcessClient ...
func (NopProcessor) ProcessClient(*Context, packet.ServerBound) {}

// ProcessPreTransfer ...
func (NopProcessor) ProcessPreTransfer(*Context, *string, *string) {}

// ProcessPostTransfer ...
func (NopProcessor) ProcessPostTransfer(string, string) {}

// ProcessTransferFailure ...
func (NopProcessor) ProcessTransferFailure(string, string, error) {}

// ProcessDisconnection ...
func (NopProcessor) ProcessDisconnection() {}
