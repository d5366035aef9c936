package server

import (
	"github.com/cooldogedev/prism/version"
	"github.com/google/uuid"
)

// Identity describes the player a server is discovered or dialed for.
type Identity struct {
	Username string
	UUID     uuid.UUID
	// Addr is the address the player connected from.
	Addr    string
	Version version.Version
}

// Discovery defines an interface for discovering servers for a player.
type Discovery interface {
	// Discover determines the primary server.
	Discover(identity Identity) (string, error)
	// DiscoverFallback determines the fallback server.
	DiscoverFallback(identity Identity) (string, error)
}

// StaticDiscovery implements the Discovery interface with static server addresses.
type StaticDiscovery struct {
	server         string
	fallbackServer string
}

// NewStaticDiscovery creates a new StaticDiscovery with the given server addresses.
func NewStaticDiscovery(server string, fallbackServer string) *StaticDiscovery {
	return &StaticDiscovery{
		server:         server,
		fallbackServer: fallbackServer,
	}
}

// Discover ...
func (s *StaticDiscovery) Discover(Identity) (string, error) {
	return s.server, nil
}

// DiscoverFallback ...
func (s *StaticDiscovery) DiscoverFallback(Identity) (string, error) {
	return s.fallbackServer, nil
}
