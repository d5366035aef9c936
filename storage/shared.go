package storage

import (
	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/item"
	"github.com/cooldogedev/prism/remap"
	"github.com/cooldogedev/prism/version"
)

// SharedConfig holds the tables a Shared storage is built from. Nil fields are filled with the
// stock tables.
type SharedConfig struct {
	// NativeVersion is the version spoken by the server. It defaults to version.Latest.
	NativeVersion version.Version
	// Registry is the item id/data remapping registry.
	Registry *remap.Registry
	// Transformers are the per item type transformers.
	Transformers *remap.Transformers
	// Translations are used to resolve text older clients cannot localise themselves.
	Translations *chat.Translations
	// Observer is notified of items written to clients. It is optional.
	Observer item.WriteObserver
}

// Shared is the process wide storage read by all connections. It is fully built by NewShared and
// never modified afterwards, so it may be read concurrently without synchronisation.
type Shared struct {
	native       version.Version
	registry     *remap.Registry
	transformers *remap.Transformers
	translations *chat.Translations
	observer     item.WriteObserver
}

// NewShared builds a Shared storage from conf.
func NewShared(conf SharedConfig) *Shared {
	if !conf.NativeVersion.Known() {
		conf.NativeVersion = version.Latest
	}
	if conf.Translations == nil {
		conf.Translations = chat.DefaultTranslations()
	}
	if conf.Registry == nil {
		conf.Registry = remap.NewDefaultRegistry()
	}
	if conf.Transformers == nil {
		conf.Transformers = remap.DefaultTransformers(conf.Translations)
	}
	return &Shared{
		native:       conf.NativeVersion,
		registry:     conf.Registry,
		transformers: conf.Transformers,
		translations: conf.Translations,
		observer:     conf.Observer,
	}
}

// NativeVersion returns the version spoken by the server.
func (s *Shared) NativeVersion() version.Version {
	return s.native
}

// Registry ...
func (s *Shared) Registry() *remap.Registry {
	return s.registry
}

// Transformers ...
func (s *Shared) Transformers() *remap.Transformers {
	return s.transformers
}

// Translations ...
func (s *Shared) Translations() *chat.Translations {
	return s.translations
}

// Observer returns the item write observer, or nil if none is registered.
func (s *Shared) Observer() item.WriteObserver {
	return s.observer
}
