package util

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cooldogedev/prism/version"
)

// Opts holds the settings of a proxy.
type Opts struct {
	// Addr is the address to listen on.
	Addr string `yaml:"addr" toml:"addr"`
	// Token is the authentication token that Prism uses to authenticate with servers.
	// When making requests to servers, Prism sends this token to the server for validation.
	Token string `yaml:"token" toml:"token"`
	// LatencyInterval is the interval at which the latency of the connection is updated in milliseconds.
	// The lower the interval, the more accurate the latency will be, but the more bandwidth it will use.
	LatencyInterval int64 `yaml:"latency_interval" toml:"latency_interval"`
	// AutoLogin connects accepted sessions to a server right away.
	AutoLogin bool `yaml:"auto_login" toml:"auto_login"`
	// NativeVersion is the name of the version spoken by the servers, such as 1.12.2.
	NativeVersion string `yaml:"native_version" toml:"native_version"`
	// DefaultLocale is the locale assumed for clients until they report their own.
	DefaultLocale string `yaml:"default_locale" toml:"default_locale"`
	// CompressionThreshold is the smallest frame sent to servers that is compressed. Zero disables
	// compression.
	CompressionThreshold int `yaml:"compression_threshold" toml:"compression_threshold"`
	// DialTimeout bounds connecting to a server in milliseconds.
	DialTimeout int64 `yaml:"dial_timeout" toml:"dial_timeout"`
	// Transport is the transport used to connect to servers: tcp, quic, kcp or spectral.
	Transport string `yaml:"transport" toml:"transport"`
	// MaxPlayers is shown in the server list.
	MaxPlayers int `yaml:"max_players" toml:"max_players"`
	// MOTD is the description shown in the server list. It may contain formatting codes.
	MOTD string `yaml:"motd" toml:"motd"`
}

// DefaultOpts ...
func DefaultOpts() *Opts {
	return &Opts{
		Addr:                 ":25565",
		LatencyInterval:      3000,
		AutoLogin:            true,
		NativeVersion:        version.Latest.Name(),
		DefaultLocale:        "en_us",
		CompressionThreshold: 256,
		DialTimeout:          5000,
		Transport:            "tcp",
		MaxPlayers:           100,
		MOTD:                 "A Prism proxy",
	}
}

// LoadOpts reads the TOML file at path. Keys missing from the file keep their default values.
func LoadOpts(path string) (*Opts, error) {
	opts := DefaultOpts()
	if _, err := toml.DecodeFile(path, opts); err != nil {
		return nil, fmt.Errorf("load opts: %w", err)
	}
	opts.DefaultLocale = strings.ToLower(strings.TrimSpace(opts.DefaultLocale))
	if _, err := opts.Version(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Version returns the native version named by the options.
func (o *Opts) Version() (version.Version, error) {
	v, ok := version.ByName(o.NativeVersion)
	if !ok {
		return version.Version{}, fmt.Errorf("unknown native version %q", o.NativeVersion)
	}
	return v, nil
}
