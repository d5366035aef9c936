package util

import (
	"encoding/json"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/version"
)

// StatusProvider builds the response to server list pings.
type StatusProvider struct {
	motd         chat.Component
	maxPlayers   int
	translations *chat.Translations
}

// NewStatusProvider creates a StatusProvider showing motd, which may contain formatting codes.
func NewStatusProvider(motd string, maxPlayers int, translations *chat.Translations) *StatusProvider {
	return &StatusProvider{
		motd:         chat.FromLegacyText(motd),
		maxPlayers:   maxPlayers,
		translations: translations,
	}
}

type status struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description chat.Component `json:"description"`
}

// ServerStatus returns the JSON status shown to a client that pinged with the protocol id passed.
// Clients of a supported version see their own version as compatible, others are shown the range of
// supported versions.
func (s *StatusProvider) ServerStatus(protocol int32, playerCount int) ([]byte, error) {
	var st status
	st.Players.Max = s.maxPlayers
	st.Players.Online = playerCount

	v, ok := version.ByID(version.TypePC, protocol)
	if ok && v.AfterOrEq(version.Minecraft_1_7_5) {
		st.Version.Name = v.Name()
		st.Version.Protocol = v.ID()
		st.Description = chat.ConvertLegacyJSON(s.motd, v, chat.DefaultLocale, s.translations)
	} else {
		st.Version.Name = version.Minecraft_1_7_5.Name() + "-" + version.Latest.Name()
		st.Version.Protocol = version.Latest.ID()
		st.Description = s.motd
	}
	return json.Marshal(st)
}
