package util

import (
	"encoding/json"
	"testing"

	"github.com/cooldogedev/prism/version"
)

func TestServerStatus(t *testing.T) {
	p := NewStatusProvider("§aHello", 20, nil)

	b, err := p.ServerStatus(version.Minecraft_1_8.ID(), 3)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var st struct {
		Version struct {
			Name     string `json:"name"`
			Protocol int32  `json:"protocol"`
		} `json:"version"`
		Players struct {
			Max    int `json:"max"`
			Online int `json:"online"`
		} `json:"players"`
		Description json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(b, &st); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	if st.Version.Name != "1.8" || st.Version.Protocol != 47 {
		t.Fatalf("unexpected version %+v", st.Version)
	}
	if st.Players.Max != 20 || st.Players.Online != 3 {
		t.Fatalf("unexpected players %+v", st.Players)
	}
	if len(st.Description) == 0 {
		t.Fatalf("missing description in %s", b)
	}

	b, err = p.ServerStatus(9999, 0)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if err := json.Unmarshal(b, &st); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	if st.Version.Protocol != version.Latest.ID() || st.Version.Name != "1.7.5-1.12.2" {
		t.Fatalf("unknown protocols should see the supported range, got %+v", st.Version)
	}
}
