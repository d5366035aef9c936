package chat

import (
	"testing"

	"github.com/cooldogedev/prism/version"
)

func TestJSONForms(t *testing.T) {
	c, err := FromJSON(`["a",{"text":"b","bold":true}]`)
	if err != nil {
		t.Fatalf("parse array: %v", err)
	}
	if c.Text != "a" || len(c.Extra) != 1 || !flag(c.Extra[0].Bold) {
		t.Fatalf("unexpected component %#v", c)
	}
	if c.PlainText() != "ab" {
		t.Fatalf("plain text = %q", c.PlainText())
	}

	if c, err := FromJSON(`"plain"`); err != nil || c.Text != "plain" {
		t.Fatalf("parse string: %#v (%v)", c, err)
	}
	if _, err := FromJSON(`{"text":`); err == nil {
		t.Fatalf("expected malformed json to fail")
	}

	if s := ToJSON(Text("hi")); s != `{"text":"hi"}` {
		t.Fatalf("ToJSON = %s", s)
	}
	if s := ToJSON(Translate("key.jump")); s != `{"translate":"key.jump"}` {
		t.Fatalf("ToJSON = %s", s)
	}
}

func TestLegacyText(t *testing.T) {
	c := Component{Text: "a", Style: Style{Color: "red"}, Extra: []Component{{Text: "b", Style: Style{Bold: Bool(true)}}}}
	if s := ToLegacyText(c, DefaultLocale, nil); s != "§ca§c§lb" {
		t.Fatalf("legacy text = %q", s)
	}
	if s := ToLegacyText(Text("plain"), DefaultLocale, nil); s != "plain" {
		t.Fatalf("legacy text = %q", s)
	}

	parsed := FromLegacyText("§chi§r there")
	if parsed.PlainText() != "hi there" {
		t.Fatalf("plain text = %q", parsed.PlainText())
	}
	if parsed.Extra[0].Color != "red" || parsed.Extra[1].Color != "" {
		t.Fatalf("unexpected styles %#v", parsed.Extra)
	}
	if FromLegacyText("plain").Text != "plain" {
		t.Fatalf("text without codes should stay a single component")
	}
}

func TestLegacyTextTranslationArgumentStyle(t *testing.T) {
	tr := NewTranslations()
	tr.Register("en_us", map[string]string{"game.won": "%s wins"})
	steve := Component{Text: "Steve", Style: Style{Bold: Bool(true)}}

	c := Component{Translate: "game.won", With: []Component{steve}, Style: Style{Color: "red"}}
	if s := ToLegacyText(c, DefaultLocale, tr); s != "§c§c§lSteve§c wins" {
		t.Fatalf("text after the argument should be red again, got %q", s)
	}

	c = Component{Translate: "game.won", With: []Component{steve}}
	if s := ToLegacyText(c, DefaultLocale, tr); s != "§r§lSteve§r wins" {
		t.Fatalf("text after the argument should be unstyled again, got %q", s)
	}
}

func TestTranslations(t *testing.T) {
	tr := DefaultTranslations()

	if s := tr.Format("en_us", "death.attack.flyIntoWall", "Steve"); s != "Steve experienced kinetic energy" {
		t.Fatalf("format = %q", s)
	}
	if s := tr.Format("DE_DE", "multiplayer.player.joined", "Steve"); s != "Steve hat das Spiel betreten" {
		t.Fatalf("format = %q", s)
	}
	if s, ok := tr.Lookup("de_de", "chat.type.emote"); !ok || s != "* %s %s" {
		t.Fatalf("lookup should fall back to en_us, got %q", s)
	}
	if s := tr.Format("en_us", "missing.key"); s != "missing.key" {
		t.Fatalf("missing key = %q", s)
	}
	if s := substitute("%2$s %1$s 100%%", []string{"a", "b"}); s != "b a 100%" {
		t.Fatalf("substitute = %q", s)
	}
	if tr.KnownBy(version.Minecraft_1_8, "death.attack.flyIntoWall") || !tr.KnownBy(version.Minecraft_1_12, "death.attack.flyIntoWall") {
		t.Fatalf("unexpected KnownBy results")
	}
}

func TestConvertLegacyJSON(t *testing.T) {
	tr := DefaultTranslations()

	death := Translate("death.attack.flyIntoWall", Text("Steve"))
	if c := ConvertLegacyJSON(death, version.Minecraft_1_8, DefaultLocale, tr); c.Translate != "" || c.Text != "Steve experienced kinetic energy" {
		t.Fatalf("unexpected conversion %#v", c)
	}
	if c := ConvertLegacyJSON(death, version.Minecraft_1_12_2, DefaultLocale, tr); c.Translate != "death.attack.flyIntoWall" {
		t.Fatalf("known key should be kept, got %#v", c)
	}
	if death.Translate == "" {
		t.Fatalf("input must not be modified")
	}

	if c := ConvertLegacyJSON(Component{Keybind: "key.jump"}, version.Minecraft_1_8, "de_de", tr); c.Text != "Leertaste" || c.Keybind != "" {
		t.Fatalf("unexpected keybind conversion %#v", c)
	}

	events := Component{
		Text:       "click",
		ClickEvent: &ClickEvent{Action: "change_page", Value: "2"},
		HoverEvent: &HoverEvent{Action: "show_entity", Value: Text("e")},
		Insertion:  "ins",
	}
	c := ConvertLegacyJSON(events, version.Minecraft_1_7_10, DefaultLocale, tr)
	if c.ClickEvent != nil || c.HoverEvent != nil || c.Insertion != "" {
		t.Fatalf("unsupported events should be dropped, got %#v", c)
	}
	c = ConvertLegacyJSON(events, version.Minecraft_1_8, DefaultLocale, tr)
	if c.ClickEvent == nil || c.HoverEvent == nil || c.Insertion != "ins" {
		t.Fatalf("supported events should be kept, got %#v", c)
	}
}
