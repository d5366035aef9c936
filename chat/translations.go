package chat

import (
	"strconv"
	"strings"

	"github.com/cooldogedev/prism/version"
)

// DefaultLocale is the locale used when a client has not sent its settings yet, and the fallback for
// keys missing from a locale.
const DefaultLocale = "en_us"

// Translations holds translation tables per locale and the version each translation key was
// introduced in. It is built once and must not be modified after being handed to shared storage.
type Translations struct {
	tables map[string]map[string]string
	since  map[string]version.Version
}

// NewTranslations creates an empty set of translations.
func NewTranslations() *Translations {
	return &Translations{
		tables: make(map[string]map[string]string),
		since:  make(map[string]version.Version),
	}
}

// Register adds entries to the table of a locale. Locales are matched case-insensitively.
func (t *Translations) Register(locale string, entries map[string]string) {
	locale = strings.ToLower(locale)
	table, ok := t.tables[locale]
	if !ok {
		table = make(map[string]string, len(entries))
		t.tables[locale] = table
	}
	for k, v := range entries {
		table[k] = v
	}
}

// Introduce records that clients before since cannot localise the keys passed themselves.
func (t *Translations) Introduce(since version.Version, keys ...string) {
	for _, key := range keys {
		t.since[key] = since
	}
}

// KnownBy reports whether a client of version v can localise key on its own. Keys without a
// recorded introduction version are assumed to be known by every client.
func (t *Translations) KnownBy(v version.Version, key string) bool {
	since, ok := t.since[key]
	if !ok {
		return true
	}
	return v.AfterOrEq(since)
}

// Lookup returns the format string of key in locale, falling back to DefaultLocale.
func (t *Translations) Lookup(locale, key string) (string, bool) {
	if t == nil {
		return "", false
	}
	if table, ok := t.tables[strings.ToLower(locale)]; ok {
		if format, ok := table[key]; ok {
			return format, true
		}
	}
	format, ok := t.tables[DefaultLocale][key]
	return format, ok
}

// Format resolves key in locale and substitutes args. Missing keys resolve to the key itself.
func (t *Translations) Format(locale, key string, args ...string) string {
	format, ok := t.Lookup(locale, key)
	if !ok {
		return key
	}
	return substitute(format, args)
}

// substitute replaces %s, %d and %n$s placeholders with args. %% is a literal percent sign.
func substitute(format string, args []string) string {
	if !strings.Contains(format, "%") {
		return format
	}

	var sb strings.Builder
	next := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			sb.WriteByte(c)
			continue
		}

		rest := format[i+1:]
		switch {
		case rest[0] == '%':
			sb.WriteByte('%')
			i++
		case rest[0] == 's' || rest[0] == 'd':
			if next < len(args) {
				sb.WriteString(args[next])
			}
			next++
			i++
		default:
			end := strings.IndexByte(rest, '$')
			if end <= 0 || end+1 >= len(rest) {
				sb.WriteByte(c)
				continue
			}
			index, err := strconv.Atoi(rest[:end])
			if err != nil {
				sb.WriteByte(c)
				continue
			}
			if index >= 1 && index <= len(args) {
				sb.WriteString(args[index-1])
			}
			i += end + 2
		}
	}
	return sb.String()
}

// DefaultTranslations returns the translations shipped with prism.
func DefaultTranslations() *Translations {
	t := NewTranslations()
	t.Register(DefaultLocale, map[string]string{
		"chat.type.text":                  "<%s> %s",
		"chat.type.announcement":          "[%s] %s",
		"chat.type.emote":                 "* %s %s",
		"chat.type.admin":                 "[%s: %s]",
		"chat.type.advancement.task":      "%s has made the advancement %s",
		"chat.type.advancement.challenge": "%s has completed the challenge %s",
		"chat.type.advancement.goal":      "%s has reached the goal %s",
		"multiplayer.player.joined":       "%s joined the game",
		"multiplayer.player.left":         "%s left the game",
		"multiplayer.disconnect.kicked":   "Kicked by an operator",
		"death.attack.flyIntoWall":        "%1$s experienced kinetic energy",
		"death.attack.hotFloor":           "%1$s discovered floor was lava",
		"death.attack.cramming":           "%1$s was squished too much",
		"key.jump":                        "Space",
		"key.sneak":                       "Left Shift",
		"key.inventory":                   "E",
		"key.drop":                        "Q",
		"key.chat":                        "T",
		"key.advancements":                "L",
	})
	t.Register("de_de", map[string]string{
		"chat.type.text":                "<%s> %s",
		"chat.type.advancement.task":    "%s hat den Fortschritt %s erzielt",
		"multiplayer.player.joined":     "%s hat das Spiel betreten",
		"multiplayer.player.left":       "%s hat das Spiel verlassen",
		"multiplayer.disconnect.kicked": "Von einem Operator gekickt",
		"death.attack.flyIntoWall":      "%1$s erfuhr kinetische Energie",
		"key.jump":                      "Leertaste",
		"key.sneak":                     "Linke Umschalttaste",
		"key.inventory":                 "E",
	})
	t.Introduce(version.Minecraft_1_9, "death.attack.flyIntoWall")
	t.Introduce(version.Minecraft_1_10, "death.attack.hotFloor")
	t.Introduce(version.Minecraft_1_11, "death.attack.cramming")
	t.Introduce(version.Minecraft_1_12,
		"chat.type.advancement.task",
		"chat.type.advancement.challenge",
		"chat.type.advancement.goal",
	)
	return t
}
