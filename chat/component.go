package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Component is a node of the canonical rich text model. Its content is, in order of precedence, a
// translation, a keybind, a score, a selector or plain text. Extra components inherit its style.
type Component struct {
	Text      string
	Translate string
	With      []Component
	Keybind   string
	Score     *Score
	Selector  string

	Style

	Insertion  string
	ClickEvent *ClickEvent
	HoverEvent *HoverEvent
	Extra      []Component
}

// Style holds the formatting of a component. Nil decorations are inherited from the parent.
type Style struct {
	Color         string
	Bold          *bool
	Italic        *bool
	Underlined    *bool
	Strikethrough *bool
	Obfuscated    *bool
}

// Score is the content of a score component.
type Score struct {
	Name      string `json:"name"`
	Objective string `json:"objective"`
	Value     string `json:"value,omitempty"`
}

// ClickEvent ...
type ClickEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// HoverEvent ...
type HoverEvent struct {
	Action string    `json:"action"`
	Value  Component `json:"value"`
}

// Text creates a plain text component.
func Text(s string) Component {
	return Component{Text: s}
}

// Translate creates a translation component.
func Translate(key string, with ...Component) Component {
	return Component{Translate: key, With: with}
}

// Bool returns a pointer to b, for use in Style.
func Bool(b bool) *bool {
	return &b
}

// jsonComponent is the wire shape of a Component.
type jsonComponent struct {
	Text          *string     `json:"text,omitempty"`
	Translate     string      `json:"translate,omitempty"`
	With          []Component `json:"with,omitempty"`
	Keybind       string      `json:"keybind,omitempty"`
	Score         *Score      `json:"score,omitempty"`
	Selector      string      `json:"selector,omitempty"`
	Color         string      `json:"color,omitempty"`
	Bold          *bool       `json:"bold,omitempty"`
	Italic        *bool       `json:"italic,omitempty"`
	Underlined    *bool       `json:"underlined,omitempty"`
	Strikethrough *bool       `json:"strikethrough,omitempty"`
	Obfuscated    *bool       `json:"obfuscated,omitempty"`
	Insertion     string      `json:"insertion,omitempty"`
	ClickEvent    *ClickEvent `json:"clickEvent,omitempty"`
	HoverEvent    *HoverEvent `json:"hoverEvent,omitempty"`
	Extra         []Component `json:"extra,omitempty"`
}

// MarshalJSON ...
func (c Component) MarshalJSON() ([]byte, error) {
	j := jsonComponent{
		Translate:     c.Translate,
		With:          c.With,
		Keybind:       c.Keybind,
		Score:         c.Score,
		Selector:      c.Selector,
		Color:         c.Color,
		Bold:          c.Bold,
		Italic:        c.Italic,
		Underlined:    c.Underlined,
		Strikethrough: c.Strikethrough,
		Obfuscated:    c.Obfuscated,
		Insertion:     c.Insertion,
		ClickEvent:    c.ClickEvent,
		HoverEvent:    c.HoverEvent,
		Extra:         c.Extra,
	}
	if c.isText() {
		j.Text = &c.Text
	}
	return json.Marshal(j)
}

// UnmarshalJSON accepts the three forms a component may take: a string, an array whose tail is
// appended to the head as extra components, or an object.
func (c *Component) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty component")
	}

	switch data[0] {
	case '"':
		*c = Component{}
		return json.Unmarshal(data, &c.Text)
	case '[':
		var list []Component
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			*c = Component{}
			return nil
		}
		*c = list[0]
		c.Extra = append(c.Extra, list[1:]...)
		return nil
	case '{':
		var j jsonComponent
		if err := json.Unmarshal(data, &j); err != nil {
			return err
		}
		*c = Component{
			Translate: j.Translate,
			With:      j.With,
			Keybind:   j.Keybind,
			Score:     j.Score,
			Selector:  j.Selector,
			Style: Style{
				Color:         j.Color,
				Bold:          j.Bold,
				Italic:        j.Italic,
				Underlined:    j.Underlined,
				Strikethrough: j.Strikethrough,
				Obfuscated:    j.Obfuscated,
			},
			Insertion:  j.Insertion,
			ClickEvent: j.ClickEvent,
			HoverEvent: j.HoverEvent,
			Extra:      j.Extra,
		}
		if j.Text != nil {
			c.Text = *j.Text
		}
		return nil
	default:
		// Numbers and booleans show up as translation arguments.
		*c = Component{Text: string(data)}
		return nil
	}
}

// ToJSON serialises the component.
func ToJSON(c Component) string {
	data, err := json.Marshal(c)
	if err != nil {
		return `{"text":""}`
	}
	return string(data)
}

// FromJSON parses a serialised component.
func FromJSON(s string) (Component, error) {
	var c Component
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return Component{}, fmt.Errorf("parse component: %w", err)
	}
	return c, nil
}

// PlainText returns the text content of the component tree without formatting or translation.
func (c Component) PlainText() string {
	var sb strings.Builder
	c.walkPlain(&sb)
	return sb.String()
}

func (c Component) walkPlain(sb *strings.Builder) {
	switch {
	case c.Translate != "":
		sb.WriteString(c.Translate)
	case c.Keybind != "":
		sb.WriteString(c.Keybind)
	case c.Score != nil:
		sb.WriteString(c.Score.Value)
	case c.Selector != "":
		sb.WriteString(c.Selector)
	default:
		sb.WriteString(c.Text)
	}
	for _, extra := range c.Extra {
		extra.walkPlain(sb)
	}
}

func (c Component) isText() bool {
	return c.Translate == "" && c.Keybind == "" && c.Score == nil && c.Selector == ""
}

// inherit returns the style of s with unset fields taken from parent.
func (s Style) inherit(parent Style) Style {
	if s.Color == "" {
		s.Color = parent.Color
	}
	if s.Bold == nil {
		s.Bold = parent.Bold
	}
	if s.Italic == nil {
		s.Italic = parent.Italic
	}
	if s.Underlined == nil {
		s.Underlined = parent.Underlined
	}
	if s.Strikethrough == nil {
		s.Strikethrough = parent.Strikethrough
	}
	if s.Obfuscated == nil {
		s.Obfuscated = parent.Obfuscated
	}
	return s
}
