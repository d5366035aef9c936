package chat

import (
	"strings"

	"github.com/cooldogedev/prism/version"
)

// FormattingCode is the prefix of legacy formatting codes.
const FormattingCode = '§'

var colourCodes = map[string]byte{
	"black":        '0',
	"dark_blue":    '1',
	"dark_green":   '2',
	"dark_aqua":    '3',
	"dark_red":     '4',
	"dark_purple":  '5',
	"gold":         '6',
	"gray":         '7',
	"dark_gray":    '8',
	"blue":         '9',
	"green":        'a',
	"aqua":         'b',
	"red":          'c',
	"light_purple": 'd',
	"yellow":       'e',
	"white":        'f',
}

var codeColours = func() map[byte]string {
	m := make(map[byte]string, len(colourCodes))
	for name, code := range colourCodes {
		m[code] = name
	}
	return m
}()

// ToLegacyText flattens a component into a single string using legacy formatting codes, resolving
// translations, keybinds, scores and selectors in the locale passed. Features that have no legacy
// form, such as click and hover events, are dropped.
func ToLegacyText(c Component, locale string, tr *Translations) string {
	l := legacyWriter{locale: locale, tr: tr}
	l.write(c, Style{})
	return l.sb.String()
}

type legacyWriter struct {
	sb     strings.Builder
	locale string
	tr     *Translations
	last   Style
	styled bool
}

func (l *legacyWriter) write(c Component, parent Style) {
	style := c.Style.inherit(parent)
	if content := l.content(c, style); content != "" {
		l.writeStyled(content, style)
	}
	for _, extra := range c.Extra {
		l.write(extra, style)
	}
}

func (l *legacyWriter) content(c Component, style Style) string {
	switch {
	case c.Translate != "":
		args := make([]string, len(c.With))
		for i, arg := range c.With {
			args[i] = legacyArgument(arg, style, l.locale, l.tr)
		}
		if l.tr == nil {
			return c.Translate
		}
		return l.tr.Format(l.locale, c.Translate, args...)
	case c.Keybind != "":
		if format, ok := l.tr.Lookup(l.locale, c.Keybind); ok {
			return format
		}
		return c.Keybind
	case c.Score != nil:
		return c.Score.Value
	case c.Selector != "":
		return c.Selector
	default:
		return c.Text
	}
}

func (l *legacyWriter) writeStyled(content string, style Style) {
	l.switchTo(style)
	l.sb.WriteString(content)
}

// switchTo writes the codes that change the current style to style.
func (l *legacyWriter) switchTo(style Style) {
	if l.styled && sameStyle(l.last, style) {
		return
	}
	if l.styled && hasStyle(l.last) && !hasStyle(style) {
		l.sb.WriteRune(FormattingCode)
		l.sb.WriteByte('r')
	}
	l.writeCodes(style)
	l.last, l.styled = style, true
}

// legacyArgument renders a translation argument that is substituted into text of the style passed.
// The argument inherits that style, which is restored after it.
func legacyArgument(arg Component, style Style, locale string, tr *Translations) string {
	l := legacyWriter{locale: locale, tr: tr, last: style, styled: true}
	l.write(arg, style)
	l.switchTo(style)
	return l.sb.String()
}

func (l *legacyWriter) writeCodes(style Style) {
	// A colour code resets all decorations, so it has to come first.
	if code, ok := colourCodes[style.Color]; ok {
		l.sb.WriteRune(FormattingCode)
		l.sb.WriteByte(code)
	} else if hasDecoration(style) {
		l.sb.WriteRune(FormattingCode)
		l.sb.WriteByte('r')
	}
	decorations := [...]struct {
		set  *bool
		code byte
	}{
		{style.Obfuscated, 'k'},
		{style.Bold, 'l'},
		{style.Strikethrough, 'm'},
		{style.Underlined, 'n'},
		{style.Italic, 'o'},
	}
	for _, d := range decorations {
		if d.set != nil && *d.set {
			l.sb.WriteRune(FormattingCode)
			l.sb.WriteByte(d.code)
		}
	}
}

// FromLegacyText parses a string with legacy formatting codes into a component tree. Unknown codes
// are dropped.
func FromLegacyText(s string) Component {
	if !strings.ContainsRune(s, FormattingCode) {
		return Text(s)
	}

	var (
		root  Component
		style Style
		sb    strings.Builder
	)
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		root.Extra = append(root.Extra, Component{Text: sb.String(), Style: style})
		sb.Reset()
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != FormattingCode || i+1 >= len(runes) {
			sb.WriteRune(runes[i])
			continue
		}
		i++
		code := byte(runes[i])
		if runes[i] >= 'A' && runes[i] <= 'Z' {
			code += 'a' - 'A'
		}
		flush()
		if colour, ok := codeColours[code]; ok {
			style = Style{Color: colour}
			continue
		}
		switch code {
		case 'k':
			style.Obfuscated = Bool(true)
		case 'l':
			style.Bold = Bool(true)
		case 'm':
			style.Strikethrough = Bool(true)
		case 'n':
			style.Underlined = Bool(true)
		case 'o':
			style.Italic = Bool(true)
		case 'r':
			style = Style{}
		}
	}
	flush()
	return root
}

// ConvertLegacyJSON downgrades a component for a client of version v, which renders JSON chat but
// may lack some of its features. Keybinds, translation keys the client does not know, scores and
// selectors are resolved in locale; insertions and events the client cannot handle are dropped.
// The component passed is not modified.
func ConvertLegacyJSON(c Component, v version.Version, locale string, tr *Translations) Component {
	switch {
	case c.Keybind != "" && v.Before(version.Minecraft_1_12):
		text := c.Keybind
		if format, ok := tr.Lookup(locale, c.Keybind); ok {
			text = format
		}
		c.Keybind, c.Text = "", text
	case c.Translate != "" && tr != nil && !tr.KnownBy(v, c.Translate):
		args := make([]string, len(c.With))
		for i, arg := range c.With {
			args[i] = legacyArgument(ConvertLegacyJSON(arg, v, locale, tr), c.Style, locale, tr)
		}
		c.Text = tr.Format(locale, c.Translate, args...)
		c.Translate, c.With = "", nil
	case c.Translate != "" && len(c.With) > 0:
		with := make([]Component, len(c.With))
		for i, arg := range c.With {
			with[i] = ConvertLegacyJSON(arg, v, locale, tr)
		}
		c.With = with
	}

	if v.Before(version.Minecraft_1_8) {
		switch {
		case c.Score != nil:
			c.Text, c.Score = c.Score.Value, nil
		case c.Selector != "":
			c.Text, c.Selector = c.Selector, ""
		}
		c.Insertion = ""
	}

	if c.ClickEvent != nil && !clickSupported(c.ClickEvent.Action, v) {
		c.ClickEvent = nil
	}
	if c.HoverEvent != nil {
		if !hoverSupported(c.HoverEvent.Action, v) {
			c.HoverEvent = nil
		} else {
			hover := *c.HoverEvent
			hover.Value = ConvertLegacyJSON(hover.Value, v, locale, tr)
			c.HoverEvent = &hover
		}
	}

	if len(c.Extra) > 0 {
		extra := make([]Component, len(c.Extra))
		for i, e := range c.Extra {
			extra[i] = ConvertLegacyJSON(e, v, locale, tr)
		}
		c.Extra = extra
	}
	return c
}

func clickSupported(action string, v version.Version) bool {
	switch action {
	case "open_url", "run_command", "suggest_command":
		return true
	case "change_page":
		return v.AfterOrEq(version.Minecraft_1_8)
	}
	return false
}

func hoverSupported(action string, v version.Version) bool {
	switch action {
	case "show_text", "show_item":
		return true
	case "show_entity":
		return v.AfterOrEq(version.Minecraft_1_8)
	case "show_achievement":
		return v.Before(version.Minecraft_1_12)
	}
	return false
}

func sameStyle(a, b Style) bool {
	return a.Color == b.Color &&
		flag(a.Bold) == flag(b.Bold) &&
		flag(a.Italic) == flag(b.Italic) &&
		flag(a.Underlined) == flag(b.Underlined) &&
		flag(a.Strikethrough) == flag(b.Strikethrough) &&
		flag(a.Obfuscated) == flag(b.Obfuscated)
}

func hasStyle(s Style) bool {
	return s.Color != "" || hasDecoration(s)
}

func hasDecoration(s Style) bool {
	return flag(s.Bold) || flag(s.Italic) || flag(s.Underlined) || flag(s.Strikethrough) || flag(s.Obfuscated)
}

func flag(b *bool) bool {
	return b != nil && *b
}
