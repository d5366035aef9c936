package storage

import (
	"strings"

	"github.com/cooldogedev/prism/chat"
	"github.com/scylladb/go-set/i32set"
	"github.com/scylladb/go-set/strset"
)

// Local is the storage of a single connection. It is owned by the goroutines of that connection,
// which never process two packets at the same time, and is therefore not synchronised.
type Local struct {
	locale string

	windows             *i32set.Set
	windowTypes         map[int32]string
	missingTranslations *strset.Set
}

// NewLocal creates the storage of a new connection. The locale defaults to chat.DefaultLocale until
// the client sends its settings.
func NewLocal() *Local {
	return &Local{
		locale:              chat.DefaultLocale,
		windows:             i32set.New(),
		windowTypes:         make(map[int32]string),
		missingTranslations: strset.New(),
	}
}

// Locale returns the locale of the connection.
func (l *Local) Locale() string {
	return l.locale
}

// SetLocale sets the locale of the connection. Locales are stored lower-case.
func (l *Local) SetLocale(locale string) {
	if locale == "" {
		return
	}
	l.locale = strings.ToLower(locale)
}

// OpenWindow records a window the client was told to open.
func (l *Local) OpenWindow(id int32, typ string) {
	l.windows.Add(id)
	l.windowTypes[id] = typ
}

// CloseWindow forgets a window.
func (l *Local) CloseWindow(id int32) {
	l.windows.Remove(id)
	delete(l.windowTypes, id)
}

// WindowOpen reports whether the window with the id passed is open.
func (l *Local) WindowOpen(id int32) bool {
	return l.windows.Has(id)
}

// WindowType returns the type the window with the id passed was opened with.
func (l *Local) WindowType(id int32) (string, bool) {
	typ, ok := l.windowTypes[id]
	return typ, ok
}

// Windows calls fn for every open window until fn returns false.
func (l *Local) Windows(fn func(id int32) bool) {
	l.windows.Each(fn)
}

// ClearWindows forgets all windows.
func (l *Local) ClearWindows() {
	l.windows.Clear()
	clear(l.windowTypes)
}

// MissingTranslation records that key could not be resolved for this connection. It returns true the
// first time a key is recorded, so that callers may report it once per connection.
func (l *Local) MissingTranslation(key string) bool {
	if l.missingTranslations.Has(key) {
		return false
	}
	l.missingTranslations.Add(key)
	return true
}
