package storage

import (
	"testing"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/version"
)

func TestLocalDefaults(t *testing.T) {
	l := NewLocal()
	if l.Locale() != chat.DefaultLocale {
		t.Fatalf("unexpected default locale %q", l.Locale())
	}
	l.SetLocale("de_DE")
	if l.Locale() != "de_de" {
		t.Fatalf("locale not normalised: %q", l.Locale())
	}
	l.SetLocale("")
	if l.Locale() != "de_de" {
		t.Fatalf("empty locale must be ignored")
	}
}

func TestLocalWindows(t *testing.T) {
	l := NewLocal()
	l.OpenWindow(3, "minecraft:chest")
	if !l.WindowOpen(3) {
		t.Fatalf("window 3 should be open")
	}
	if typ, _ := l.WindowType(3); typ != "minecraft:chest" {
		t.Fatalf("unexpected window type %q", typ)
	}
	l.CloseWindow(3)
	if l.WindowOpen(3) {
		t.Fatalf("window 3 should be closed")
	}

	l.OpenWindow(1, "minecraft:furnace")
	l.OpenWindow(2, "minecraft:chest")
	var count int
	l.Windows(func(int32) bool {
		count++
		return true
	})
	if count != 2 {
		t.Fatalf("expected two windows, got %d", count)
	}
	l.ClearWindows()
	if l.WindowOpen(1) || l.WindowOpen(2) {
		t.Fatalf("windows should be cleared")
	}
}

func TestMissingTranslationReportedOnce(t *testing.T) {
	l := NewLocal()
	if !l.MissingTranslation("some.key") {
		t.Fatalf("first report should return true")
	}
	if l.MissingTranslation("some.key") {
		t.Fatalf("second report should return false")
	}
}

func TestSharedDefaults(t *testing.T) {
	s := NewShared(SharedConfig{})
	if s.NativeVersion() != version.Latest {
		t.Fatalf("unexpected native version %v", s.NativeVersion())
	}
	if s.Registry() == nil || s.Transformers() == nil || s.Translations() == nil {
		t.Fatalf("stock tables should be filled in")
	}
	if s.Observer() != nil {
		t.Fatalf("observer should be optional")
	}
	if s.Registry().Table(version.Minecraft_1_11).Len() == 0 {
		t.Fatalf("stock registry should remap items for 1.11")
	}
}
