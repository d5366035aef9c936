package remap

import (
	"testing"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/item"
	"github.com/cooldogedev/prism/version"
)

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	if id, data := r.Table(version.Minecraft_1_8).Apply(251, 3); id != 159 || data != 3 {
		t.Fatalf("concrete on 1.8 = %d:%d, want 159:3", id, data)
	}
	if id, data := r.Table(version.Minecraft_1_12_2).Apply(251, 3); id != 251 || data != 3 {
		t.Fatalf("concrete on 1.12.2 should be untouched, got %d:%d", id, data)
	}
	if id, data := r.Table(version.Minecraft_1_9).Apply(214, 0); id != 35 || data != 14 {
		t.Fatalf("nether wart block on 1.9 = %d:%d, want 35:14", id, data)
	}
	if id, data := r.Table(version.Minecraft_1_7_10).Apply(1, 3); id != 1 || data != 0 {
		t.Fatalf("diorite on 1.7.10 = %d:%d, want 1:0", id, data)
	}
	if id, data := r.Table(version.Minecraft_1_8).Apply(1, 3); id != 1 || data != 3 {
		t.Fatalf("diorite on 1.8 should be untouched, got %d:%d", id, data)
	}
	if r.Table(version.Minecraft_1_12_2).Len() != 0 {
		t.Fatalf("latest version should have no entries")
	}
}

func TestBuilderZeroPair(t *testing.T) {
	r := NewBuilder().Register(Pair{}, Pair{ID: 5, Data: KeepData}, version.Minecraft_1_8).Build()
	if id, data := r.Table(version.Minecraft_1_8).Apply(0, 0); id != 5 || data != 0 {
		t.Fatalf("zero pair = %d:%d, want 5:0", id, data)
	}
	if _, ok := r.Table(version.Minecraft_1_9).Remap(0, 0); ok {
		t.Fatalf("zero pair should not be remapped for 1.9")
	}

	var nilRegistry *Registry
	if nilRegistry.Table(version.Minecraft_1_8).Len() != 0 {
		t.Fatalf("nil registry should return an empty table")
	}
}

func TestPotionTransformers(t *testing.T) {
	tr := DefaultTransformers(chat.DefaultTranslations())

	stack := item.Stack{ID: itemSplashPotion, Amount: 1, Tag: item.Tag{"Potion": "minecraft:swiftness"}}
	stack = tr.Clientbound(version.Minecraft_1_8, chat.DefaultLocale, stack.ID, stack)
	if stack.ID != itemPotion || stack.Data != 8194|splashPotionFlag || stack.Tag != nil {
		t.Fatalf("unexpected legacy potion %v", stack)
	}

	stack = tr.Serverbound(version.Minecraft_1_8, chat.DefaultLocale, stack)
	if stack.ID != itemSplashPotion || stack.Data != 0 || stack.Tag.String("Potion") != "minecraft:swiftness" {
		t.Fatalf("unexpected canonical potion %v", stack)
	}

	modern := item.Stack{ID: itemPotion, Amount: 1, Tag: item.Tag{"Potion": "minecraft:healing"}}
	if got := tr.Clientbound(version.Minecraft_1_9, chat.DefaultLocale, modern.ID, modern.Clone()); !got.Equal(modern) {
		t.Fatalf("potion on 1.9 should be untouched, got %v", got)
	}
}

func TestBookTransformers(t *testing.T) {
	tr := DefaultTransformers(chat.DefaultTranslations())

	book := item.Stack{ID: itemWrittenBook, Amount: 1, Tag: item.Tag{"pages": []any{`{"text":"hi","color":"red"}`}}}
	book = tr.Clientbound(version.Minecraft_1_7_10, chat.DefaultLocale, book.ID, book)
	if page := book.Tag["pages"].([]any)[0]; page != "§chi" {
		t.Fatalf("legacy page = %q, want %q", page, "§chi")
	}

	book = tr.Serverbound(version.Minecraft_1_7_10, chat.DefaultLocale, book)
	c, err := chat.FromJSON(book.Tag["pages"].([]any)[0].(string))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	if c.PlainText() != "hi" || c.Extra[0].Color != "red" {
		t.Fatalf("unexpected page %#v", c)
	}
}
