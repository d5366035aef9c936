package remap

import (
	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/item"
	"github.com/cooldogedev/prism/version"
)

// Transformer rewrites an item for the protocol version and locale passed. The stack it receives is
// owned by the caller of the transformer and may be modified and returned.
type Transformer func(v version.Version, locale string, stack item.Stack) item.Stack

// Transformers holds per item type transformers applied on top of the id/data registry: clientbound
// transformers run on items written to clients, serverbound transformers on items read from them.
type Transformers struct {
	clientbound []map[int32][]Transformer
	serverbound []map[int32][]Transformer
}

// NewTransformers ...
func NewTransformers() *Transformers {
	return &Transformers{
		clientbound: make([]map[int32][]Transformer, version.Count()),
		serverbound: make([]map[int32][]Transformer, version.Count()),
	}
}

// RegisterClientbound registers fn for items of type id written to clients of the versions passed.
func (t *Transformers) RegisterClientbound(id int32, fn Transformer, versions ...version.Version) *Transformers {
	register(t.clientbound, id, fn, versions)
	return t
}

// RegisterServerbound registers fn for items of type id read from clients of the versions passed.
func (t *Transformers) RegisterServerbound(id int32, fn Transformer, versions ...version.Version) *Transformers {
	register(t.serverbound, id, fn, versions)
	return t
}

func register(table []map[int32][]Transformer, id int32, fn Transformer, versions []version.Version) {
	for _, v := range versions {
		i := v.Ordinal()
		if i < 0 {
			continue
		}
		if table[i] == nil {
			table[i] = make(map[int32][]Transformer)
		}
		table[i][id] = append(table[i][id], fn)
	}
}

// Clientbound applies the transformers registered for the canonical type originalID. The type is
// passed separately because the registry may already have rewritten stack.ID.
func (t *Transformers) Clientbound(v version.Version, locale string, originalID int32, stack item.Stack) item.Stack {
	if t == nil {
		return stack
	}
	return apply(t.clientbound, v, locale, originalID, stack)
}

// Serverbound applies the transformers registered for the wire type of stack.
func (t *Transformers) Serverbound(v version.Version, locale string, stack item.Stack) item.Stack {
	if t == nil {
		return stack
	}
	return apply(t.serverbound, v, locale, stack.ID, stack)
}

func apply(table []map[int32][]Transformer, v version.Version, locale string, id int32, stack item.Stack) item.Stack {
	i := v.Ordinal()
	if i < 0 || i >= len(table) || table[i] == nil {
		return stack
	}
	for _, fn := range table[i][id] {
		stack = fn(v, locale, stack)
	}
	return stack
}

const (
	itemWrittenBook     = 387
	itemPotion          = 373
	itemSplashPotion    = 438
	itemLingeringPotion = 441

	splashPotionFlag = 16384
)

// potionData maps the potion types of 1.9 and later to the data values used before.
var potionData = map[string]int32{
	"minecraft:water":           0,
	"minecraft:awkward":         16,
	"minecraft:thick":           32,
	"minecraft:mundane":         64,
	"minecraft:regeneration":    8193,
	"minecraft:swiftness":       8194,
	"minecraft:fire_resistance": 8227,
	"minecraft:poison":          8196,
	"minecraft:healing":         8261,
	"minecraft:night_vision":    8230,
	"minecraft:weakness":        8232,
	"minecraft:strength":        8201,
	"minecraft:slowness":        8234,
	"minecraft:leaping":         8267,
	"minecraft:harming":         8268,
	"minecraft:water_breathing": 8237,
	"minecraft:invisibility":    8238,
}

var dataPotions = func() map[int32]string {
	m := make(map[int32]string, len(potionData))
	for name, data := range potionData {
		m[data] = name
	}
	return m
}()

// DefaultTransformers returns the stock transformers. Book pages are converted with the translations
// passed.
func DefaultTransformers(tr *chat.Translations) *Transformers {
	t := NewTransformers()

	pre18 := before(version.Minecraft_1_8)
	t.RegisterClientbound(itemWrittenBook, func(v version.Version, locale string, stack item.Stack) item.Stack {
		return mapPages(stack, func(page string) string {
			c, err := chat.FromJSON(page)
			if err != nil {
				return page
			}
			return chat.ToLegacyText(chat.ConvertLegacyJSON(c, v, locale, tr), locale, tr)
		})
	}, pre18...)
	t.RegisterServerbound(itemWrittenBook, func(_ version.Version, _ string, stack item.Stack) item.Stack {
		return mapPages(stack, func(page string) string {
			return chat.ToJSON(chat.FromLegacyText(page))
		})
	}, pre18...)

	pre19 := before(version.Minecraft_1_9)
	toLegacyPotion := func(_ version.Version, _ string, stack item.Stack) item.Stack {
		splash := stack.ID == itemSplashPotion || stack.ID == itemLingeringPotion
		if splash {
			stack.ID = itemPotion
		}
		if stack.Tag != nil {
			if data, ok := potionData[stack.Tag.String("Potion")]; ok {
				stack.Data = data
			}
			delete(stack.Tag, "Potion")
			if len(stack.Tag) == 0 {
				stack.Tag = nil
			}
		}
		if splash {
			stack.Data |= splashPotionFlag
		}
		return stack
	}
	// The registry does not know potions, so stack.ID still holds the canonical type here.
	t.RegisterClientbound(itemPotion, toLegacyPotion, pre19...)
	t.RegisterClientbound(itemSplashPotion, toLegacyPotion, pre19...)
	t.RegisterClientbound(itemLingeringPotion, toLegacyPotion, pre19...)
	t.RegisterServerbound(itemPotion, func(_ version.Version, _ string, stack item.Stack) item.Stack {
		if stack.Data&splashPotionFlag != 0 {
			stack.ID = itemSplashPotion
		}
		name, ok := dataPotions[stack.Data&^splashPotionFlag]
		if !ok {
			name = "minecraft:water"
		}
		if stack.Tag == nil {
			stack.Tag = item.Tag{}
		}
		stack.Tag["Potion"] = name
		stack.Data = 0
		return stack
	}, pre19...)
	return t
}

// mapPages rewrites every page of a book with fn.
func mapPages(stack item.Stack, fn func(string) string) item.Stack {
	if stack.Tag == nil {
		return stack
	}
	switch pages := stack.Tag["pages"].(type) {
	case []any:
		for i, page := range pages {
			if s, ok := page.(string); ok {
				pages[i] = fn(s)
			}
		}
	case []string:
		for i, page := range pages {
			pages[i] = fn(page)
		}
	}
	return stack
}
