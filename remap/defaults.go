package remap

import "github.com/cooldogedev/prism/version"

// before returns every Java edition version released before v.
func before(v version.Version) []version.Version {
	var versions []version.Version
	for _, other := range version.Family(version.TypePC) {
		if other.Before(v) {
			versions = append(versions, other)
		}
	}
	return versions
}

// NewDefaultRegistry builds the registry of stock item downgrades: blocks and items introduced in a
// release are replaced by the closest thing older clients can render.
func NewDefaultRegistry() *Registry {
	b := NewBuilder()

	pre112 := before(version.Minecraft_1_12)
	b.RegisterType(251, 159, pre112...) // concrete -> stained clay
	b.RegisterType(252, 35, pre112...)  // concrete powder -> wool
	for i := int32(0); i < 16; i++ {
		// glazed terracotta of colour i -> stained clay of colour i
		b.RegisterTypeData(235+i, Pair{ID: 159, Data: i}, pre112...)
	}

	pre111 := before(version.Minecraft_1_11)
	for i := int32(0); i < 16; i++ {
		b.RegisterTypeData(219+i, Pair{ID: 54}, pre111...) // shulker boxes -> chest
	}
	b.RegisterType(218, 23, pre111...)                // observer -> dispenser
	b.RegisterTypeData(449, Pair{ID: 322}, pre111...) // totem of undying -> golden apple
	b.RegisterTypeData(450, Pair{ID: 378}, pre111...) // shulker shell -> magma cream

	pre110 := before(version.Minecraft_1_10)
	b.RegisterTypeData(213, Pair{ID: 87}, pre110...)           // magma block -> netherrack
	b.RegisterTypeData(214, Pair{ID: 35, Data: 14}, pre110...) // nether wart block -> red wool
	b.RegisterTypeData(215, Pair{ID: 112}, pre110...)          // red nether brick -> nether brick
	b.RegisterTypeData(216, Pair{ID: 155, Data: 2}, pre110...) // bone block -> quartz pillar

	pre19 := before(version.Minecraft_1_9)
	b.RegisterTypeData(198, Pair{ID: 50}, pre19...)           // end rod -> torch
	b.RegisterTypeData(199, Pair{ID: 121}, pre19...)          // chorus plant -> end stone
	b.RegisterTypeData(200, Pair{ID: 121}, pre19...)          // chorus flower -> end stone
	b.RegisterTypeData(201, Pair{ID: 155}, pre19...)          // purpur block -> quartz block
	b.RegisterTypeData(202, Pair{ID: 155, Data: 2}, pre19...) // purpur pillar -> quartz pillar
	b.RegisterType(203, 156, pre19...)                        // purpur stairs -> quartz stairs
	b.RegisterTypeData(204, Pair{ID: 43, Data: 7}, pre19...)  // purpur double slab -> quartz double slab
	b.RegisterTypeData(205, Pair{ID: 44, Data: 7}, pre19...)  // purpur slab -> quartz slab
	b.RegisterTypeData(206, Pair{ID: 121}, pre19...)          // end bricks -> end stone
	b.RegisterTypeData(208, Pair{ID: 2}, pre19...)            // grass path -> grass
	b.RegisterTypeData(443, Pair{ID: 299}, pre19...)          // elytra -> leather tunic
	b.RegisterTypeData(432, Pair{ID: 260}, pre19...)          // chorus fruit -> apple

	pre18 := before(version.Minecraft_1_8)
	for data := int32(1); data <= 6; data++ {
		b.Register(Pair{ID: 1, Data: data}, Pair{ID: 1}, pre18...) // granite, diorite, andesite -> stone
	}
	b.RegisterTypeData(165, Pair{ID: 35, Data: 5}, pre18...) // slime block -> lime wool
	b.RegisterTypeData(166, Pair{ID: 20}, pre18...)          // barrier -> glass
	b.RegisterType(167, 96, pre18...)                        // iron trapdoor -> trapdoor
	b.RegisterTypeData(168, Pair{ID: 98}, pre18...)          // prismarine -> stone bricks
	b.RegisterTypeData(169, Pair{ID: 89}, pre18...)          // sea lantern -> glowstone
	b.RegisterType(179, 24, pre18...)                        // red sandstone -> sandstone
	b.RegisterTypeData(409, Pair{ID: 318}, pre18...)         // prismarine shard -> flint
	b.RegisterTypeData(410, Pair{ID: 348}, pre18...)         // prismarine crystals -> glowstone dust
	return b.Build()
}
