package handler

import "github.com/retrorpg/roguecore/internal/world"

// HandleOpenLoot opens the chest under the player, or else the loot pile.
func HandleOpenLoot(deps *Deps) {
	player := deps.Player()
	m := deps.CurrentMap()
	if m == nil {
		return
	}
	if c := m.ChestAt(player.X, player.Y); c != nil {
		deps.Session.OpenContainer = c
		return
	}
	if p := m.PileAt(player.X, player.Y); p != nil {
		deps.Session.OpenContainer = p
	}
}

// HandleTake moves an item from the open container into the inventory.
func HandleTake(deps *Deps, it *world.Item) {
	c := deps.Session.OpenContainer
	if c == nil || it == nil {
		return
	}
	if !c.Remove(it) {
		return
	}
	it.Equipped = false
	deps.Player().Inv.Add(it)
}

// HandlePut stores a carried item in the open container.
func HandlePut(deps *Deps, it *world.Item) {
	c := deps.Session.OpenContainer
	player := deps.Player()
	if c == nil || it == nil || !player.Inv.Contains(it) {
		return
	}
	if it.Equipped {
		deps.Say("Unequip first!", world.Grey)
		return
	}
	player.Inv.Remove(it)
	player.ClearHotbar(it)
	c.Add(it)
}

// HandleCloseContainer closes the open container. An emptied loot pile is
// removed from the map; chests stay.
func HandleCloseContainer(deps *Deps) {
	c := deps.Session.OpenContainer
	if c == nil {
		return
	}
	deps.Session.OpenContainer = nil
	if c.Kind() != world.KindPile || !c.Empty() {
		return
	}
	if m := deps.CurrentMap(); m != nil {
		m.RemoveAt(c, c.X, c.Y)
	}
}
