package handler

import (
	"fmt"

	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// HandleEquip wields or wears a carried item. Consumables are used instead,
// the way a hotbar key treats them.
func HandleEquip(deps *Deps, it *world.Item) {
	player := deps.Player()
	if it == nil || !player.Inv.Contains(it) {
		return
	}
	if it.Kind == world.ItemConsumable {
		HandleConsume(deps, it)
		return
	}
	if !it.Equippable() {
		return
	}
	player.Equip.Equip(it)
	deps.Say(fmt.Sprintf("Equipped %s", it.Name), world.White)
}

func HandleUnequip(deps *Deps, it *world.Item) {
	player := deps.Player()
	if it == nil || !player.Equip.Unequip(it) {
		return
	}
	deps.Say(fmt.Sprintf("Unequipped %s", it.Name), world.White)
}

// HandleConsume drinks a potion: heal capped at max health, the item leaves
// both the inventory and the hotbar.
func HandleConsume(deps *Deps, it *world.Item) {
	player := deps.Player()
	if it == nil || it.Kind != world.ItemConsumable || !player.Inv.Contains(it) {
		return
	}
	base := it.Heal
	if base <= 0 {
		base = deps.Config.Player.PotionHeal
	}
	amount := deps.Scripting.PotionHeal(it.Name, int(base), int(player.Health), int(player.MaxHealth))
	player.Heal(int32(amount))
	player.Inv.Remove(it)
	player.ClearHotbar(it)
	deps.Log.Debug("potion used",
		zap.String("item", it.Name),
		zap.Int32("hp", player.Health))
	deps.Say("Used Potion", world.Green)
}

// HandleHotbarAssign binds a carried item to a slot.
func HandleHotbarAssign(deps *Deps, slot int, it *world.Item) {
	player := deps.Player()
	if slot < 0 || slot >= world.HotbarSize || it == nil || !player.Inv.Contains(it) {
		return
	}
	player.Hotbar[slot] = it
	deps.Say(fmt.Sprintf("Added to Hotbar %d", slot+1), world.Green)
}

// HandleHotbarTrigger uses the item in a slot. A slot whose item is no
// longer carried is cleared.
func HandleHotbarTrigger(deps *Deps, slot int) {
	player := deps.Player()
	if slot < 0 || slot >= world.HotbarSize {
		return
	}
	it := player.Hotbar[slot]
	if it == nil {
		return
	}
	if !player.Inv.Contains(it) {
		player.Hotbar[slot] = nil
		return
	}
	HandleEquip(deps, it)
}

// HandleDrop moves a carried item into the pile under the player, creating
// the pile if needed. Equipped items stay.
func HandleDrop(deps *Deps, it *world.Item) {
	player := deps.Player()
	m := deps.CurrentMap()
	if it == nil || m == nil || !player.Inv.Contains(it) {
		return
	}
	if it.Equipped {
		deps.Say("Cannot drop equipped item!", world.Grey)
		return
	}
	pile := m.PileAt(player.X, player.Y)
	if pile == nil {
		pile = world.NewPile(player.X, player.Y)
		m.PlaceAtOwn(pile)
	}
	player.Inv.Remove(it)
	player.ClearHotbar(it)
	pile.Add(it)
	deps.Say(fmt.Sprintf("Dropped %s", it.Name), world.White)
}
