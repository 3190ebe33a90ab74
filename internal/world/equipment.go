package world

// Equipment tracks what an actor wields and wears. Each slot holds a pointer
// into the actor's inventory, nil when empty.
type Equipment struct {
	slots [slotCount]*Item
}

func (e *Equipment) Get(slot Slot) *Item {
	if slot <= SlotNone || slot >= slotCount {
		return nil
	}
	return e.slots[slot]
}

func (e *Equipment) Weapon() *Item { return e.slots[SlotWeapon] }

// Armor returns the armour piece in a head/chest/legs slot.
func (e *Equipment) Armor(slot Slot) *Item {
	if slot == SlotWeapon {
		return nil
	}
	return e.Get(slot)
}

// Equip puts it into its slot and returns the displaced item, if any.
// Items without a slot are ignored.
func (e *Equipment) Equip(it *Item) (replaced *Item) {
	slot := SlotFor(it.Kind)
	if slot == SlotNone {
		return nil
	}
	replaced = e.slots[slot]
	if replaced == it {
		return nil
	}
	if replaced != nil {
		replaced.Equipped = false
	}
	e.slots[slot] = it
	it.Equipped = true
	return replaced
}

// Unequip clears it from its slot. Returns false when it was not equipped.
func (e *Equipment) Unequip(it *Item) bool {
	slot := SlotFor(it.Kind)
	if slot == SlotNone || e.slots[slot] != it {
		return false
	}
	e.slots[slot] = nil
	it.Equipped = false
	return true
}

// WeaponDamage is zero when unarmed.
func (e *Equipment) WeaponDamage() int32 {
	if w := e.Weapon(); w != nil {
		return w.Damage
	}
	return 0
}

// Protection returns the armour value of a slot, zero when empty.
func (e *Equipment) Protection(slot Slot) int32 {
	if a := e.Armor(slot); a != nil {
		return a.Protection
	}
	return 0
}
