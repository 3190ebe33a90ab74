package world

// ItemKind is the closed set of item categories.
type ItemKind uint8

const (
	ItemWeapon ItemKind = iota
	ItemHeadArmor
	ItemChestArmor
	ItemLegArmor
	ItemConsumable
	ItemCurrency
)

// ParseItemKind maps the YAML spelling of a kind.
func ParseItemKind(s string) (ItemKind, bool) {
	switch s {
	case "weapon", "sword":
		return ItemWeapon, true
	case "helmet", "head":
		return ItemHeadArmor, true
	case "breastplate", "chest":
		return ItemChestArmor, true
	case "leggings", "legs":
		return ItemLegArmor, true
	case "potion", "consumable":
		return ItemConsumable, true
	case "coins", "currency":
		return ItemCurrency, true
	}
	return 0, false
}

// Slot is an equipment slot.
type Slot uint8

const (
	SlotNone Slot = iota
	SlotWeapon
	SlotHead
	SlotChest
	SlotLegs
	slotCount
)

// SlotFor returns where an item of the kind is worn, SlotNone if it cannot be.
func SlotFor(k ItemKind) Slot {
	switch k {
	case ItemWeapon:
		return SlotWeapon
	case ItemHeadArmor:
		return SlotHead
	case ItemChestArmor:
		return SlotChest
	case ItemLegArmor:
		return SlotLegs
	}
	return SlotNone
}

// Item is one carried or stored object. Currency uses Price as its amount.
type Item struct {
	Name       string
	Kind       ItemKind
	Damage     int32
	Protection int32
	Price      int32
	Heal       int32
	Equipped   bool
}

func NewCoins(amount int32) *Item {
	return &Item{Name: "Coins", Kind: ItemCurrency, Price: amount}
}

func (it *Item) Equippable() bool { return SlotFor(it.Kind) != SlotNone }

func (it *Item) Glyph() Glyph {
	var sym rune
	switch it.Kind {
	case ItemWeapon:
		sym = 'S'
	case ItemHeadArmor:
		sym = 'H'
	case ItemChestArmor:
		sym = 'B'
	case ItemLegArmor:
		sym = 'L'
	case ItemConsumable:
		sym = '6'
	case ItemCurrency:
		return Glyph{Symbol: 'c', Color: Gold}
	}
	if it.Equipped {
		return Glyph{Symbol: sym, Color: Purple}
	}
	return Glyph{Symbol: sym, Color: White}
}

// Clone returns an unequipped copy, used when stamping templates.
func (it *Item) Clone() *Item {
	c := *it
	c.Equipped = false
	return &c
}

// addItem appends it to items; currency folds into the first currency entry.
func addItem(items []*Item, it *Item) []*Item {
	if it.Kind == ItemCurrency {
		for _, existing := range items {
			if existing.Kind == ItemCurrency {
				existing.Price += it.Price
				return items
			}
		}
	}
	return append(items, it)
}

func removeItem(items []*Item, it *Item) ([]*Item, bool) {
	for i, existing := range items {
		if existing == it {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
