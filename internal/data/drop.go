package data

import "math/rand"

// GearItem is a piece of starting gear an NPC may carry. Whatever it
// carries falls into a loot pile when it dies.
type GearItem struct {
	Item   string `yaml:"item"`
	Chance int    `yaml:"chance"` // percent, 100 = always
	Equip  bool   `yaml:"equip"`  // wield/wear instead of just carrying
}

// RollGear returns the entries that pass their chance roll, in list order.
func RollGear(gear []GearItem, rng *rand.Rand) []GearItem {
	var out []GearItem
	for _, g := range gear {
		if g.Chance >= 100 || rng.Intn(100) < g.Chance {
			out = append(out, g)
		}
	}
	return out
}
