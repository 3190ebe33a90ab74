package world

// Inventory holds an actor's carried items. Accessed only from the tick
// goroutine.
type Inventory struct {
	Items []*Item
}

func NewInventory() *Inventory {
	return &Inventory{Items: make([]*Item, 0, 8)}
}

// Add stores it. Currency stacks: the amount is summed into the currency
// item already carried and it itself is discarded.
func (inv *Inventory) Add(it *Item) {
	inv.Items = addItem(inv.Items, it)
}

// Remove takes it out by identity. Returns false when it is not carried.
func (inv *Inventory) Remove(it *Item) bool {
	var ok bool
	inv.Items, ok = removeItem(inv.Items, it)
	return ok
}

func (inv *Inventory) Contains(it *Item) bool {
	for _, existing := range inv.Items {
		if existing == it {
			return true
		}
	}
	return false
}

// Currency returns the carried coin total.
func (inv *Inventory) Currency() int32 {
	var total int32
	for _, it := range inv.Items {
		if it.Kind == ItemCurrency {
			total += it.Price
		}
	}
	return total
}

func (inv *Inventory) Len() int { return len(inv.Items) }

// Drain empties the inventory and returns what it held.
func (inv *Inventory) Drain() []*Item {
	out := inv.Items
	inv.Items = make([]*Item, 0, 8)
	return out
}
