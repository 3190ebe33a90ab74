package world

// Cell is the ordered stack of placeables on one tile, sorted by descending
// priority. Among equal priorities the earlier insertion stays first. The
// last element (lowest priority) is the visible top: ground sits at the
// bottom with high numbers, actors at priority 0 always end up on top.
type Cell struct {
	stack []Placeable
}

// Insert places obj before the first entry whose priority is lower.
func (c *Cell) Insert(obj Placeable) {
	p := obj.Priority()
	idx := len(c.stack)
	for i, existing := range c.stack {
		if existing.Priority() < p {
			idx = i
			break
		}
	}
	c.stack = append(c.stack, nil)
	copy(c.stack[idx+1:], c.stack[idx:])
	c.stack[idx] = obj
}

// Remove drops obj by identity. Returns false when obj is not in the cell.
func (c *Cell) Remove(obj Placeable) bool {
	for i, existing := range c.stack {
		if existing == obj {
			c.stack = append(c.stack[:i], c.stack[i+1:]...)
			return true
		}
	}
	return false
}

// FirstOf returns the first placeable of the kind, or nil.
func (c *Cell) FirstOf(k Kind) Placeable {
	for _, obj := range c.stack {
		if obj.Kind() == k {
			return obj
		}
	}
	return nil
}

// RemoveFirstOf drops the first placeable of the kind, if any.
func (c *Cell) RemoveFirstOf(k Kind) Placeable {
	obj := c.FirstOf(k)
	if obj != nil {
		c.Remove(obj)
	}
	return obj
}

// Passable is false as soon as any occupant blocks.
func (c *Cell) Passable() bool {
	for _, obj := range c.stack {
		if !obj.Passable() {
			return false
		}
	}
	return true
}

// Top is the placeable a renderer shows: the last entry that is not a
// SubArea marker, or the marker when it is alone.
func (c *Cell) Top() Placeable {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].Kind() != KindSubArea {
			return c.stack[i]
		}
	}
	if len(c.stack) > 0 {
		return c.stack[0]
	}
	return nil
}

func (c *Cell) Len() int { return len(c.stack) }

// Snapshot copies the stack so callers may mutate the cell while iterating.
func (c *Cell) Snapshot() []Placeable {
	out := make([]Placeable, len(c.stack))
	copy(out, c.stack)
	return out
}
