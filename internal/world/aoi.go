package world

// AOIGrid buckets the entities of one map into square cells so range
// queries only look at the buckets that overlap the query box.
// Accessed only from the tick goroutine, no locks.

const aoiCellSize = 10

type aoiKey struct {
	cx, cy int32
}

func toAOICoord(v int32) int32 {
	if v < 0 {
		return (v - aoiCellSize + 1) / aoiCellSize
	}
	return v / aoiCellSize
}

type AOIGrid struct {
	cells map[aoiKey][]*Entity // insertion order kept for stable results
}

func NewAOIGrid() *AOIGrid {
	return &AOIGrid{cells: make(map[aoiKey][]*Entity)}
}

func (g *AOIGrid) key(x, y int32) aoiKey {
	return aoiKey{cx: toAOICoord(x), cy: toAOICoord(y)}
}

func (g *AOIGrid) Add(e *Entity, x, y int32) {
	k := g.key(x, y)
	g.cells[k] = append(g.cells[k], e)
}

func (g *AOIGrid) Remove(e *Entity, x, y int32) {
	k := g.key(x, y)
	bucket := g.cells[k]
	for i, occ := range bucket {
		if occ == e {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(g.cells, k)
		return
	}
	g.cells[k] = bucket
}

// Move rebuckets e only when it crossed a cell boundary.
func (g *AOIGrid) Move(e *Entity, oldX, oldY, newX, newY int32) {
	if g.key(oldX, oldY) == g.key(newX, newY) {
		return
	}
	g.Remove(e, oldX, oldY)
	g.Add(e, newX, newY)
}

// Nearby returns entities whose position is within r on both axes of (x, y).
func (g *AOIGrid) Nearby(x, y, r int32) []*Entity {
	minK, maxK := g.key(x-r, y-r), g.key(x+r, y+r)
	var result []*Entity
	for cy := minK.cy; cy <= maxK.cy; cy++ {
		for cx := minK.cx; cx <= maxK.cx; cx++ {
			for _, e := range g.cells[aoiKey{cx, cy}] {
				if abs32(e.X-x) <= r && abs32(e.Y-y) <= r {
					result = append(result, e)
				}
			}
		}
	}
	return result
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
