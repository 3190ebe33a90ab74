package world

// Neighbour expansion order: down, up, right, left.
var pathDirs = [4]Point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// FindPath runs a breadth-first search from start to goal. The returned path
// excludes start and ends with goal. A cell is expandable when it is passable
// or is the goal itself, so a path to an occupied goal still exists. The
// result is empty when goal is out of bounds, start == goal, or no path of at
// most maxDist steps exists.
func FindPath(m *Map, start, goal Point, maxDist int) []Point {
	if !m.InBounds(goal.X, goal.Y) || start == goal {
		return nil
	}
	w := int(m.Width)
	idx := func(p Point) int { return int(p.Y)*w + int(p.X) }

	prev := make(map[int]Point, 64)
	depth := map[int]int{idx(start): 0}
	queue := []Point{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := depth[idx(cur)]
		if d >= maxDist {
			continue
		}
		for _, dir := range pathDirs {
			next := Point{cur.X + dir.X, cur.Y + dir.Y}
			if !m.InBounds(next.X, next.Y) {
				continue
			}
			k := idx(next)
			if _, seen := depth[k]; seen {
				continue
			}
			if next != goal && !m.IsPassable(next.X, next.Y) {
				continue
			}
			depth[k] = d + 1
			prev[k] = cur
			if next == goal {
				return walkBack(prev, idx, goal, d+1)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func walkBack(prev map[int]Point, idx func(Point) int, goal Point, n int) []Point {
	path := make([]Point, n)
	p := goal
	for i := n - 1; i >= 0; i-- {
		path[i] = p
		p = prev[idx(p)]
	}
	return path
}
