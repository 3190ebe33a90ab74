package world

import (
	"time"

	"github.com/retrorpg/roguecore/internal/core/ecs"
	"go.uber.org/zap"
)

// MapID identifies a map inside State. The world map is always WorldMapID.
type MapID int32

const (
	NoMap      MapID = 0
	WorldMapID MapID = 1
)

type Point struct {
	X, Y int32
}

// TimedEvent is a pending melee hit. It is due once Created+Delay < now.
type TimedEvent struct {
	FightID  int32
	Attacker ecs.EntityID
	Defender ecs.EntityID
	Created  time.Duration
	Delay    time.Duration
}

func (ev TimedEvent) Due(now time.Duration) bool {
	return ev.Created+ev.Delay < now
}

// Map is a width x height grid of cells plus the entities standing on it and
// the hits waiting to land there.
type Map struct {
	ID     MapID
	Width  int32
	Height int32
	Parent MapID // world map for locations, NoMap for the world itself

	cells    []Cell
	entities []*Entity
	grid     *AOIGrid
	events   []TimedEvent
	log      *zap.Logger
}

// NewMap builds a map whose every cell starts with plain ground.
func NewMap(id MapID, width, height int32, log *zap.Logger) *Map {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Map{
		ID:     id,
		Width:  width,
		Height: height,
		cells:  make([]Cell, int(width)*int(height)),
		grid:   NewAOIGrid(),
		log:    log,
	}
	for i := range m.cells {
		m.cells[i].Insert(NewTerrain(TerrainPlain))
	}
	return m
}

// InBounds reports whether (x, y) lies on the grid.
func (m *Map) InBounds(x, y int32) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

func (m *Map) cell(x, y int32) *Cell {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.cells[int(y)*int(m.Width)+int(x)]
}

// Cell returns the stack at (x, y), or nil out of bounds.
func (m *Map) Cell(x, y int32) *Cell { return m.cell(x, y) }

// PlaceAt inserts obj into the cell at (x, y). Out-of-bounds placement is
// rejected and reported through the return value.
func (m *Map) PlaceAt(obj Placeable, x, y int32) bool {
	c := m.cell(x, y)
	if c == nil {
		m.log.Debug("placement rejected",
			zap.Stringer("kind", obj.Kind()),
			zap.Int32("x", x), zap.Int32("y", y),
			zap.Int32("map", int32(m.ID)))
		return false
	}
	c.Insert(obj)
	return true
}

// PlaceAtOwn places obj at the coordinates it carries.
func (m *Map) PlaceAtOwn(obj Positioned) bool {
	p := obj.Position()
	return m.PlaceAt(obj, p.X, p.Y)
}

// IsPassable is false out of bounds or when any occupant blocks.
func (m *Map) IsPassable(x, y int32) bool {
	c := m.cell(x, y)
	return c != nil && c.Passable()
}

func (m *Map) FirstOf(x, y int32, k Kind) Placeable {
	c := m.cell(x, y)
	if c == nil {
		return nil
	}
	return c.FirstOf(k)
}

func (m *Map) RemoveFirstOf(x, y int32, k Kind) Placeable {
	c := m.cell(x, y)
	if c == nil {
		return nil
	}
	return c.RemoveFirstOf(k)
}

// RemoveAt drops obj from the cell at (x, y) by identity.
func (m *Map) RemoveAt(obj Placeable, x, y int32) bool {
	c := m.cell(x, y)
	return c != nil && c.Remove(obj)
}

func (m *Map) PileAt(x, y int32) *Container {
	c, _ := m.FirstOf(x, y, KindPile).(*Container)
	return c
}

func (m *Map) ChestAt(x, y int32) *Container {
	c, _ := m.FirstOf(x, y, KindChest).(*Container)
	return c
}

func (m *Map) SubAreaAt(x, y int32) *SubArea {
	s, _ := m.FirstOf(x, y, KindSubArea).(*SubArea)
	return s
}

func (m *Map) EntityAt(x, y int32) *Entity {
	e, _ := m.FirstOf(x, y, KindEntity).(*Entity)
	return e
}

// TerrainAt returns the highest-priority terrain at (x, y).
func (m *Map) TerrainAt(x, y int32) *Terrain {
	t, _ := m.FirstOf(x, y, KindTerrain).(*Terrain)
	return t
}

// RenderAt returns the glyph a renderer should draw at (x, y).
func (m *Map) RenderAt(x, y int32) (Glyph, bool) {
	c := m.cell(x, y)
	if c == nil {
		return Glyph{}, false
	}
	top := c.Top()
	if top == nil {
		return Glyph{}, false
	}
	return top.Glyph(), true
}

// ---------- entities ----------

// AddEntity places e at (x, y) and registers it with the map.
func (m *Map) AddEntity(e *Entity, x, y int32) bool {
	if !m.PlaceAt(e, x, y) {
		return false
	}
	e.X, e.Y, e.MapID = x, y, m.ID
	m.entities = append(m.entities, e)
	m.grid.Add(e, x, y)
	return true
}

// RemoveEntity is a no-op when e is not on this map.
func (m *Map) RemoveEntity(e *Entity) {
	for i, occ := range m.entities {
		if occ == e {
			m.entities = append(m.entities[:i], m.entities[i+1:]...)
			m.grid.Remove(e, e.X, e.Y)
			break
		}
	}
	m.RemoveAt(e, e.X, e.Y)
}

// MoveEntity relocates e. Passability is the caller's concern; only the
// bounds are checked here.
func (m *Map) MoveEntity(e *Entity, x, y int32) bool {
	if !m.InBounds(x, y) {
		return false
	}
	m.RemoveAt(e, e.X, e.Y)
	m.grid.Move(e, e.X, e.Y, x, y)
	e.X, e.Y = x, y
	m.cell(x, y).Insert(e)
	return true
}

// Entities returns a snapshot in insertion order.
func (m *Map) Entities() []*Entity {
	out := make([]*Entity, len(m.entities))
	copy(out, m.entities)
	return out
}

// NearbyEntities returns entities within r on both axes of (x, y).
func (m *Map) NearbyEntities(x, y, r int32) []*Entity {
	return m.grid.Nearby(x, y, r)
}

// ---------- pending hits ----------

func (m *Map) Enqueue(ev TimedEvent) {
	m.events = append(m.events, ev)
}

// TakeDue removes and returns every due event, keeping queue order for both
// the returned and the remaining events.
func (m *Map) TakeDue(now time.Duration) []TimedEvent {
	if len(m.events) == 0 {
		return nil
	}
	var due []TimedEvent
	kept := m.events[:0]
	for _, ev := range m.events {
		if ev.Due(now) {
			due = append(due, ev)
		} else {
			kept = append(kept, ev)
		}
	}
	m.events = kept
	return due
}

func (m *Map) Pending() int { return len(m.events) }
