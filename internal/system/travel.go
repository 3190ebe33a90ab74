package system

import (
	"time"

	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// TravelService moves the player between the world map and locations.
// It implements handler.Travel.
type TravelService struct {
	deps *handler.Deps
	gen  *Generator
}

func NewTravelService(deps *handler.Deps, gen *Generator) *TravelService {
	return &TravelService{deps: deps, gen: gen}
}

// Interact on the world map enters the location at the player's cell,
// generating it first when the cell has none. Inside a location it returns
// the player to where they stood on the world map.
func (t *TravelService) Interact(_ time.Duration) {
	player := t.deps.Player()
	cur := t.deps.CurrentMap()
	if player == nil || !player.Alive || cur == nil {
		return
	}
	sess := t.deps.Session

	if sess.InLocation() {
		t.leave(player, cur)
		return
	}

	if sa := cur.SubAreaAt(player.X, player.Y); sa != nil {
		t.enter(player, cur, t.deps.World.Map(sa.MapID))
		return
	}
	ground := groundTerrain(cur, player.X, player.Y)
	if ground == nil {
		return
	}
	t.deps.Say("Entering new area...", world.White)
	loc, biome := t.gen.GenerateLocation(cur, ground)
	cur.PlaceAt(&world.SubArea{MapID: loc.ID, Biome: biome}, player.X, player.Y)
	t.enter(player, cur, loc)
}

// groundTerrain picks the terrain a new location is generated from. The
// cell is scanned from its lowest-priority end, so a village wins over
// forest and forest wins over plain ground.
func groundTerrain(m *world.Map, x, y int32) *world.Terrain {
	c := m.Cell(x, y)
	if c == nil {
		return nil
	}
	stack := c.Snapshot()
	for i := len(stack) - 1; i >= 0; i-- {
		t, ok := stack[i].(*world.Terrain)
		if !ok {
			continue
		}
		switch t.Type {
		case world.TerrainVillage, world.TerrainForest, world.TerrainPlain, world.TerrainForestDirt:
			return t
		}
	}
	return nil
}

func (t *TravelService) enter(player *world.Entity, from, loc *world.Map) {
	if loc == nil {
		return
	}
	sess := t.deps.Session
	sess.LastWorldPos = player.Position()
	t.move(player, from, loc, world.Point{X: 1, Y: 1})
	t.deps.Log.Info("entered location",
		zap.Int32("map", int32(loc.ID)),
		zap.Int32("world_x", sess.LastWorldPos.X),
		zap.Int32("world_y", sess.LastWorldPos.Y))
}

func (t *TravelService) leave(player *world.Entity, from *world.Map) {
	sess := t.deps.Session
	wm := t.deps.World.Map(sess.WorldMap)
	if wm == nil {
		return
	}
	t.move(player, from, wm, sess.LastWorldPos)
	t.deps.Log.Info("returned to world map",
		zap.Int32("x", player.X), zap.Int32("y", player.Y))
}

func (t *TravelService) move(player *world.Entity, from, to *world.Map, at world.Point) {
	from.RemoveEntity(player)
	if !to.AddEntity(player, at.X, at.Y) {
		from.AddEntity(player, player.X, player.Y)
		return
	}
	player.Path = nil
	t.deps.Session.Current = to.ID
	t.deps.Session.OpenContainer = nil
}
