package system

import (
	"math/rand"
	"time"

	"github.com/retrorpg/roguecore/internal/config"
	"github.com/retrorpg/roguecore/internal/data"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// Generator builds the overworld and the locations behind its cells. All
// randomness comes from the injected source so a seed reproduces a world.
type Generator struct {
	cfg    *config.Config
	tables *data.Tables
	world  *world.State
	rng    *rand.Rand
	log    *zap.Logger
}

func NewGenerator(cfg *config.Config, tables *data.Tables, ws *world.State, rng *rand.Rand, log *zap.Logger) *Generator {
	return &Generator{cfg: cfg, tables: tables, world: ws, rng: rng, log: log}
}

// between returns a uniform value in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

// ---------- world map ----------

// GenerateWorld creates the world map with forest blobs and villages.
func (g *Generator) GenerateWorld() *world.Map {
	layout := g.tables.Spawns.World
	m := g.world.CreateMap(g.cfg.Sim.WorldWidth, g.cfg.Sim.WorldHeight, world.NoMap)
	cells := int(m.Width) * int(m.Height)

	for i := 0; i < layout.Forests; i++ {
		g.growForest(m, g.rng.Intn(cells), layout.InitialDecay)
	}
	for i := 0; i < layout.Villages; i++ {
		cord := g.rng.Intn(cells)
		houses := g.between(layout.MinHouses, layout.MaxHouses)
		m.PlaceAt(world.NewVillage(houses), int32(cord)%m.Width, int32(cord)/m.Width)
	}

	g.log.Info("world generated",
		zap.Int32("width", m.Width),
		zap.Int32("height", m.Height),
		zap.Int("forests", layout.Forests),
		zap.Int("villages", layout.Villages))
	return m
}

// growForest spreads forest from a linear cell index. Neighbours are the
// index offsets ±1 and ±width, so growth can wrap across a row edge. Each
// generation is less likely to spread further.
func (g *Generator) growForest(m *world.Map, cord, decay int) {
	if decay >= 100 {
		return
	}
	w := int(m.Width)
	if cord < 0 || cord >= w*int(m.Height) {
		return
	}
	x, y := int32(cord%w), int32(cord/w)
	if hasTerrain(m, x, y, world.TerrainForest) {
		return
	}
	m.PlaceAt(world.NewTerrain(world.TerrainForest), x, y)

	step := g.tables.Spawns.World.DecayStep
	for _, off := range [4]int{1, -1, w, -w} {
		if g.rng.Intn(101) > decay {
			g.growForest(m, cord+off, decay+step)
		}
	}
}

func hasTerrain(m *world.Map, x, y int32, tt world.TerrainType) bool {
	c := m.Cell(x, y)
	if c == nil {
		return false
	}
	for _, obj := range c.Snapshot() {
		if t, ok := obj.(*world.Terrain); ok && t.Type == tt {
			return true
		}
	}
	return false
}

// ---------- locations ----------

// GenerateLocation builds the location behind a world cell whose ground is
// terrain. Villages get houses, anything else becomes forest.
func (g *Generator) GenerateLocation(parent *world.Map, terrain *world.Terrain) (*world.Map, world.Biome) {
	loc := g.world.CreateMap(g.cfg.Sim.LocationWidth, g.cfg.Sim.LocationHeight, parent.ID)
	biome := world.BiomeForest
	if terrain != nil && terrain.Type == world.TerrainVillage {
		biome = world.BiomeVillage
		g.buildVillage(loc, terrain.Houses)
	} else {
		g.buildForest(loc)
	}
	spawned := g.populate(loc)

	g.log.Debug("location generated",
		zap.Int32("map", int32(loc.ID)),
		zap.Bool("village", biome == world.BiomeVillage),
		zap.Int("monsters", spawned))
	return loc, biome
}

func (g *Generator) buildVillage(m *world.Map, houses int) {
	layout := g.tables.Spawns.Location
	for i := 0; i < houses; i++ {
		w := int32(g.between(int(layout.MinHouseW), int(layout.MaxHouseW)))
		h := int32(g.between(int(layout.MinHouseW), int(layout.MaxHouseW)))
		x := int32(g.between(1, int(m.Width-w-2)))
		y := int32(g.between(1, int(m.Height-h-2)))
		doorX, doorY := x+w/2, y+h

		for cx := x; cx <= x+w; cx++ {
			m.PlaceAt(world.NewTerrain(world.TerrainWall), cx, y)
			if cx != doorX {
				m.PlaceAt(world.NewTerrain(world.TerrainWall), cx, y+h)
			}
		}
		for j := y; j <= y+h; j++ {
			m.PlaceAt(world.NewTerrain(world.TerrainWall), x, j)
			m.PlaceAt(world.NewTerrain(world.TerrainWall), x+w, j)
		}
		m.PlaceAt(world.NewTerrain(world.TerrainDoor), doorX, doorY)

		if tpl := g.tables.Npcs.Get(layout.Villager); tpl != nil {
			g.SpawnNpc(m, tpl, x+w/2, y+h/2)
		}

		chest := world.NewChest(x+1, y+1)
		for _, name := range layout.ChestItems {
			if it := g.tables.Items.New(name); it != nil {
				chest.Add(it)
			}
		}
		m.PlaceAtOwn(chest)
	}
}

// buildForest scatters trees, keeping the arrival corner clear.
func (g *Generator) buildForest(m *world.Map) {
	chance := g.tables.Spawns.Location.TreeChance
	for y := int32(0); y < m.Height; y++ {
		for x := int32(0); x < m.Width; x++ {
			if x < 3 && y < 3 {
				continue
			}
			if g.rng.Intn(100) < chance {
				m.PlaceAt(world.NewTerrain(world.TerrainTree), x, y)
			}
		}
	}
}

// populate makes a number of spawn attempts; an attempt that lands on a
// blocked cell or inside the safe corner is skipped, not retried.
func (g *Generator) populate(m *world.Map) int {
	layout := g.tables.Spawns.Location
	if len(layout.Monsters) == 0 {
		return 0
	}
	spawned := 0
	attempts := g.between(layout.MinMonsters, layout.MaxMonsters)
	for i := 0; i < attempts; i++ {
		x := int32(g.rng.Intn(int(m.Width)))
		y := int32(g.rng.Intn(int(m.Height)))
		if !m.IsPassable(x, y) || (x <= layout.SafeZone && y <= layout.SafeZone) {
			continue
		}
		tpl := g.tables.Npcs.Get(layout.Monsters[g.rng.Intn(len(layout.Monsters))])
		if tpl != nil && g.SpawnNpc(m, tpl, x, y) != nil {
			spawned++
		}
	}
	return spawned
}

// ---------- actors ----------

// SpawnNpc stamps an NPC from tpl onto m with its rolled gear. Returns nil
// when the placement is rejected.
func (g *Generator) SpawnNpc(m *world.Map, tpl *data.NpcTemplate, x, y int32) *world.Entity {
	e := world.NewEntity(tpl.ActorKind(), tpl.Name, tpl.Rune(), tpl.RGB(), tpl.Health, tpl.Strength, tpl.Vision)
	npc := g.cfg.Npc
	e.MoveCooldown = orDefault(tpl.MoveCD, npc.MoveCooldown)
	e.PathCooldown = orDefault(tpl.PathCD, npc.PathCooldown)
	e.HitCooldown = orDefault(tpl.HitCD, npc.HitCooldown)
	e.TurnCooldown = orDefault(tpl.TurnCD, npc.DirectionCooldown)

	for _, gear := range data.RollGear(tpl.Gear, g.rng) {
		it := g.tables.Items.New(gear.Item)
		if it == nil {
			continue
		}
		e.Inv.Add(it)
		if gear.Equip {
			e.Equip.Equip(it)
		}
	}

	if g.world.Spawn(e, m, x, y).IsZero() {
		return nil
	}
	return e
}

func orDefault(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}

// NewPlayer builds the player actor from the [player] config section.
func NewPlayer(cfg *config.Config) *world.Entity {
	p := cfg.Player
	e := world.NewEntity(world.ActorPlayer, "Player", '@', world.White, p.Health, p.Strength, p.Vision)
	e.HitCooldown = p.HitCooldown
	e.MoveCooldown = p.MoveDelay
	return e
}
