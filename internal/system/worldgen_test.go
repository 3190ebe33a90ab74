package system

import (
	"math/rand"
	"testing"

	"github.com/retrorpg/roguecore/internal/config"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

func newGenerator(t *testing.T, seed int64) (*Generator, *world.State) {
	t.Helper()
	ws := world.NewState(zap.NewNop())
	return NewGenerator(config.Defaults(), loadTables(t), ws, rand.New(rand.NewSource(seed)), zap.NewNop()), ws
}

func render(m *world.Map) string {
	out := make([]rune, 0, int(m.Width)*int(m.Height))
	for y := int32(0); y < m.Height; y++ {
		for x := int32(0); x < m.Width; x++ {
			g, _ := m.RenderAt(x, y)
			out = append(out, g.Symbol)
		}
	}
	return string(out)
}

func countTerrain(m *world.Map, tt world.TerrainType) int {
	n := 0
	for y := int32(0); y < m.Height; y++ {
		for x := int32(0); x < m.Width; x++ {
			if hasTerrain(m, x, y, tt) {
				n++
			}
		}
	}
	return n
}

func TestGenerateWorld(t *testing.T) {
	gen, ws := newGenerator(t, 42)
	m := gen.GenerateWorld()
	if m.ID != world.WorldMapID || ws.MapCount() != 1 {
		t.Fatalf("world map id %d, %d maps", m.ID, ws.MapCount())
	}
	if m.Width != 52 || m.Height != 33 {
		t.Errorf("size %dx%d", m.Width, m.Height)
	}
	if n := countTerrain(m, world.TerrainForest); n == 0 {
		t.Error("no forest grown")
	}
	villages := countTerrain(m, world.TerrainVillage)
	if villages == 0 || villages > 5 {
		t.Errorf("villages = %d, want 1..5", villages)
	}
}

func TestGenerateWorldDeterministic(t *testing.T) {
	a, _ := newGenerator(t, 99)
	b, _ := newGenerator(t, 99)
	if render(a.GenerateWorld()) != render(b.GenerateWorld()) {
		t.Error("same seed produced different worlds")
	}
}

func TestGenerateForestLocation(t *testing.T) {
	gen, ws := newGenerator(t, 5)
	wm := gen.GenerateWorld()
	loc, biome := gen.GenerateLocation(wm, world.NewTerrain(world.TerrainPlain))
	if biome != world.BiomeForest {
		t.Errorf("biome = %v, want forest", biome)
	}
	if loc.Parent != wm.ID || loc.Width != 50 || loc.Height != 30 {
		t.Errorf("parent %d size %dx%d", loc.Parent, loc.Width, loc.Height)
	}
	for y := int32(0); y < 3; y++ {
		for x := int32(0); x < 3; x++ {
			if !loc.IsPassable(x, y) {
				t.Errorf("arrival corner blocked at %d,%d", x, y)
			}
		}
	}
	if countTerrain(loc, world.TerrainTree) == 0 {
		t.Error("no trees")
	}
	monsters := loc.Entities()
	if len(monsters) > 8 {
		t.Errorf("%d monsters, want at most 8", len(monsters))
	}
	for _, e := range monsters {
		if e.X <= 5 && e.Y <= 5 {
			t.Errorf("%s spawned in the safe corner at %d,%d", e.Name, e.X, e.Y)
		}
		if e.Name != "Goblin" && e.Name != "Ghost" {
			t.Errorf("unexpected monster %q", e.Name)
		}
		if ws.Entity(e.ID) != e {
			t.Errorf("%s not registered", e.Name)
		}
		if e.MoveCooldown == 0 || e.HitCooldown == 0 {
			t.Errorf("%s has no cooldowns", e.Name)
		}
	}
}

func TestGenerateVillageLocation(t *testing.T) {
	gen, _ := newGenerator(t, 11)
	wm := gen.GenerateWorld()
	loc, biome := gen.GenerateLocation(wm, world.NewVillage(3))
	if biome != world.BiomeVillage {
		t.Fatalf("biome = %v, want village", biome)
	}
	if countTerrain(loc, world.TerrainWall) == 0 || countTerrain(loc, world.TerrainDoor) == 0 {
		t.Error("no houses built")
	}
	if countTerrain(loc, world.TerrainTree) != 0 {
		t.Error("trees in a village")
	}

	chests, potions := 0, 0
	for y := int32(0); y < loc.Height; y++ {
		for x := int32(0); x < loc.Width; x++ {
			if c := loc.ChestAt(x, y); c != nil {
				chests++
				for _, it := range c.Items {
					if it.Name == "Health Potion" {
						potions++
					}
				}
			}
		}
	}
	if chests == 0 || potions != chests {
		t.Errorf("%d chests holding %d potions", chests, potions)
	}

	humans := 0
	for _, e := range loc.Entities() {
		if e.Name == "Human" {
			humans++
			if !e.IsPassive() {
				t.Error("villager not passive")
			}
		}
	}
	if humans != 3 {
		t.Errorf("humans = %d, want one per house", humans)
	}
}

func TestSpawnNpcGear(t *testing.T) {
	gen, ws := newGenerator(t, 1)
	m := ws.CreateMap(10, 10, world.NoMap)
	tpl := gen.tables.Npcs.Get("Goblin")
	if tpl == nil {
		t.Fatal("no Goblin template")
	}
	armed := 0
	for i := 0; i < 40; i++ {
		e := gen.SpawnNpc(m, tpl, int32(i%10), int32(i/10))
		if e == nil {
			t.Fatal("spawn rejected")
		}
		if w := e.Equip.Weapon(); w != nil {
			armed++
			if !e.Inv.Contains(w) || w.Name != "Rusty Sword" {
				t.Errorf("weapon %q not carried", w.Name)
			}
		}
	}
	if armed == 0 || armed == 40 {
		t.Errorf("%d of 40 goblins armed, want a mix", armed)
	}
	if gen.SpawnNpc(m, tpl, 10, 10) != nil {
		t.Error("out of bounds spawn accepted")
	}
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(config.Defaults())
	if p.Symbol != '@' || p.Health != 30 || p.Strength != 5 || p.Vision != 20 || !p.IsPlayer() {
		t.Errorf("player = %+v", p)
	}
	if p.HitCooldown.Milliseconds() != 200 || p.MoveCooldown.Milliseconds() != 100 {
		t.Errorf("cooldowns hit %v move %v", p.HitCooldown, p.MoveCooldown)
	}
}
