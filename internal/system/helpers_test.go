package system

import (
	"math/rand"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/retrorpg/roguecore/internal/config"
	"github.com/retrorpg/roguecore/internal/core/event"
	"github.com/retrorpg/roguecore/internal/data"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// simEnv is a 30x30 open map with the player at (5,5) and the combat system
// wired in.
type simEnv struct {
	deps   *handler.Deps
	combat *CombatSystem
	player *world.Entity
	m      *world.Map
	log    *world.MessageLog
}

func newSimEnv(t *testing.T) *simEnv {
	t.Helper()
	cfg := config.Defaults()
	ws := world.NewState(zap.NewNop())
	m := ws.CreateMap(30, 30, world.NoMap)
	sess := world.NewSession(m.ID)

	p := NewPlayer(cfg)
	sess.Player = ws.Spawn(p, m, 5, 5)
	if sess.Player.IsZero() {
		t.Fatal("player not placed")
	}
	deps := &handler.Deps{
		Config:  cfg,
		Log:     zap.NewNop(),
		World:   ws,
		Session: sess,
		Rng:     rand.New(rand.NewSource(7)),
		Sink:    sess.Log,
		Bus:     event.NewBus(),
	}
	c := NewCombatSystem(deps)
	deps.Combat = c
	return &simEnv{deps: deps, combat: c, player: p, m: m, log: sess.Log}
}

func (e *simEnv) spawn(t *testing.T, actor world.ActorKind, symbol rune, x, y int32) *world.Entity {
	t.Helper()
	cfg := e.deps.Config.Npc
	n := world.NewEntity(actor, string(symbol), symbol, world.Red, 25, 2, 10)
	n.MoveCooldown = cfg.MoveCooldown
	n.PathCooldown = cfg.PathCooldown
	n.HitCooldown = cfg.HitCooldown
	n.TurnCooldown = cfg.DirectionCooldown
	if e.deps.World.Spawn(n, e.m, x, y).IsZero() {
		t.Fatalf("spawn %c at %d,%d", symbol, x, y)
	}
	return n
}

// fight opens an encounter holding the player and npcs.
func (e *simEnv) fight(npcs ...*world.Entity) *world.Fight {
	em := e.deps.World.Encounters
	f := em.Create()
	em.AddMember(f, e.player, e.deps.Rng)
	for _, n := range npcs {
		em.AddMember(f, n, e.deps.Rng)
		n.Target = e.player.ID
	}
	return f
}

func (e *simEnv) messages() []string {
	var out []string
	for _, m := range e.log.Recent(world.MessageLogSize) {
		out = append(out, m.Text)
	}
	return out
}

func (e *simEnv) hasMessage(text string) bool {
	for _, m := range e.messages() {
		if m == text {
			return true
		}
	}
	return false
}

func repoFile(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("no caller info")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", rel)
}

func loadTables(t *testing.T) *data.Tables {
	t.Helper()
	npcs, err := data.LoadNpcTable(repoFile(t, "data/yaml/npc_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	items, err := data.LoadItemTable(repoFile(t, "data/yaml/item_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	spawns, err := data.LoadSpawnTable(repoFile(t, "data/yaml/spawn_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return &data.Tables{Npcs: npcs, Items: items, Spawns: spawns}
}
