package system

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retrorpg/roguecore/internal/config"
	"github.com/retrorpg/roguecore/internal/core/event"
	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/data"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/scripting"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// Game wires the state, the systems and the runner of one play-through.
type Game struct {
	Deps    *handler.Deps
	Runner  *coresys.Runner
	Queue   *handler.Queue
	Gen     *Generator
	Outcome *OutcomeSystem
	Journal *JournalSystem // nil when no journal writer was given
}

// NewGame generates a world from seed, puts the player at the world map
// origin and registers every system in tick order. journal may be nil.
func NewGame(cfg *config.Config, tables *data.Tables, eng *scripting.Engine, seed int64, journal JournalWriter, log *zap.Logger) (*Game, error) {
	rng := rand.New(rand.NewSource(seed))
	ws := world.NewState(log)
	bus := event.NewBus()

	deps := &handler.Deps{
		Config:    cfg,
		Log:       log,
		World:     ws,
		Tables:    tables,
		Scripting: eng,
		Rng:       rng,
		Bus:       bus,
	}
	gen := NewGenerator(cfg, tables, ws, rng, log)

	wm := gen.GenerateWorld()
	sess := world.NewSession(wm.ID)
	deps.Session = sess
	player := NewPlayer(cfg)
	id := ws.Spawn(player, wm, 0, 0)
	if id.IsZero() {
		return nil, fmt.Errorf("place player on %dx%d world map", wm.Width, wm.Height)
	}
	sess.Player = id

	g := &Game{
		Deps:   deps,
		Runner: coresys.NewRunner(),
		Queue:  handler.NewQueue(),
		Gen:    gen,
	}
	deps.Sink = sess.Log
	if journal != nil {
		g.Journal = NewJournalSystem(journal, sess.ID, bus, cfg.Journal.FlushInterval, cfg.Journal.BufferSize, log)
		deps.Sink = world.TeeSink{sess.Log, g.Journal}
	}

	combat := NewCombatSystem(deps)
	deps.Combat = combat
	deps.Travel = NewTravelService(deps, gen)
	g.Outcome = NewOutcomeSystem(deps)

	g.Runner.Register(NewInputSystem(deps, g.Queue))
	g.Runner.Register(NewEventDispatchSystem(bus))
	g.Runner.Register(NewNpcAISystem(deps, combat))
	g.Runner.Register(combat)
	g.Runner.Register(NewHitResolveSystem(deps))
	g.Runner.Register(g.Outcome)
	if g.Journal != nil {
		g.Runner.Register(g.Journal)
	}
	g.Runner.Register(NewCleanupSystem(ws, log))

	log.Info("game ready",
		zap.Stringer("session", sess.ID),
		zap.Int64("seed", seed))
	return g, nil
}

// Tick runs one full simulation step at now.
func (g *Game) Tick(now time.Duration) { g.Runner.Tick(now) }

// Push queues a player command for the next tick.
func (g *Game) Push(c handler.Command) { g.Queue.Push(c) }

// Done reports whether the session is over.
func (g *Game) Done() bool { return g.Outcome.Done() }
