package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/retrorpg/roguecore/internal/config"
	"github.com/retrorpg/roguecore/internal/data"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/persist"
	"github.com/retrorpg/roguecore/internal/scripting"
	"github.com/retrorpg/roguecore/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printBanner(seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        roguesim  v0.1.0       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mseed:\033[0m %d\n\n", seed)
}

func printSection(title string) {
	fmt.Printf("\033[36m── %s \033[0m\n", title)
}

func printStat(label string, count int) {
	fmt.Printf("  %-24s \033[1m%d\033[0m\n", label, count)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func run() error {
	cfgPath := "config/roguesim.toml"
	if p := os.Getenv("ROGUESIM_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	printBanner(seed)

	// 1. Data tables
	printSection("data")
	tables, err := loadTables(cfg.Data)
	if err != nil {
		return err
	}
	printStat("npc templates", tables.Npcs.Count())
	printStat("item templates", tables.Items.Count())

	// 2. Scripts
	eng, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer eng.Close()
	printOK("scripts loaded from " + cfg.Scripting.Dir)

	// 3. Journal database, optional
	var repo *persist.JournalRepo
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		applied, err := persist.RunMigrations(ctx, db.Pool, log)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		repo = persist.NewJournalRepo(db)
		printStat("migrations applied", applied)
	}

	// 4. World
	printSection("world")
	var journal system.JournalWriter
	if repo != nil {
		journal = repo
	}
	g, err := system.NewGame(cfg, tables, eng, seed, journal, log)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	sess := g.Deps.Session
	if repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := repo.CreateSession(ctx, sess.ID, seed, sess.StartedAt)
		cancel()
		if err != nil {
			return err
		}
	}
	printStat("maps", g.Deps.World.MapCount())
	printOK(fmt.Sprintf("game loop (tick %s)", cfg.Sim.TickRate))
	fmt.Println()

	// 5. Loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	start := time.Now()
	pilot := &autopilot{}
	for stopped := false; !stopped; {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			stopped = true
		case <-ticker.C:
			pilot.push(g)
			g.Tick(time.Since(start))
			if g.Done() {
				stopped = true
			}
			if cfg.Sim.MaxTicks > 0 && g.Runner.Ticks() >= cfg.Sim.MaxTicks {
				log.Info("tick limit reached", zap.Uint64("ticks", g.Runner.Ticks()))
				stopped = true
			}
		}
	}

	if repo != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		closeSession(flushCtx, g, repo, log)
		cancel()
	}

	for _, m := range sess.Log.Recent(sess.Log.Len()) {
		log.Info(m.Text, zap.String("color", m.Color.String()))
	}
	log.Info("session finished",
		zap.Stringer("outcome", sess.Outcome),
		zap.Uint64("ticks", g.Runner.Ticks()))
	return nil
}

// sessionEnder stamps the final outcome of a journalled session.
type sessionEnder interface {
	EndSession(ctx context.Context, id uuid.UUID, outcome string) error
}

// closeSession writes what is left of the journal, then the outcome.
func closeSession(ctx context.Context, g *system.Game, ender sessionEnder, log *zap.Logger) {
	sess := g.Deps.Session
	if g.Journal != nil {
		if err := g.Journal.Flush(ctx); err != nil {
			log.Error("final journal flush", zap.Error(err))
		}
	}
	if err := ender.EndSession(ctx, sess.ID, sess.Outcome.String()); err != nil {
		log.Error("end session", zap.Error(err))
	}
}

// autopilot plays the player side when nobody is at the keyboard: walk into
// the first location, then swing at whatever the encounter offers.
type autopilot struct {
	entered bool
}

func (a *autopilot) push(g *system.Game) {
	p := g.Deps.Player()
	if p == nil || !p.Alive {
		return
	}
	if !a.entered {
		g.Push(handler.Interact{})
		a.entered = true
		return
	}
	if p.InFight {
		g.Push(handler.Attack{})
	}
}

func loadTables(cfg config.DataConfig) (*data.Tables, error) {
	npcs, err := data.LoadNpcTable(cfg.NpcList)
	if err != nil {
		return nil, fmt.Errorf("load npc table: %w", err)
	}
	items, err := data.LoadItemTable(cfg.ItemList)
	if err != nil {
		return nil, fmt.Errorf("load item table: %w", err)
	}
	spawns, err := data.LoadSpawnTable(cfg.SpawnList)
	if err != nil {
		return nil, fmt.Errorf("load spawn table: %w", err)
	}
	tables := &data.Tables{Npcs: npcs, Items: items, Spawns: spawns}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("validate tables: %w", err)
	}
	return tables, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
