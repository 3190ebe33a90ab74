package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retrorpg/roguecore/internal/config"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/persist"
	"github.com/retrorpg/roguecore/internal/system"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// fakeRepo records journal writes and the session end in call order.
type fakeRepo struct {
	calls   []string
	written int
	ended   uuid.UUID
	outcome string
}

func (f *fakeRepo) WriteBatch(_ context.Context, _ uuid.UUID, entries []persist.JournalEntry) error {
	f.calls = append(f.calls, "write")
	f.written += len(entries)
	return nil
}

func (f *fakeRepo) EndSession(_ context.Context, id uuid.UUID, outcome string) error {
	f.calls = append(f.calls, "end")
	f.ended, f.outcome = id, outcome
	return nil
}

func newTestGame(t *testing.T, journal system.JournalWriter) *system.Game {
	t.Helper()
	cfg := config.Defaults()
	root := filepath.Join("..", "..")
	cfg.Data.NpcList = filepath.Join(root, cfg.Data.NpcList)
	cfg.Data.ItemList = filepath.Join(root, cfg.Data.ItemList)
	cfg.Data.SpawnList = filepath.Join(root, cfg.Data.SpawnList)
	tables, err := loadTables(cfg.Data)
	if err != nil {
		t.Fatal(err)
	}
	g, err := system.NewGame(cfg, tables, nil, 5, journal, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCloseSessionStampsOutcomeAfterFlush(t *testing.T) {
	repo := &fakeRepo{}
	g := newTestGame(t, repo)
	g.Push(handler.Interact{})
	g.Tick(time.Second)
	g.Deps.Session.Outcome = world.OutcomeWon

	closeSession(context.Background(), g, repo, zap.NewNop())
	if repo.outcome != "won" || repo.ended != g.Deps.Session.ID {
		t.Errorf("ended %v with %q", repo.ended, repo.outcome)
	}
	if len(repo.calls) < 2 || repo.calls[len(repo.calls)-1] != "end" || repo.written == 0 {
		t.Errorf("calls = %v, written = %d", repo.calls, repo.written)
	}
}

func TestAutopilotEntersThenAttacks(t *testing.T) {
	g := newTestGame(t, nil)
	a := &autopilot{}
	a.push(g)
	if g.Queue.Len() != 1 || !a.entered {
		t.Fatalf("queue = %d", g.Queue.Len())
	}
	g.Tick(time.Second)
	a.push(g)
	if g.Queue.Len() != 0 {
		t.Error("attacked outside a fight")
	}
}
