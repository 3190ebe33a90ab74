package handler

import (
	"math/rand"
	"time"

	"github.com/retrorpg/roguecore/internal/config"
	"github.com/retrorpg/roguecore/internal/core/event"
	"github.com/retrorpg/roguecore/internal/data"
	"github.com/retrorpg/roguecore/internal/scripting"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// CombatQueue is implemented by the combat system so thin handlers can hand
// off attack requests.
type CombatQueue interface {
	PlayerAttemptHit(now time.Duration)
}

// Travel is implemented by the travel system: entering and leaving
// locations from the player's current cell.
type Travel interface {
	Interact(now time.Duration)
}

// Deps holds shared dependencies injected into all command handlers and
// systems.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	World     *world.State
	Session   *world.Session
	Tables    *data.Tables
	Scripting *scripting.Engine
	Rng       *rand.Rand
	Sink      world.Sink // player-facing messages
	Bus       *event.Bus
	Combat    CombatQueue
	Travel    Travel
}

// Player resolves the session's player, nil once it is gone.
func (d *Deps) Player() *world.Entity {
	return d.World.Entity(d.Session.Player)
}

// CurrentMap is the map the player is on.
func (d *Deps) CurrentMap() *world.Map {
	return d.World.Map(d.Session.Current)
}

// Say posts a player-facing message.
func (d *Deps) Say(text string, color world.Color) {
	if d.Sink != nil {
		d.Sink.Add(text, color)
	}
}
