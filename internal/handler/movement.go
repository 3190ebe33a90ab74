package handler

import (
	"fmt"
	"time"

	"github.com/retrorpg/roguecore/internal/world"
)

// HandleMove steps the player one tile if the move delay has passed and the
// destination is passable. Blocked moves still consume the delay.
func HandleMove(deps *Deps, dx, dy int32, now time.Duration) {
	player := deps.Player()
	m := deps.CurrentMap()
	if m == nil || (dx == 0 && dy == 0) {
		return
	}
	if !player.CanMove(now) {
		return
	}
	player.LastMove = now

	tx, ty := player.X+dx, player.Y+dy
	if !m.IsPassable(tx, ty) {
		return
	}
	m.MoveEntity(player, tx, ty)
}

// HandleFace turns the player inside its current encounter.
func HandleFace(deps *Deps, sector int) {
	player := deps.Player()
	f := deps.World.Encounters.FightOf(player.ID)
	if f == nil {
		return
	}
	deps.World.Encounters.SetPlayerFacing(f, player.ID, sector)
}

// HandleSelectTarget targets the NPC at (x, y). Empty tiles and the player
// itself are ignored.
func HandleSelectTarget(deps *Deps, x, y int32) {
	player := deps.Player()
	m := deps.CurrentMap()
	if m == nil {
		return
	}
	e := m.EntityAt(x, y)
	if e == nil || e.IsPlayer() {
		return
	}
	player.Target = e.ID
	deps.Say(fmt.Sprintf("Target: %c", e.Symbol), world.Green)
}

// HandleAttack hands the swing to the combat system.
func HandleAttack(deps *Deps, now time.Duration) {
	if deps.Combat == nil {
		return
	}
	deps.Combat.PlayerAttemptHit(now)
}
