package world

import (
	"time"

	"github.com/retrorpg/roguecore/internal/core/ecs"
)

// ActorKind is the closed set of actor dispositions.
type ActorKind uint8

const (
	ActorPlayer ActorKind = iota
	ActorHostile
	ActorPassive
)

func (k ActorKind) String() string {
	switch k {
	case ActorPlayer:
		return "player"
	case ActorHostile:
		return "hostile"
	case ActorPassive:
		return "passive"
	}
	return "unknown"
}

const HotbarSize = 5

// Entity is a living actor standing on a map: the player or an NPC.
// Accessed only from the tick goroutine, no locks.
type Entity struct {
	ID     ecs.EntityID
	Actor  ActorKind
	Name   string // template name, e.g. "Goblin"
	Symbol rune
	Color  Color

	MapID MapID
	X     int32
	Y     int32

	Health    int32
	MaxHealth int32
	Strength  int32 // base; weapon damage is added at hit resolution
	Vision    int32
	Alive     bool

	Inv    *Inventory
	Equip  Equipment
	Hotbar [HotbarSize]*Item // player only

	Target  ecs.EntityID
	InFight bool
	FightID int32 // 0 = no encounter

	HitCooldown  time.Duration
	MoveCooldown time.Duration
	PathCooldown time.Duration
	TurnCooldown time.Duration

	LastHit    time.Duration
	LastMove   time.Duration
	LastRepath time.Duration
	LastTurn   time.Duration

	Path []Point // cached route, next step first
}

// NewEntity returns a live actor with an empty inventory.
func NewEntity(actor ActorKind, name string, symbol rune, color Color, health, strength, vision int32) *Entity {
	return &Entity{
		Actor:     actor,
		Name:      name,
		Symbol:    symbol,
		Color:     color,
		Health:    health,
		MaxHealth: health,
		Strength:  strength,
		Vision:    vision,
		Alive:     true,
		Inv:       NewInventory(),
	}
}

func (e *Entity) Kind() Kind      { return KindEntity }
func (e *Entity) Priority() int   { return 0 }
func (e *Entity) Passable() bool  { return false }
func (e *Entity) Glyph() Glyph    { return Glyph{Symbol: e.Symbol, Color: e.Color} }
func (e *Entity) Position() Point { return Point{e.X, e.Y} }

func (e *Entity) IsPlayer() bool  { return e.Actor == ActorPlayer }
func (e *Entity) IsHostile() bool { return e.Actor == ActorHostile }
func (e *Entity) IsPassive() bool { return e.Actor == ActorPassive }

// Cooldown predicates are strict: the action is allowed once now is past
// last + cooldown.

func (e *Entity) CanHit(now time.Duration) bool    { return now > e.LastHit+e.HitCooldown }
func (e *Entity) CanMove(now time.Duration) bool   { return now > e.LastMove+e.MoveCooldown }
func (e *Entity) CanRepath(now time.Duration) bool { return now > e.LastRepath+e.PathCooldown }
func (e *Entity) CanTurn(now time.Duration) bool   { return now > e.LastTurn+e.TurnCooldown }

// Sees reports whether (x, y) is within vision on both axes.
func (e *Entity) Sees(x, y int32) bool {
	return abs32(x-e.X) <= e.Vision && abs32(y-e.Y) <= e.Vision
}

// Adjacent is true within one tile on both axes (diagonals included).
func (e *Entity) Adjacent(o *Entity) bool {
	return abs32(e.X-o.X) <= 1 && abs32(e.Y-o.Y) <= 1
}

// Manhattan distance to o.
func (e *Entity) Manhattan(o *Entity) int32 {
	return abs32(e.X-o.X) + abs32(e.Y-o.Y)
}

// ChebyshevWithin is true when o is within d on both axes.
func (e *Entity) ChebyshevWithin(o *Entity, d int32) bool {
	return abs32(e.X-o.X) <= d && abs32(e.Y-o.Y) <= d
}

// ApplyDamage subtracts dmg. A struck NPC retargets the attacker and a
// passive one turns hostile. Health never drops below zero.
// Returns true when health reached zero.
func (e *Entity) ApplyDamage(dmg int32, attacker ecs.EntityID) bool {
	e.Health -= dmg
	if e.Health < 0 {
		e.Health = 0
	}
	if !e.IsPlayer() && e.Alive && !attacker.IsZero() {
		if e.Actor == ActorPassive {
			e.Actor = ActorHostile
		}
		e.Target = attacker
	}
	return e.Health <= 0
}

// Heal restores up to amount, capped at MaxHealth.
func (e *Entity) Heal(amount int32) {
	e.Health += amount
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
}

// ClearHotbar empties every hotbar slot that points at it.
func (e *Entity) ClearHotbar(it *Item) {
	for i, h := range e.Hotbar {
		if h == it {
			e.Hotbar[i] = nil
		}
	}
}
