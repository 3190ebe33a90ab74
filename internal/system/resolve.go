package system

import (
	"fmt"
	"time"

	"github.com/retrorpg/roguecore/internal/core/event"
	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/scripting"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// HitResolveSystem lands the pending hits of the current map once their
// delay has run out. Phase 4 (Resolve).
type HitResolveSystem struct {
	deps *handler.Deps
}

func NewHitResolveSystem(deps *handler.Deps) *HitResolveSystem {
	return &HitResolveSystem{deps: deps}
}

func (s *HitResolveSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *HitResolveSystem) Update(now time.Duration) {
	m := s.deps.CurrentMap()
	if m == nil {
		return
	}
	for _, ev := range m.TakeDue(now) {
		s.resolve(ev, m)
	}
}

// resolve applies one hit. It is dropped silently when the fight is gone or
// either side no longer has a facing in it.
func (s *HitResolveSystem) resolve(ev world.TimedEvent, m *world.Map) {
	f := s.deps.World.Encounters.Get(ev.FightID)
	if f == nil {
		return
	}
	att := s.deps.World.Entity(ev.Attacker)
	def := s.deps.World.Entity(ev.Defender)
	if att == nil || def == nil || !def.Alive {
		return
	}
	attDir, ok := f.Facing(att.ID)
	if !ok {
		return
	}
	defDir, ok := f.Facing(def.ID)
	if !ok {
		return
	}

	if attDir == defDir {
		s.deps.Say(fmt.Sprintf("%c BLOCKED %c!", def.Symbol, att.Symbol), world.Purple)
		event.Emit(s.deps.Bus, event.HitResolved{
			FightID: f.ID, Attacker: att.ID, Defender: def.ID, Blocked: true,
		})
		return
	}

	dmg := MeleeDamage(s.deps.Scripting, att, def, attDir, defDir)
	event.Emit(s.deps.Bus, event.HitResolved{
		FightID: f.ID, Attacker: att.ID, Defender: def.ID, Damage: dmg,
	})
	if dmg <= 0 {
		s.deps.Say(fmt.Sprintf("%c hit armor (0 dmg)", att.Symbol), world.Grey)
		return
	}
	s.deps.Say(fmt.Sprintf("%c hit %c for %d", att.Symbol, def.Symbol, dmg), world.Red)
	if def.ApplyDamage(dmg, att.ID) {
		Kill(s.deps, def, m)
	}
}

// MeleeDamage is the raw swing (strength plus weapon, or whatever the
// calc_melee_damage hook returns) minus the armour piece selected by the
// attacker's facing, never below zero.
func MeleeDamage(eng *scripting.Engine, att, def *world.Entity, attDir, defDir int) int32 {
	raw := eng.CalcMeleeDamage(scripting.MeleeContext{
		AttackerName:     att.Name,
		AttackerStrength: int(att.Strength),
		WeaponDamage:     int(att.Equip.WeaponDamage()),
		AttackerFacing:   attDir,
		DefenderName:     def.Name,
		DefenderHealth:   int(def.Health),
		DefenderFacing:   defDir,
	})
	dmg := int32(raw) - def.Equip.Protection(world.ArmorSlotForSector(attDir))
	if dmg < 0 {
		return 0
	}
	return dmg
}

// ---------- death ----------

// Kill takes e off the board: it leaves its map and encounter, drops what it
// carried into the pile on its cell, and nobody targets it any more. NPC
// handles are released at tick end; the player's stays so the session can
// read the outcome.
func Kill(deps *handler.Deps, e *world.Entity, m *world.Map) {
	if !e.Alive {
		return
	}
	e.Alive = false
	x, y := e.X, e.Y
	m.RemoveEntity(e)

	em := deps.World.Encounters
	if f := em.FightOf(e.ID); f != nil {
		em.RemoveMember(f, e.ID)
	}

	dropped := dropLoot(e, m, x, y)
	deps.World.ClearTargetsOn(e.ID)

	deps.Log.Debug("entity died",
		zap.String("name", e.Name),
		zap.Int32("x", x), zap.Int32("y", y),
		zap.Int("dropped", dropped))
	event.Emit(deps.Bus, event.EntityDied{
		EntityID: e.ID,
		Symbol:   e.Symbol,
		MapID:    int32(m.ID),
		X:        x,
		Y:        y,
		Dropped:  dropped,
		Player:   e.IsPlayer(),
	})
	if !e.IsPlayer() {
		deps.World.Despawn(e.ID)
	}
}

// dropLoot moves everything e carried into the pile at (x, y), creating the
// pile when the cell has none. Equipped items come off first.
func dropLoot(e *world.Entity, m *world.Map, x, y int32) int {
	items := e.Inv.Drain()
	if len(items) == 0 {
		return 0
	}
	pile := m.PileAt(x, y)
	if pile == nil {
		pile = world.NewPile(x, y)
		if !m.PlaceAtOwn(pile) {
			return 0
		}
	}
	for _, it := range items {
		e.Equip.Unequip(it)
		e.ClearHotbar(it)
		pile.Add(it)
	}
	return len(items)
}
