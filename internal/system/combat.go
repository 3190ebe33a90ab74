package system

import (
	"fmt"
	"time"

	"github.com/retrorpg/roguecore/internal/core/event"
	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// CombatSystem forms encounters around the player, prunes members that
// wandered off and drives the hostile side of every fight. Player swings
// arrive through PlayerAttemptHit. Phase 3 (Combat).
type CombatSystem struct {
	deps *handler.Deps
}

func NewCombatSystem(deps *handler.Deps) *CombatSystem {
	return &CombatSystem{deps: deps}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseCombat }

func (s *CombatSystem) Update(now time.Duration) {
	player := s.deps.Player()
	m := s.deps.CurrentMap()
	if player == nil || !player.Alive || m == nil {
		return
	}
	em := s.deps.World.Encounters

	if player.InFight && player.FightID == 0 {
		s.formEncounter(player, m)
	}

	f := em.FightOf(player.ID)
	if f == nil {
		return
	}
	if em.PruneByDistance(f, player, s.deps.Config.Combat.PruneDistance) {
		return
	}
	s.runHostileAI(f, m, now)
}

// roll succeeds when a uniform draw in [0, chance_roll_max] lands below chance.
func (s *CombatSystem) roll(chance int) bool {
	return s.deps.Rng.Intn(s.deps.Config.Combat.ChanceRollMax+1) < chance
}

// ---------- formation ----------

// formEncounter builds a fight from the player and every hostile actor
// within join distance. With nobody to fight the player's flag is dropped.
func (s *CombatSystem) formEncounter(player *world.Entity, m *world.Map) {
	var hostiles []*world.Entity
	for _, e := range m.NearbyEntities(player.X, player.Y, s.deps.Config.Combat.JoinDistance) {
		if e.IsPlayer() || !e.Alive || e.IsPassive() {
			continue
		}
		if e.IsHostile() || e.Target == player.ID {
			hostiles = append(hostiles, e)
		}
	}
	if len(hostiles) == 0 {
		player.InFight = false
		return
	}

	em := s.deps.World.Encounters
	f := em.Create()
	em.AddMember(f, player, s.deps.Rng)
	for _, e := range hostiles {
		em.AddMember(f, e, s.deps.Rng)
	}
	s.deps.Say("Combat started!", world.Red)

	if !targetAmong(player, hostiles) {
		nearest := hostiles[0]
		for _, e := range hostiles[1:] {
			if e.Manhattan(player) < nearest.Manhattan(player) {
				nearest = e
			}
		}
		player.Target = nearest.ID
		s.deps.Say(fmt.Sprintf("Auto-target: %c", nearest.Symbol), world.Green)
	}

	s.deps.Log.Debug("encounter formed",
		zap.Int32("fight", f.ID),
		zap.Int("members", len(f.Members)))
	event.Emit(s.deps.Bus, event.EncounterStarted{
		FightID: f.ID,
		Members: append(f.Members[:0:0], f.Members...),
	})
}

func targetAmong(player *world.Entity, group []*world.Entity) bool {
	if player.Target.IsZero() {
		return false
	}
	for _, e := range group {
		if e.ID == player.Target {
			return true
		}
	}
	return false
}

// JoinFight pulls an NPC into the player's running encounter. Used when a
// hostile starts a fight while one is already going.
func (s *CombatSystem) JoinFight(npc, player *world.Entity) bool {
	em := s.deps.World.Encounters
	f := em.FightOf(player.ID)
	if f == nil {
		return false
	}
	em.AddMember(f, npc, s.deps.Rng)
	return true
}

// ---------- player ----------

// PlayerAttemptHit implements handler.CombatQueue.
func (s *CombatSystem) PlayerAttemptHit(now time.Duration) {
	player := s.deps.Player()
	m := s.deps.CurrentMap()
	if player == nil || !player.Alive || m == nil {
		return
	}
	f := s.deps.World.Encounters.FightOf(player.ID)
	if f == nil {
		return
	}

	target := s.deps.World.Entity(player.Target)
	if target == nil || !target.Alive {
		s.deps.Say("No target!", world.Grey)
		return
	}
	if !player.Adjacent(target) {
		s.deps.Say("Target too far!", world.Grey)
		return
	}
	if !player.CanHit(now) {
		return
	}
	player.LastHit = now
	m.Enqueue(world.TimedEvent{
		FightID:  f.ID,
		Attacker: player.ID,
		Defender: target.ID,
		Created:  now,
		Delay:    s.deps.Config.Combat.HitDelay,
	})
	s.deps.Say("You swing...", world.White)
}

// ---------- hostile side ----------

// runHostileAI turns NPC members at random and lets the first eligible one
// start a swing, gated by the fight's shared attack cooldown. Members after
// the attacker wait for the next tick.
func (s *CombatSystem) runHostileAI(f *world.Fight, m *world.Map, now time.Duration) {
	cfg := s.deps.Config.Combat
	for _, id := range append(f.Members[:0:0], f.Members...) {
		e := s.deps.World.Entity(id)
		if e == nil || e.IsPlayer() || !e.Alive {
			continue
		}

		if e.CanTurn(now) && s.roll(cfg.DirectionChangeChance) {
			e.LastTurn = now
			s.deps.World.Encounters.SetFacing(f, e.ID, s.deps.Rng.Intn(world.SectorCount))
		}

		if now <= f.NextEnemyAttack || !e.CanHit(now) || !s.roll(cfg.HitChance) {
			continue
		}
		target := s.deps.World.Entity(e.Target)
		if target == nil || !target.Alive || target.MapID != e.MapID || !e.Adjacent(target) {
			continue
		}
		e.LastHit = now
		m.Enqueue(world.TimedEvent{
			FightID:  f.ID,
			Attacker: e.ID,
			Defender: target.ID,
			Created:  now,
			Delay:    cfg.HitDelay,
		})
		f.NextEnemyAttack = now + cfg.GlobalCooldown
		return
	}
}
