package system

import (
	"time"

	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/world"
)

// NpcAISystem runs the behaviour and movement policy of every NPC on the
// player's map. Actors on other maps are frozen. Phase 2 (Behavior).
type NpcAISystem struct {
	deps   *handler.Deps
	joiner fightJoiner
}

// fightJoiner adds an NPC to the player's running encounter.
type fightJoiner interface {
	JoinFight(npc, player *world.Entity) bool
}

func NewNpcAISystem(deps *handler.Deps, joiner fightJoiner) *NpcAISystem {
	return &NpcAISystem{deps: deps, joiner: joiner}
}

func (s *NpcAISystem) Phase() coresys.Phase { return coresys.PhaseBehavior }

func (s *NpcAISystem) Update(now time.Duration) {
	player := s.deps.Player()
	m := s.deps.CurrentMap()
	if player == nil || !player.Alive || m == nil {
		return
	}
	for _, e := range m.Entities() {
		if e.IsPlayer() || !e.Alive {
			continue
		}
		s.behave(e, player, m, now)
	}
}

// NpcMode is the derived state of an NPC relative to the player.
type NpcMode uint8

const (
	NpcIdle     NpcMode = iota // wandering, no fight
	NpcPursuing                // in a fight, not yet adjacent
	NpcEngaged                 // in a fight and adjacent
)

func (m NpcMode) String() string {
	switch m {
	case NpcIdle:
		return "idle"
	case NpcPursuing:
		return "pursuing"
	case NpcEngaged:
		return "engaged"
	}
	return "unknown"
}

// NpcState derives e's mode from its flags and distance to the player.
func NpcState(e, player *world.Entity) NpcMode {
	switch {
	case !e.InFight:
		return NpcIdle
	case e.Adjacent(player):
		return NpcEngaged
	default:
		return NpcPursuing
	}
}

// behave: an aggressive NPC close to the player picks a fight; any NPC not
// pinned in melee takes a step once its move cooldown allows.
func (s *NpcAISystem) behave(e, player *world.Entity, m *world.Map, now time.Duration) {
	adjacent := e.Adjacent(player)
	if !adjacent && !e.InFight && e.IsHostile() &&
		e.Manhattan(player) < s.deps.Config.Combat.TriggerDistance {
		s.startFight(e, player)
	}

	if !e.CanMove(now) {
		return
	}
	if e.InFight && adjacent {
		return
	}
	e.Target = player.ID
	s.step(e, m, now)
}

func (s *NpcAISystem) startFight(e, player *world.Entity) {
	e.InFight = true
	e.Target = player.ID
	player.InFight = true
	if player.FightID != 0 && s.joiner != nil {
		s.joiner.JoinFight(e, player)
	}
}

// step consumes the move cooldown whether or not the NPC actually moves.
func (s *NpcAISystem) step(e *world.Entity, m *world.Map, now time.Duration) {
	e.LastMove = now
	next := s.nextStep(e, m, now)
	if next.X == e.X && next.Y == e.Y {
		return
	}
	m.MoveEntity(e, next.X, next.Y)
}

// nextStep follows the cached path towards a visible target when the NPC is
// aggressive, recomputing it once the path cooldown allows. Anything else,
// or a blocked path node, falls back to a random wander step.
func (s *NpcAISystem) nextStep(e *world.Entity, m *world.Map, now time.Duration) world.Point {
	target := s.deps.World.Entity(e.Target)
	if e.IsHostile() && target != nil && target.MapID == e.MapID && e.Sees(target.X, target.Y) {
		if e.CanRepath(now) {
			e.LastRepath = now
			e.Path = world.FindPath(m, e.Position(), target.Position(), int(e.Vision))
		}
		if len(e.Path) > 0 {
			node := e.Path[0]
			if nextTo(e.Position(), node) && m.IsPassable(node.X, node.Y) {
				e.Path = e.Path[1:]
				return node
			}
			// off the path or blocked; wait for the next repath
			e.Path = nil
		}
	}
	return s.wander(e, m)
}

// nextTo is true when b is one king step from a.
func nextTo(a, b world.Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0)
}

func (s *NpcAISystem) wander(e *world.Entity, m *world.Map) world.Point {
	dx := int32(s.deps.Rng.Intn(3) - 1)
	dy := int32(s.deps.Rng.Intn(3) - 1)
	nx, ny := e.X+dx, e.Y+dy
	if m.IsPassable(nx, ny) {
		return world.Point{X: nx, Y: ny}
	}
	return e.Position()
}
