package system

import (
	"time"

	"github.com/retrorpg/roguecore/internal/core/event"
	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/handler"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// OutcomeSystem announces dissolved encounters and settles whether the
// session is won or lost. Phase 5 (PostUpdate).
type OutcomeSystem struct {
	deps *handler.Deps
}

func NewOutcomeSystem(deps *handler.Deps) *OutcomeSystem {
	return &OutcomeSystem{deps: deps}
}

func (s *OutcomeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *OutcomeSystem) Update(_ time.Duration) {
	for _, id := range s.deps.World.Encounters.TakeDissolved() {
		s.deps.Say("Combat Ended", world.Green)
		event.Emit(s.deps.Bus, event.EncounterEnded{FightID: id})
	}

	sess := s.deps.Session
	if sess.Outcome != world.OutcomeRunning {
		return
	}
	if out := sess.Evaluate(s.deps.Player(), s.deps.Config.Player.WinGold); out != world.OutcomeRunning {
		s.deps.Log.Info("session over",
			zap.Stringer("session", sess.ID),
			zap.Stringer("outcome", out))
	}
}

// Done reports whether the session reached a terminal outcome.
func (s *OutcomeSystem) Done() bool {
	return s.deps.Session.Outcome != world.OutcomeRunning
}
