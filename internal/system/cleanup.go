package system

import (
	"time"

	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred despawn queue at tick end.
// Phase 7 (Cleanup).
type CleanupSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewCleanupSystem(ws *world.State, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: ws, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if released := s.world.FlushDespawned(); len(released) > 0 {
		s.log.Debug("despawned",
			zap.Int("count", len(released)),
			zap.Int("remaining", s.world.ActorCount()))
	}
}
