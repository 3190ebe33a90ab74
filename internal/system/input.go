package system

import (
	"time"

	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/handler"
)

// InputSystem drains the command queue filled by the frontend and dispatches
// each command through the handlers. Phase 0 (Input).
type InputSystem struct {
	deps  *handler.Deps
	queue *handler.Queue
}

func NewInputSystem(deps *handler.Deps, queue *handler.Queue) *InputSystem {
	return &InputSystem{deps: deps, queue: queue}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(now time.Duration) {
	for _, c := range s.queue.Drain() {
		handler.Dispatch(c, s.deps, now)
	}
}
