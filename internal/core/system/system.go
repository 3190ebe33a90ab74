package system

import "time"

// Phase defines execution ordering within a single simulation tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain queued player commands
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseBehavior                // 2: NPC behavior + movement policies
	PhaseCombat                  // 3: encounter formation, pruning, hostile AI
	PhaseResolve                 // 4: pending hits, damage, deaths
	PhasePostUpdate              // 5: encounter dissolution, session outcome
	PhasePersist                 // 6: journal flush
	PhaseCleanup                 // 7: destroy queued entities
)

// System is the interface every simulation system implements.
// now is the caller-supplied monotonic session clock; systems never read the
// wall clock themselves.
type System interface {
	Phase() Phase
	Update(now time.Duration)
}
