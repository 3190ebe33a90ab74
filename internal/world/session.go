package world

import (
	"time"

	"github.com/google/uuid"
	"github.com/retrorpg/roguecore/internal/core/ecs"
)

// Outcome is the terminal state of a game session.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomePlayerDied
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomePlayerDied:
		return "player_died"
	case OutcomeWon:
		return "won"
	}
	return "unknown"
}

// Session is one play-through: who the player is, where they stand and how
// it ended.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	Player       ecs.EntityID
	WorldMap     MapID
	Current      MapID
	LastWorldPos Point // where the player stood before entering a location

	Log     *MessageLog
	Outcome Outcome

	// OpenContainer is the chest or pile the player is browsing, nil if none.
	OpenContainer *Container
}

func NewSession(worldMap MapID) *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		WorldMap:  worldMap,
		Current:   worldMap,
		Log:       NewMessageLog(MessageLogSize),
	}
}

// InLocation is true while the player is inside a generated location.
func (s *Session) InLocation() bool { return s.Current != s.WorldMap }

// Evaluate settles the outcome from the player's state. A finished session
// keeps its first outcome.
func (s *Session) Evaluate(player *Entity, winGold int32) Outcome {
	if s.Outcome != OutcomeRunning {
		return s.Outcome
	}
	switch {
	case player == nil || !player.Alive:
		s.Outcome = OutcomePlayerDied
	case player.Inv.Currency() >= winGold:
		s.Outcome = OutcomeWon
	}
	return s.Outcome
}
