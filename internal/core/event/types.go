package event

import "github.com/retrorpg/roguecore/internal/core/ecs"

// EntityDied fires once when an actor's health reaches zero.
type EntityDied struct {
	EntityID ecs.EntityID
	Symbol   rune
	MapID    int32
	X, Y     int32
	Dropped  int // items moved into the loot pile
	Player   bool
}

// EncounterStarted fires when a new fight is formed.
type EncounterStarted struct {
	FightID int32
	Members []ecs.EntityID
}

// EncounterEnded fires when a fight dissolves.
type EncounterEnded struct {
	FightID int32
}

// HitResolved fires for every pending hit that reached resolution with both
// participants present.
type HitResolved struct {
	FightID  int32
	Attacker ecs.EntityID
	Defender ecs.EntityID
	Damage   int32
	Blocked  bool
}
