package handler

import "github.com/retrorpg/roguecore/internal/world"

// Command is one player intent produced by whatever input layer drives the
// simulation. Commands are queued and applied at the start of the next tick.
type Command interface {
	command()
}

// Move steps the player by (DX, DY), throttled by the player move delay.
type Move struct{ DX, DY int32 }

// Face turns the player on the combat widget. NoSector is ignored.
type Face struct{ Sector int }

// Attack asks for a melee swing at the current target.
type Attack struct{}

// SelectTarget picks the NPC standing at (X, Y) on the current map.
type SelectTarget struct{ X, Y int32 }

type Equip struct{ Item *world.Item }
type Unequip struct{ Item *world.Item }
type Consume struct{ Item *world.Item }

// HotbarAssign binds a carried item to hotbar slot 0..4.
type HotbarAssign struct {
	Slot int
	Item *world.Item
}

type HotbarTrigger struct{ Slot int }

// Drop puts a carried item into the pile under the player.
type Drop struct{ Item *world.Item }

// OpenLoot opens the chest, or else the pile, under the player.
type OpenLoot struct{}

// Take moves an item from the open container to the inventory.
type Take struct{ Item *world.Item }

// Put moves a carried item into the open container.
type Put struct{ Item *world.Item }

type CloseContainer struct{}

// Interact enters or leaves a location from the current cell.
type Interact struct{}

func (Move) command()           {}
func (Face) command()           {}
func (Attack) command()         {}
func (SelectTarget) command()   {}
func (Equip) command()          {}
func (Unequip) command()        {}
func (Consume) command()        {}
func (HotbarAssign) command()   {}
func (HotbarTrigger) command()  {}
func (Drop) command()           {}
func (OpenLoot) command()       {}
func (Take) command()           {}
func (Put) command()            {}
func (CloseContainer) command() {}
func (Interact) command()       {}

// Queue buffers commands between ticks. Push may be called by the input
// layer; Drain is called by the input system only. Not safe for concurrent
// use: a driver on another goroutine must hand commands over through a
// channel first.
type Queue struct {
	cmds []Command
}

func NewQueue() *Queue {
	return &Queue{cmds: make([]Command, 0, 8)}
}

func (q *Queue) Push(c Command) {
	q.cmds = append(q.cmds, c)
}

// Drain returns queued commands in arrival order and empties the queue.
func (q *Queue) Drain() []Command {
	if len(q.cmds) == 0 {
		return nil
	}
	out := q.cmds
	q.cmds = make([]Command, 0, cap(out))
	return out
}

func (q *Queue) Len() int { return len(q.cmds) }
