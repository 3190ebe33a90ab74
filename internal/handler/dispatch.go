package handler

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Dispatch applies one command. Commands for a dead or missing player are
// dropped.
func Dispatch(c Command, deps *Deps, now time.Duration) {
	if p := deps.Player(); p == nil || !p.Alive {
		return
	}
	switch cmd := c.(type) {
	case Move:
		HandleMove(deps, cmd.DX, cmd.DY, now)
	case Face:
		HandleFace(deps, cmd.Sector)
	case Attack:
		HandleAttack(deps, now)
	case SelectTarget:
		HandleSelectTarget(deps, cmd.X, cmd.Y)
	case Equip:
		HandleEquip(deps, cmd.Item)
	case Unequip:
		HandleUnequip(deps, cmd.Item)
	case Consume:
		HandleConsume(deps, cmd.Item)
	case HotbarAssign:
		HandleHotbarAssign(deps, cmd.Slot, cmd.Item)
	case HotbarTrigger:
		HandleHotbarTrigger(deps, cmd.Slot)
	case Drop:
		HandleDrop(deps, cmd.Item)
	case OpenLoot:
		HandleOpenLoot(deps)
	case Take:
		HandleTake(deps, cmd.Item)
	case Put:
		HandlePut(deps, cmd.Item)
	case CloseContainer:
		HandleCloseContainer(deps)
	case Interact:
		if deps.Travel != nil {
			deps.Travel.Interact(now)
		}
	default:
		deps.Log.Warn("unknown command", zap.String("type", fmt.Sprintf("%T", c)))
	}
}
