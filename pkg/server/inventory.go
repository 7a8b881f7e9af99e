package server

import (
	"math"

	"emberhold/pkg/inventory"
	"emberhold/pkg/items"
	"emberhold/pkg/server/systems"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/config"
	"emberhold/pkg/shared/ecs"
	protocol "emberhold/pkg/shared/network"
)

// HandleInventoryAction applies one client inventory action. Runs on the
// tick goroutine under the server lock. Every action is answered with a
// fresh sync so a client that guessed wrong is corrected.
func (s *GameServer) HandleInventoryAction(p *Player, action protocol.InventoryActionPacket) {
	engine := p.Inventory.Engine()
	ok := false

	switch action.ActionType {
	case protocol.ActionBeginDrag:
		ok = engine.BeginDrag(action.Slot)
	case protocol.ActionDrop:
		ok = engine.Drop(action.Slot)
	case protocol.ActionCancel:
		ok = engine.Cancel()
	case protocol.ActionDiscard:
		var it inventory.Item
		if it, ok = engine.Discard(); ok {
			p.log.WithField("item", it.Kind()).Infof("Discarded %d.", it.Quantity())
		}
	case protocol.ActionUse:
		ok = s.useQuickSlot(p, action.Slot)
	case protocol.ActionPickup:
		ok = s.pickup(p, action.Target)
	default:
		p.log.Warnf("Unknown inventory action %q.", action.ActionType)
	}

	if !ok {
		p.log.WithField("action", action.ActionType).Debugf("Rejected at %s.", action.Slot)
	}
	p.dirty = true
}

func (s *GameServer) useQuickSlot(p *Player, ref inventory.SlotRef) bool {
	if ref.Container != inventory.QuickAccess {
		return false
	}
	used, ok := p.Inventory.UseQuick(ref.Index)
	if !ok {
		return false
	}
	stack, isStack := used.(*items.Stack)
	if !isStack {
		return true
	}
	def := stack.Definition()
	if def.HealAmount > 0 {
		if stats, _ := ecs.GetComponent[components.StatsComponent](s.World, p.EntityID); stats != nil {
			healed := stats.Heal(def.HealAmount)
			s.World.AddComponent(p.EntityID, *stats)
			p.log.WithField("item", def.ID).Debugf("Healed %.0f.", healed)
		}
	}
	return true
}

// pickup moves a ground item into the player's inventory. target 0 means
// the nearest item in range. Whatever does not fit stays on the ground.
func (s *GameServer) pickup(p *Player, target ecs.Entity) bool {
	id, ok := s.groundItemInRange(p.EntityID, target)
	if !ok {
		return false
	}
	ground, _ := ecs.GetComponent[components.GroundItemComponent](s.World, id)

	if ground.ItemID == items.CoinGold {
		p.Inventory.Store().AddGold(ground.Quantity)
		s.removeGroundItem(id)
		return true
	}

	stacks, err := systems.SplitStacks(ground.ItemID, ground.Quantity)
	if err != nil {
		p.log.WithError(err).Warn("Removing invalid ground item.")
		s.removeGroundItem(id)
		return false
	}
	taken := 0
	for _, stack := range stacks {
		n := stack.Quantity()
		if !p.Inventory.Pickup(stack) {
			break
		}
		taken += n
	}
	switch {
	case taken == 0:
		p.notify("Inventory full")
		return false
	case taken == ground.Quantity:
		s.removeGroundItem(id)
	default:
		ground.Quantity -= taken
		s.World.AddComponent(id, *ground)
		s.groundDirty = true
		p.notify("Inventory full")
	}
	return true
}

func (s *GameServer) groundItemInRange(playerID, target ecs.Entity) (ecs.Entity, bool) {
	px, py := s.positionOf(playerID)
	maxDist := s.cfg.Server.PickupRange

	best, bestDist := ecs.Entity(0), math.Inf(1)
	for _, id := range ecs.Query[components.GroundItemComponent](s.World) {
		if target != 0 && id != target {
			continue
		}
		x, y := s.positionOf(id)
		d := math.Hypot(x-px, y-py)
		if d <= maxDist && d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != 0
}

func (s *GameServer) positionOf(e ecs.Entity) (float64, float64) {
	if t, ok := ecs.GetComponent[components.TransformComponent](s.World, e); ok {
		return t.X, t.Y
	}
	return config.ArenaWidth / 2, config.ArenaHeight / 2
}

// spawnGroundItem drops quantity of itemID at the feet of owner.
func (s *GameServer) spawnGroundItem(owner ecs.Entity, itemID string, quantity int) ecs.Entity {
	x, y := s.positionOf(owner)
	id := s.World.NewEntity()
	s.World.AddComponent(id, components.TransformComponent{X: x, Y: y})
	s.World.AddComponent(id, components.GroundItemComponent{ItemID: itemID, Quantity: quantity})
	s.groundDirty = true
	return id
}

func (s *GameServer) removeGroundItem(id ecs.Entity) {
	s.World.RemoveEntity(id)
	s.groundDirty = true
}
