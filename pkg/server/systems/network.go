package systems

import (
	"emberhold/pkg/inventory"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/ecs"
	protocol "emberhold/pkg/shared/network"
)

type NetworkSystem struct {
	World *ecs.World
}

func NewNetworkSystem(world *ecs.World) *NetworkSystem {
	return &NetworkSystem{
		World: world,
	}
}

func (s *NetworkSystem) PrepareStateUpdate() protocol.Packet {
	snapshot := protocol.StateUpdatePacket{
		Entities: make([]protocol.EntitySnapshot, 0),
	}

	entities := ecs.Query[components.SpriteComponent](s.World)
	for _, id := range entities {
		trans, _ := ecs.GetComponent[components.TransformComponent](s.World, id)
		sprite, _ := ecs.GetComponent[components.SpriteComponent](s.World, id)
		stats, _ := ecs.GetComponent[components.StatsComponent](s.World, id)

		if trans != nil {
			snapshot.Entities = append(snapshot.Entities, protocol.EntitySnapshot{
				ID:        id,
				Transform: trans,
				Sprite:    sprite,
				Stats:     stats,
			})
		}
	}

	return protocol.Packet{
		Type: protocol.PacketStateUpdate,
		Data: snapshot,
	}
}

// PrepareGroundItems lists every item lying in the world.
func (s *NetworkSystem) PrepareGroundItems() protocol.Packet {
	sync := protocol.GroundItemsSyncPacket{
		Items: make([]protocol.GroundItem, 0),
	}
	for _, id := range ecs.Query[components.GroundItemComponent](s.World) {
		item, _ := ecs.GetComponent[components.GroundItemComponent](s.World, id)
		trans, _ := ecs.GetComponent[components.TransformComponent](s.World, id)
		if trans == nil {
			continue
		}
		sync.Items = append(sync.Items, protocol.GroundItem{
			ID:       id,
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			X:        trans.X,
			Y:        trans.Y,
		})
	}
	return protocol.Packet{
		Type: protocol.PacketGroundItemsSync,
		Data: sync,
	}
}

// PrepareInventorySync renders inv as the packet the owning client mirrors.
func PrepareInventorySync(inv *inventory.Inventory) protocol.Packet {
	store := inv.Store()
	sync := protocol.InventorySyncPacket{
		Width:      store.Width(),
		Height:     store.Height(),
		QuickSlots: store.QuickSlots(),
		Grid:       make([]protocol.ItemSlot, 0),
		Quick:      make([]protocol.ItemSlot, 0),
		Gold:       store.Gold(),
	}
	store.Each(inventory.Grid, func(ref inventory.SlotRef, it inventory.Item) {
		sync.Grid = append(sync.Grid, protocol.ItemSlot{Index: ref.Index, ItemID: it.Kind(), Quantity: it.Quantity()})
	})
	store.Each(inventory.QuickAccess, func(ref inventory.SlotRef, it inventory.Item) {
		sync.Quick = append(sync.Quick, protocol.ItemSlot{Index: ref.Index, ItemID: it.Kind(), Quantity: it.Quantity()})
	})
	if tx, ok := inv.Engine().Transaction(); ok {
		sync.Dragging = true
		sync.DragSource = tx.Source
		sync.DragItem = protocol.ItemSlot{Index: tx.Source.Index, ItemID: tx.Item.Kind(), Quantity: tx.Item.Quantity()}
	}
	return protocol.Packet{
		Type: protocol.PacketInventorySync,
		Data: sync,
	}
}
