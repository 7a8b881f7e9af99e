package network

import (
	"encoding/gob"
	"sync"

	"emberhold/pkg/inventory"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/ecs"
)

var registerOnce sync.Once

// RegisterGobTypes registers all types that will be sent over the wire.
func RegisterGobTypes() {
	registerOnce.Do(func() {
		gob.Register(LoginPacket{})
		gob.Register(LoginResponsePacket{})
		gob.Register(InputPacket{})
		gob.Register(StateUpdatePacket{})
		gob.Register(components.TransformComponent{})
		gob.Register(components.SpriteComponent{})
		gob.Register(components.InputComponent{})
		gob.Register(components.StatsComponent{})
		gob.Register(InventorySyncPacket{})
		gob.Register(InventoryActionPacket{})
		gob.Register(GroundItemsSyncPacket{})
		gob.Register(UpdateUIStatePacket{})
		gob.Register(NoticePacket{})
	})
}

type PacketType int

const (
	PacketLogin           PacketType = 1
	PacketLoginResponse   PacketType = 2
	PacketInput           PacketType = 3
	PacketStateUpdate     PacketType = 4
	PacketInventorySync   PacketType = 5
	PacketInventoryAction PacketType = 6
	PacketGroundItemsSync PacketType = 7
	PacketUpdateUIState   PacketType = 8
	PacketNotice          PacketType = 9
)

type Packet struct {
	Type PacketType
	Data interface{}
}

// Client -> Server
type LoginPacket struct {
	Username string
	Password string
}

// Server -> Client
type LoginResponsePacket struct {
	Success        bool
	Error          string
	SessionID      string
	PlayerEntityID ecs.Entity
	PlayerX        float64
	PlayerY        float64
	Keybindings    map[string]int
	OpenMenus      map[string]bool
}

// Client -> Server
type InputPacket struct {
	Input components.InputComponent
}

// UpdateUIStatePacket (Client -> Server)
type UpdateUIStatePacket struct {
	OpenMenus map[string]bool
}

// Server -> Client
type StateUpdatePacket struct {
	Entities []EntitySnapshot
}

type EntitySnapshot struct {
	ID        ecs.Entity
	Transform *components.TransformComponent
	Sprite    *components.SpriteComponent
	Stats     *components.StatsComponent
}

// Inventory actions. A drag is driven by BeginDrag followed by exactly one
// of Drop, Cancel or Discard.
const (
	ActionBeginDrag = "BeginDrag"
	ActionDrop      = "Drop"
	ActionCancel    = "Cancel"
	ActionDiscard   = "Discard"
	ActionUse       = "Use"
	ActionPickup    = "Pickup"
)

// InventoryActionPacket (Client -> Server)
type InventoryActionPacket struct {
	ActionType string
	Slot       inventory.SlotRef // BeginDrag, Drop, Use
	Target     ecs.Entity        // Pickup; 0 picks the nearest ground item
}

// ItemSlot is one occupied slot in an inventory sync.
type ItemSlot struct {
	Index    int
	ItemID   string
	Quantity int
}

// InventorySyncPacket (Server -> Client)
type InventorySyncPacket struct {
	Width, Height int
	QuickSlots    int
	Grid          []ItemSlot
	Quick         []ItemSlot
	Gold          int

	// Set while a drag is open on the server.
	Dragging   bool
	DragItem   ItemSlot
	DragSource inventory.SlotRef
}

type GroundItem struct {
	ID       ecs.Entity
	ItemID   string
	Quantity int
	X, Y     float64
}

// GroundItemsSyncPacket (Server -> Client)
type GroundItemsSyncPacket struct {
	Items []GroundItem
}

// NoticePacket (Server -> Client) carries a short message for the player,
// e.g. when a pickup does not fit.
type NoticePacket struct {
	Message string
}
