package components

import (
	"image/color"

	"emberhold/pkg/inventory"
)

// TransformComponent holds position and rotation
type TransformComponent struct {
	X, Y     float64
	Rotation float64 // in radians
}

// PhysicsComponent holds movement speed
type PhysicsComponent struct {
	Speed float64
}

type SpriteComponent struct {
	Color  color.RGBA
	Width  float64
	Height float64
}

// InputComponent holds the current movement input for an entity
type InputComponent struct {
	Up, Down, Left, Right bool
	MouseX, MouseY        float64
}

// StatsComponent holds gameplay stats
type StatsComponent struct {
	MaxHealth     float64
	CurrentHealth float64
}

// Heal restores up to amount health and returns how much was applied.
func (s *StatsComponent) Heal(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	missing := s.MaxHealth - s.CurrentHealth
	if missing <= 0 {
		return 0
	}
	if amount > missing {
		amount = missing
	}
	s.CurrentHealth += amount
	return amount
}

// InventoryComponent points at the player's live inventory. The pointer
// survives the ECS copying the component around.
type InventoryComponent struct {
	Inventory *inventory.Inventory
}

// GroundItemComponent marks an item lying in the world.
type GroundItemComponent struct {
	ItemID   string
	Quantity int
}

// UIStateComponent holds persistent UI visibility state
type UIStateComponent struct {
	OpenMenus map[string]bool
}
