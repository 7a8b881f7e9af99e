// Package dragdrop turns raw pointer events into the inventory actions the
// server understands. The server stays authoritative: the controller only
// tracks which gesture is in progress and never moves items itself.
package dragdrop

import (
	"emberhold/pkg/inventory"
	"emberhold/pkg/shared/ecs"
	protocol "emberhold/pkg/shared/network"
)

// HitKind is what lies under the pointer.
type HitKind int

const (
	HitWorld HitKind = iota // nothing but the game world
	HitUI                   // a window or widget, but not a slot
	HitSlot
)

type Hit struct {
	Kind HitKind
	Slot inventory.SlotRef
	// Occupied reports whether the slot holds an item, as last synced.
	Occupied bool
}

// Sender delivers one inventory action to the server.
type Sender interface {
	SendInventoryAction(action string, slot inventory.SlotRef, target ecs.Entity) error
}

type Controller struct {
	sender    Sender
	threshold int

	pressed  bool
	press    Hit
	pressX   int
	pressY   int
	dragging bool
}

// New returns a controller that starts a drag once the pointer has moved
// more than threshold pixels from an occupied slot.
func New(sender Sender, threshold int) *Controller {
	return &Controller{sender: sender, threshold: threshold}
}

// Press records the start of a gesture.
func (c *Controller) Press(x, y int, hit Hit) {
	if c.dragging {
		return
	}
	c.pressed = true
	c.press = hit
	c.pressX, c.pressY = x, y
}

// Move reports pointer movement with the button held. It returns true when
// this movement began a drag.
func (c *Controller) Move(x, y int) bool {
	if !c.pressed || c.dragging || c.press.Kind != HitSlot || !c.press.Occupied {
		return false
	}
	dx, dy := x-c.pressX, y-c.pressY
	if dx*dx+dy*dy <= c.threshold*c.threshold {
		return false
	}
	if err := c.sender.SendInventoryAction(protocol.ActionBeginDrag, c.press.Slot, 0); err != nil {
		c.pressed = false
		return false
	}
	c.dragging = true
	return true
}

// Release ends the gesture over hit and returns the action sent, or "" if
// nothing was sent. A click without movement on an occupied quick access
// slot uses it.
func (c *Controller) Release(hit Hit) string {
	defer c.reset()
	if !c.pressed {
		return ""
	}

	var action string
	switch {
	case c.dragging && hit.Kind == HitSlot:
		action = protocol.ActionDrop
	case c.dragging && hit.Kind == HitUI:
		action = protocol.ActionCancel
	case c.dragging:
		action = protocol.ActionDiscard
	case c.press.Kind == HitSlot && c.press.Occupied && c.press.Slot.Container == inventory.QuickAccess &&
		hit.Kind == HitSlot && hit.Slot == c.press.Slot:
		action = protocol.ActionUse
		hit = c.press
	default:
		return ""
	}
	if err := c.sender.SendInventoryAction(action, hit.Slot, 0); err != nil {
		return ""
	}
	return action
}

// Abort cancels an open drag, for example when the inventory window closes
// under the pointer.
func (c *Controller) Abort() {
	if c.dragging {
		_ = c.sender.SendInventoryAction(protocol.ActionCancel, inventory.SlotRef{}, 0)
	}
	c.reset()
}

// Dragging reports the slot a drag was started from.
func (c *Controller) Dragging() (inventory.SlotRef, bool) {
	return c.press.Slot, c.dragging
}

func (c *Controller) reset() {
	c.pressed = false
	c.dragging = false
	c.press = Hit{}
}
