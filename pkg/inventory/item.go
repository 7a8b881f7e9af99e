// Package inventory holds the player's item containers: a fixed grid, a row
// of quick access slots and a gold counter, plus the drag-and-drop transfer
// engine and the consumable auto-assignment policy layered on top.
//
// Everything in this package is single-threaded and synchronous. Callers are
// expected to drive it from one goroutine (the game tick).
package inventory

// Item is the capability set the containers need from an item. Concrete item
// types live elsewhere (see pkg/items); the inventory only stacks, moves and
// counts them.
type Item interface {
	Kind() string
	Quantity() int
	SetQuantity(q int)
	MaxStackSize() int
	IsStackable() bool
	IsUsable() bool
	// Clone returns an independent copy; mutating the copy must not affect
	// the original.
	Clone() Item
}

// setQuantity clamps q to zero before writing it, so observers never see a
// negative stack.
func setQuantity(it Item, q int) {
	if q < 0 {
		q = 0
	}
	it.SetQuantity(q)
}

func sameKind(a, b Item) bool {
	return a != nil && b != nil && a.Kind() == b.Kind()
}
