package inventory

import "fmt"

// ContainerKind selects one of the two slot spaces.
type ContainerKind int

const (
	Grid ContainerKind = iota
	QuickAccess
)

func (c ContainerKind) String() string {
	switch c {
	case Grid:
		return "grid"
	case QuickAccess:
		return "quick"
	default:
		return fmt.Sprintf("container(%d)", int(c))
	}
}

// SlotRef addresses a single slot. Grid indices are row-major: y*width + x.
type SlotRef struct {
	Container ContainerKind
	Index     int
}

// GridSlot is the ref for grid cell (x, y) in a grid of the given width.
// Coordinates outside the row produce an invalid ref rather than wrapping.
func GridSlot(width, x, y int) SlotRef {
	if x < 0 || x >= width || y < 0 {
		return SlotRef{Container: Grid, Index: -1}
	}
	return SlotRef{Container: Grid, Index: y*width + x}
}

// QuickSlot is the ref for quick access slot i.
func QuickSlot(i int) SlotRef {
	return SlotRef{Container: QuickAccess, Index: i}
}

func (r SlotRef) String() string {
	return fmt.Sprintf("%s[%d]", r.Container, r.Index)
}
