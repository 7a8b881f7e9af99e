package inventory

// CanMerge reports whether source may be stacked onto target.
func CanMerge(source, target Item) bool {
	return sameKind(source, target) && target.IsStackable()
}

// Capacity is the number of units target can still accept.
func Capacity(target Item) int {
	if target == nil {
		return 0
	}
	c := target.MaxStackSize() - target.Quantity()
	if c < 0 {
		return 0
	}
	return c
}

// Merge moves as many units as fit from source onto target and returns how
// many moved and how many are left in source. A source left at zero has been
// fully absorbed and must be dropped by the caller, not re-homed.
//
// When the pair cannot be merged nothing changes and the whole source
// quantity is reported as remainder.
func Merge(source, target Item) (transferred, remainder int) {
	if !CanMerge(source, target) {
		if source == nil {
			return 0, 0
		}
		return 0, source.Quantity()
	}
	transferred = source.Quantity()
	if c := Capacity(target); transferred > c {
		transferred = c
	}
	if transferred < 0 {
		transferred = 0
	}
	setQuantity(target, target.Quantity()+transferred)
	setQuantity(source, source.Quantity()-transferred)
	return transferred, source.Quantity()
}
