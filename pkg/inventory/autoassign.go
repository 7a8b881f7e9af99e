package inventory

// AutoAssignPolicy keeps one stack of a managed consumable kind (health
// potions) in the quick access row without the player dragging it there.
//
// Both operations hold a latch for their whole duration. A call that arrives
// while the latch is held, for example from a change listener reacting to the
// policy's own placement, is ignored and returns false.
type AutoAssignPolicy struct {
	store  *Store
	engine *Engine
	kind   string
	busy   bool
}

// NewAutoAssignPolicy manages kind in store. engine may be nil when no drag
// engine shares the store.
func NewAutoAssignPolicy(store *Store, engine *Engine, kind string) *AutoAssignPolicy {
	return &AutoAssignPolicy{store: store, engine: engine, kind: kind}
}

func (p *AutoAssignPolicy) ManagedKind() string { return p.kind }

func (p *AutoAssignPolicy) enter() bool {
	if p.busy {
		return false
	}
	p.busy = true
	return true
}

func (p *AutoAssignPolicy) leave() { p.busy = false }

// resident reports whether a managed stack already occupies quick access.
// A managed stack lifted out of quick access by an open drag still counts,
// it is going back there on cancel.
func (p *AutoAssignPolicy) resident(except SlotRef) bool {
	for i, it := range p.store.quick {
		ref := QuickSlot(i)
		if ref != except && it != nil && it.Kind() == p.kind {
			return true
		}
	}
	if p.engine != nil {
		if tx, ok := p.engine.Transaction(); ok {
			return tx.Source.Container == QuickAccess && tx.Source != except && tx.Item.Kind() == p.kind
		}
	}
	return false
}

// OnAcquire places a freshly picked up managed item straight into the first
// empty quick access slot. It declines (false) when the item is not of the
// managed kind, when quick access already holds that kind or when there is no
// free quick slot; the caller then falls back to Store.Insert.
func (p *AutoAssignPolicy) OnAcquire(it Item) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	if it == nil || it.Kind() != p.kind || !it.IsUsable() || it.Quantity() <= 0 {
		return false
	}
	if p.resident(SlotRef{Container: QuickAccess, Index: -1}) {
		return false
	}
	ref, ok := p.store.firstEmptyIn(QuickAccess)
	if !ok {
		return false
	}
	return p.store.place(ref, it)
}

// OnSlotConsumedToEmpty refills quick slot i after its managed stack ran out,
// moving the first managed stack found in the grid (row-major) as is. No
// merge is attempted.
func (p *AutoAssignPolicy) OnSlotConsumedToEmpty(i int) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	dst := QuickSlot(i)
	if !p.store.Valid(dst) || p.store.Get(dst) != nil || p.store.isReserved(dst) {
		return false
	}
	if p.resident(dst) {
		return false
	}
	for gi, it := range p.store.grid {
		if it == nil || it.Kind() != p.kind || !it.IsUsable() {
			continue
		}
		src := SlotRef{Container: Grid, Index: gi}
		moved := p.store.Remove(src)
		if !p.store.place(dst, moved) {
			p.store.place(src, moved)
			return false
		}
		return true
	}
	return false
}
