package inventory

// State of the transfer engine.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragTransaction is an in-flight move. The item has already left its
// source slot; the transaction owns it until Drop, Cancel or Discard.
type DragTransaction struct {
	Item   Item
	Source SlotRef
	Active bool
}

// Engine runs the drag-and-drop protocol against a Store. At most one
// transaction is open at a time. Every call made in the wrong state is a
// no-op returning false: input ordering comes from the pointer and cannot be
// trusted.
type Engine struct {
	store   *Store
	drag    *DragTransaction
	discard []func(Item)
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Store returns the store the engine operates on.
func (e *Engine) Store() *Store { return e.store }

func (e *Engine) State() State {
	if e.drag != nil {
		return Dragging
	}
	return Idle
}

// Transaction returns a copy of the open transaction, if any.
func (e *Engine) Transaction() (DragTransaction, bool) {
	if e.drag == nil {
		return DragTransaction{}, false
	}
	return *e.drag, true
}

// OnDiscard registers fn to receive items that leave the store through
// Discard, typically to spawn them in the world.
func (e *Engine) OnDiscard(fn func(Item)) {
	if fn != nil {
		e.discard = append(e.discard, fn)
	}
}

// BeginDrag lifts the item at src. The transaction carries a clone; the
// original is removed from the slot immediately and the slot is held free
// until the transaction ends.
func (e *Engine) BeginDrag(src SlotRef) bool {
	if e.drag != nil {
		return false
	}
	orig := e.store.Get(src)
	if orig == nil {
		return false
	}
	e.drag = &DragTransaction{Item: orig.Clone(), Source: src, Active: true}
	e.store.reserve(src)
	e.store.Remove(src)
	return true
}

func (e *Engine) BeginDragFromGrid(x, y int) bool {
	return e.BeginDrag(e.store.GridRef(x, y))
}

func (e *Engine) BeginDragFromQuickAccess(i int) bool {
	return e.BeginDrag(QuickSlot(i))
}

// Drop ends the transaction at dst. See the package tests for the full
// branch table; in short: same slot is identity, quick access rejects
// non-usable items, equal stackable kinds merge with any remainder going
// back to the source, empty targets take the item and anything else swaps.
// A rejected drop returns the item to its source and reports false.
func (e *Engine) Drop(dst SlotRef) bool {
	if e.drag == nil {
		return false
	}
	it := e.drag.Item
	src := e.drag.Source

	if dst == src {
		e.rehome(e.end())
		return true
	}
	if !e.store.accepts(dst, it) {
		e.rehome(e.end())
		return false
	}

	target := e.store.Get(dst)
	switch {
	case target == nil:
		tx := e.end()
		if !e.store.place(dst, tx.Item) {
			e.rehome(tx)
			return false
		}
		return true

	case CanMerge(it, target):
		tx := e.end()
		if n, rem := Merge(tx.Item, target); n > 0 {
			e.store.notify(ReasonMerge, dst)
			if rem == 0 {
				return true
			}
		}
		e.rehome(tx)
		return true

	default:
		// The displaced item must be able to live where the dragged one
		// came from.
		if !e.store.accepts(src, target) {
			e.rehome(e.end())
			return false
		}
		tx := e.end()
		displaced := e.store.Remove(dst)
		e.store.place(dst, tx.Item)
		e.store.place(tx.Source, displaced)
		return true
	}
}

func (e *Engine) DropToGrid(x, y int) bool {
	return e.Drop(e.store.GridRef(x, y))
}

func (e *Engine) DropToQuickAccess(i int) bool {
	return e.Drop(QuickSlot(i))
}

// Cancel returns the dragged item to its source slot.
func (e *Engine) Cancel() bool {
	if e.drag == nil {
		return false
	}
	e.rehome(e.end())
	return true
}

// Discard closes the transaction without putting the item back. It is the
// only way an item leaves the store through the engine; discard listeners
// receive it.
func (e *Engine) Discard() (Item, bool) {
	if e.drag == nil {
		return nil, false
	}
	tx := e.end()
	e.emitDiscard(tx.Item)
	return tx.Item, true
}

func (e *Engine) end() DragTransaction {
	tx := *e.drag
	tx.Active = false
	e.drag.Active = false
	e.drag = nil
	e.store.release()
	return tx
}

// rehome puts a closed transaction's item back at its source. The source was
// reserved for the whole drag so this only falls through if someone cleared
// or resized the store underneath us; even then the item is kept.
func (e *Engine) rehome(tx DragTransaction) {
	if tx.Item == nil {
		return
	}
	if e.store.place(tx.Source, tx.Item) {
		return
	}
	if e.store.Insert(tx.Item) {
		return
	}
	e.emitDiscard(tx.Item)
}

func (e *Engine) emitDiscard(it Item) {
	for _, fn := range e.discard {
		fn(it)
	}
}
