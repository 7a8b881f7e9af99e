package inventory

// Config sizes an Inventory.
type Config struct {
	GridWidth  int
	GridHeight int
	QuickSlots int
	// ManagedKind is the consumable kind kept in quick access automatically.
	// Empty disables auto-assignment.
	ManagedKind string
}

// Inventory wires a Store, its drag Engine and the auto-assign policy
// together. It is what gameplay code holds per player.
type Inventory struct {
	store  *Store
	engine *Engine
	policy *AutoAssignPolicy
}

func New(cfg Config) *Inventory {
	store := NewStore(cfg.GridWidth, cfg.GridHeight, cfg.QuickSlots)
	engine := NewEngine(store)
	return &Inventory{
		store:  store,
		engine: engine,
		policy: NewAutoAssignPolicy(store, engine, cfg.ManagedKind),
	}
}

func (inv *Inventory) Store() *Store             { return inv.store }
func (inv *Inventory) Engine() *Engine           { return inv.engine }
func (inv *Inventory) Policy() *AutoAssignPolicy { return inv.policy }

// Subscribe registers a change listener on the underlying store.
func (inv *Inventory) Subscribe(l Listener) func() { return inv.store.Subscribe(l) }

// OnDiscard registers a handler for items discarded out of a drag.
func (inv *Inventory) OnDiscard(fn func(Item)) { inv.engine.OnDiscard(fn) }

// Pickup stores an item acquired in the world. Managed consumables go to
// quick access when the policy accepts them; everything else, and anything
// the policy declines, goes through Store.Insert. A managed item never opens
// a second managed stack in quick access; it may still top up the resident
// one. False means the item did not fit and is untouched.
func (inv *Inventory) Pickup(it Item) bool {
	if inv.policy.kind == "" || it == nil {
		return inv.store.Insert(it)
	}
	if inv.policy.OnAcquire(it) {
		return true
	}
	managed := it.Kind() == inv.policy.kind
	return inv.store.insert(it, !managed || !inv.policy.resident(SlotRef{Container: QuickAccess, Index: -1}))
}

// UseQuick consumes one unit from quick slot i and returns a single-unit copy
// of what was used. When that empties a managed stack the slot is refilled
// from the grid.
func (inv *Inventory) UseQuick(i int) (Item, bool) {
	ref := QuickSlot(i)
	it := inv.store.Get(ref)
	if it == nil || !it.IsUsable() {
		return nil, false
	}
	used := it.Clone()
	used.SetQuantity(1)
	emptied, ok := inv.store.Consume(ref, 1)
	if !ok {
		return nil, false
	}
	if emptied && it.Kind() == inv.policy.kind {
		inv.policy.OnSlotConsumedToEmpty(i)
	}
	return used, true
}
