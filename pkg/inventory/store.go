package inventory

// Store owns the grid, the quick access row and the gold counter.
//
// Out-of-range slot refs are treated like a full slot: reads return nil and
// writes report false. Pointer geometry can briefly disagree with the model
// (window resize, layout change) so a bad index is not a programming error.
type Store struct {
	width, height int
	grid          []Item
	quick         []Item
	gold          int

	// reserved is the source slot of the active drag, kept free so the
	// dragged item can always go back.
	reserved    SlotRef
	hasReserved bool

	listeners listenerSet
}

// NewStore creates an empty store with a width x height grid and n quick
// access slots. Non-positive sizes yield an empty container.
func NewStore(width, height, quickSlots int) *Store {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if quickSlots < 0 {
		quickSlots = 0
	}
	return &Store{
		width:  width,
		height: height,
		grid:   make([]Item, width*height),
		quick:  make([]Item, quickSlots),
	}
}

func (s *Store) Width() int      { return s.width }
func (s *Store) Height() int     { return s.height }
func (s *Store) QuickSlots() int { return len(s.quick) }
func (s *Store) Gold() int       { return s.gold }

// GridRef returns the ref for grid cell (x, y).
func (s *Store) GridRef(x, y int) SlotRef {
	if y >= s.height {
		return SlotRef{Container: Grid, Index: -1}
	}
	return GridSlot(s.width, x, y)
}

// GridXY converts a grid index back to coordinates.
func (s *Store) GridXY(index int) (x, y int) {
	if s.width == 0 {
		return 0, 0
	}
	return index % s.width, index / s.width
}

// Subscribe registers l for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(l Listener) func() {
	return s.listeners.add(l)
}

func (s *Store) notify(reason Reason, refs ...SlotRef) {
	s.listeners.emit(Change{Reason: reason, Slots: refs, Gold: s.gold})
}

func (s *Store) container(c ContainerKind) []Item {
	switch c {
	case Grid:
		return s.grid
	case QuickAccess:
		return s.quick
	default:
		return nil
	}
}

// Valid reports whether ref addresses an existing slot.
func (s *Store) Valid(ref SlotRef) bool {
	slots := s.container(ref.Container)
	return ref.Index >= 0 && ref.Index < len(slots)
}

func (s *Store) isReserved(ref SlotRef) bool {
	return s.hasReserved && s.reserved == ref
}

func (s *Store) reserve(ref SlotRef) {
	s.reserved = ref
	s.hasReserved = true
}

func (s *Store) release() {
	s.reserved = SlotRef{}
	s.hasReserved = false
}

// Get returns the item at ref, or nil when the slot is empty or out of range.
func (s *Store) Get(ref SlotRef) Item {
	if !s.Valid(ref) {
		return nil
	}
	return s.container(ref.Container)[ref.Index]
}

// GetGrid returns the item at grid cell (x, y).
func (s *Store) GetGrid(x, y int) Item {
	return s.Get(s.GridRef(x, y))
}

// GetQuick returns the item in quick access slot i.
func (s *Store) GetQuick(i int) Item {
	return s.Get(QuickSlot(i))
}

// accepts checks the container rule for it at ref, ignoring occupancy.
func (s *Store) accepts(ref SlotRef, it Item) bool {
	if it == nil || !s.Valid(ref) {
		return false
	}
	if ref.Container == QuickAccess && !it.IsUsable() {
		return false
	}
	return true
}

// Place puts it into the empty slot at ref. It fails when the slot is out of
// range, occupied, held for an in-flight drag, or when a non-usable item is
// aimed at quick access.
func (s *Store) Place(ref SlotRef, it Item) bool {
	if s.isReserved(ref) {
		return false
	}
	return s.place(ref, it)
}

// PlaceQuickAccess is Place restricted to the quick access row.
func (s *Store) PlaceQuickAccess(i int, it Item) bool {
	return s.Place(QuickSlot(i), it)
}

func (s *Store) place(ref SlotRef, it Item) bool {
	if !s.accepts(ref, it) || s.Get(ref) != nil {
		return false
	}
	s.container(ref.Container)[ref.Index] = it
	s.notify(ReasonPlace, ref)
	return true
}

// Remove empties the slot at ref and returns what was there.
func (s *Store) Remove(ref SlotRef) Item {
	it := s.Get(ref)
	if it == nil {
		return nil
	}
	s.container(ref.Container)[ref.Index] = nil
	s.notify(ReasonRemove, ref)
	return it
}

// Insert stores it using the stacking-first policy:
//
//  1. top up existing partial stacks of the same kind, grid first (row-major)
//     then quick access, in a single pass;
//  2. put whatever is left into the first empty grid slot;
//  3. otherwise into the first empty quick access slot, if it is usable.
//
// When no slot can take the remainder Insert returns false and neither the
// containers nor it are modified, so the caller can drop it elsewhere.
// An item fully absorbed by step 1 ends with quantity zero and is not stored.
func (s *Store) Insert(it Item) bool {
	return s.insert(it, true)
}

// insert is Insert with step 3 optional.
func (s *Store) insert(it Item, quickFallback bool) bool {
	if it == nil || it.Quantity() <= 0 {
		return false
	}

	type topUp struct {
		ref SlotRef
		n   int
	}
	var plan []topUp
	remaining := it.Quantity()
	if it.IsStackable() {
		s.scan(func(ref SlotRef, cur Item) bool {
			if cur == nil || s.isReserved(ref) || !CanMerge(it, cur) {
				return true
			}
			n := Capacity(cur)
			if n == 0 {
				return true
			}
			if n > remaining {
				n = remaining
			}
			plan = append(plan, topUp{ref: ref, n: n})
			remaining -= n
			return remaining > 0
		})
	}

	var dest SlotRef
	if remaining > 0 {
		var ok bool
		if dest, ok = s.firstEmpty(it, quickFallback); !ok {
			return false
		}
	}

	touched := make([]SlotRef, 0, len(plan)+1)
	for _, p := range plan {
		cur := s.Get(p.ref)
		setQuantity(cur, cur.Quantity()+p.n)
		touched = append(touched, p.ref)
	}
	setQuantity(it, remaining)
	if remaining > 0 {
		s.container(dest.Container)[dest.Index] = it
		touched = append(touched, dest)
	}
	s.notify(ReasonInsert, touched...)
	return true
}

// scan walks every slot, grid row-major then quick access, until fn
// returns false.
func (s *Store) scan(fn func(ref SlotRef, it Item) bool) {
	for i, it := range s.grid {
		if !fn(SlotRef{Container: Grid, Index: i}, it) {
			return
		}
	}
	for i, it := range s.quick {
		if !fn(SlotRef{Container: QuickAccess, Index: i}, it) {
			return
		}
	}
}

func (s *Store) firstEmpty(it Item, quickFallback bool) (SlotRef, bool) {
	if ref, ok := s.firstEmptyIn(Grid); ok {
		return ref, true
	}
	if quickFallback && it.IsUsable() {
		return s.firstEmptyIn(QuickAccess)
	}
	return SlotRef{}, false
}

func (s *Store) firstEmptyIn(c ContainerKind) (SlotRef, bool) {
	for i, cur := range s.container(c) {
		ref := SlotRef{Container: c, Index: i}
		if cur == nil && !s.isReserved(ref) {
			return ref, true
		}
	}
	return SlotRef{}, false
}

// Consume removes n units from the stack at ref. The stack is cleared once it
// reaches zero, in which case emptied is true.
func (s *Store) Consume(ref SlotRef, n int) (emptied, ok bool) {
	it := s.Get(ref)
	if it == nil || n <= 0 {
		return false, false
	}
	setQuantity(it, it.Quantity()-n)
	if it.Quantity() == 0 {
		s.container(ref.Container)[ref.Index] = nil
		emptied = true
	}
	s.notify(ReasonConsume, ref)
	return emptied, true
}

// AddGold credits n gold. Non-positive amounts are ignored.
func (s *Store) AddGold(n int) bool {
	if n <= 0 {
		return false
	}
	s.gold += n
	s.notify(ReasonGold)
	return true
}

// SpendGold debits n gold if the balance covers it.
func (s *Store) SpendGold(n int) bool {
	if n <= 0 || n > s.gold {
		return false
	}
	s.gold -= n
	s.notify(ReasonGold)
	return true
}

// Clear empties both containers and zeroes gold, raising a single change.
func (s *Store) Clear() {
	for i := range s.grid {
		s.grid[i] = nil
	}
	for i := range s.quick {
		s.quick[i] = nil
	}
	s.gold = 0
	s.notify(ReasonClear)
}

// Each calls fn for every occupied slot of container c in index order.
func (s *Store) Each(c ContainerKind, fn func(ref SlotRef, it Item)) {
	for i, it := range s.container(c) {
		if it != nil {
			fn(SlotRef{Container: c, Index: i}, it)
		}
	}
}

// Find returns the first slot holding kind, scanning the grid row-major and
// then quick access.
func (s *Store) Find(kind string) (SlotRef, bool) {
	var (
		found SlotRef
		ok    bool
	)
	s.scan(func(ref SlotRef, it Item) bool {
		if it != nil && it.Kind() == kind {
			found, ok = ref, true
			return false
		}
		return true
	})
	return found, ok
}

// Count sums the quantity of kind across both containers.
func (s *Store) Count(kind string) int {
	total := 0
	s.scan(func(_ SlotRef, it Item) bool {
		if it != nil && it.Kind() == kind {
			total += it.Quantity()
		}
		return true
	})
	return total
}
