package inventory

import "testing"

type testItem struct {
	kind   string
	qty    int
	max    int
	usable bool
}

func (t *testItem) Kind() string      { return t.kind }
func (t *testItem) Quantity() int     { return t.qty }
func (t *testItem) SetQuantity(q int) { t.qty = q }
func (t *testItem) MaxStackSize() int { return t.max }
func (t *testItem) IsStackable() bool { return t.max > 1 }
func (t *testItem) IsUsable() bool    { return t.usable }

func (t *testItem) Clone() Item {
	c := *t
	return &c
}

func arrows(q int) *testItem  { return &testItem{kind: "arrow", qty: q, max: 20} }
func potions(q int) *testItem { return &testItem{kind: "potion", qty: q, max: 10, usable: true} }
func sword() *testItem        { return &testItem{kind: "sword", qty: 1, max: 1} }
func scroll() *testItem       { return &testItem{kind: "scroll", qty: 1, max: 1, usable: true} }

// snapshot flattens a store to comparable values.
type slotState struct {
	kind string
	qty  int
}

func snapshot(s *Store) (grid, quick []slotState, gold int) {
	grid = make([]slotState, len(s.grid))
	for i, it := range s.grid {
		if it != nil {
			grid[i] = slotState{it.Kind(), it.Quantity()}
		}
	}
	quick = make([]slotState, len(s.quick))
	for i, it := range s.quick {
		if it != nil {
			quick[i] = slotState{it.Kind(), it.Quantity()}
		}
	}
	return grid, quick, s.gold
}

func assertSameStore(t *testing.T, before, after *Store) {
	t.Helper()
	g1, q1, gold1 := snapshot(before)
	g2, q2, gold2 := snapshot(after)
	if gold1 != gold2 {
		t.Fatalf("gold changed: %d -> %d", gold1, gold2)
	}
	for i := range g1 {
		if g1[i] != g2[i] {
			t.Fatalf("grid[%d] changed: %+v -> %+v", i, g1[i], g2[i])
		}
	}
	for i := range q1 {
		if q1[i] != q2[i] {
			t.Fatalf("quick[%d] changed: %+v -> %+v", i, q1[i], q2[i])
		}
	}
}

// cloneStore copies slot contents so a later comparison is not fooled by
// shared pointers.
func cloneStore(s *Store) *Store {
	c := NewStore(s.width, s.height, len(s.quick))
	for i, it := range s.grid {
		if it != nil {
			c.grid[i] = it.Clone()
		}
	}
	for i, it := range s.quick {
		if it != nil {
			c.quick[i] = it.Clone()
		}
	}
	c.gold = s.gold
	return c
}

func mustGet(t *testing.T, s *Store, ref SlotRef, kind string, qty int) {
	t.Helper()
	it := s.Get(ref)
	if it == nil {
		t.Fatalf("%s: expected %s x%d, got empty", ref, kind, qty)
	}
	if it.Kind() != kind || it.Quantity() != qty {
		t.Fatalf("%s: expected %s x%d, got %s x%d", ref, kind, qty, it.Kind(), it.Quantity())
	}
}

func mustEmpty(t *testing.T, s *Store, ref SlotRef) {
	t.Helper()
	if it := s.Get(ref); it != nil {
		t.Fatalf("%s: expected empty, got %s x%d", ref, it.Kind(), it.Quantity())
	}
}
