package inventory

import "testing"

func TestInsertStacksBeforeNewSlot(t *testing.T) {
	s := NewStore(6, 4, 6)

	if !s.Insert(arrows(10)) {
		t.Fatalf("first insert failed")
	}
	mustGet(t, s, s.GridRef(0, 0), "arrow", 10)

	second := arrows(15)
	if !s.Insert(second) {
		t.Fatalf("second insert failed")
	}
	mustGet(t, s, s.GridRef(0, 0), "arrow", 20)
	mustGet(t, s, s.GridRef(1, 0), "arrow", 5)
	if second.Quantity() != 5 {
		t.Fatalf("inserted item should carry the remainder, got %d", second.Quantity())
	}
}

func TestInsertTopsUpEveryPartialStackInOnePass(t *testing.T) {
	s := NewStore(3, 1, 1)
	s.Place(s.GridRef(0, 0), arrows(18))
	s.Place(s.GridRef(2, 0), arrows(15))

	in := arrows(6)
	if !s.Insert(in) {
		t.Fatalf("insert failed")
	}
	mustGet(t, s, s.GridRef(0, 0), "arrow", 20)
	mustGet(t, s, s.GridRef(2, 0), "arrow", 19)
	mustEmpty(t, s, s.GridRef(1, 0))
	if in.Quantity() != 0 {
		t.Fatalf("fully absorbed item should be left at 0, got %d", in.Quantity())
	}
}

func TestInsertMergesIntoQuickAccessAfterGrid(t *testing.T) {
	s := NewStore(2, 1, 2)
	s.Place(s.GridRef(0, 0), potions(9))
	s.Place(QuickSlot(1), potions(4))
	s.Place(s.GridRef(1, 0), sword())

	if !s.Insert(potions(5)) {
		t.Fatalf("insert failed")
	}
	mustGet(t, s, s.GridRef(0, 0), "potion", 10)
	mustGet(t, s, QuickSlot(1), "potion", 8)
	mustEmpty(t, s, QuickSlot(0))
}

func TestInsertFallsBackToQuickAccessOnlyForUsable(t *testing.T) {
	s := NewStore(1, 1, 2)
	s.Place(s.GridRef(0, 0), sword())

	if s.Insert(sword()) {
		t.Fatalf("non-usable item must not land in quick access")
	}
	if !s.Insert(scroll()) {
		t.Fatalf("usable item should fall back to quick access")
	}
	mustGet(t, s, QuickSlot(0), "scroll", 1)
}

func TestInsertFailureLeavesEverythingUntouched(t *testing.T) {
	s := NewStore(1, 1, 1)
	s.Place(s.GridRef(0, 0), arrows(15))
	before := cloneStore(s)

	changes := 0
	s.Subscribe(func(Change) { changes++ })

	in := arrows(10)
	if s.Insert(in) {
		t.Fatalf("insert should fail: 5 fit, 5 have nowhere to go")
	}
	if in.Quantity() != 10 {
		t.Fatalf("failed insert mutated the item: %d", in.Quantity())
	}
	assertSameStore(t, before, s)
	if changes != 0 {
		t.Fatalf("failed insert raised %d changes", changes)
	}
}

func TestInsertRejectsEmptyItems(t *testing.T) {
	s := NewStore(2, 2, 2)
	if s.Insert(nil) {
		t.Fatalf("nil insert succeeded")
	}
	if s.Insert(arrows(0)) {
		t.Fatalf("zero quantity insert succeeded")
	}
}

func TestPlaceQuickAccessRejectsNonUsable(t *testing.T) {
	s := NewStore(2, 2, 3)
	if s.PlaceQuickAccess(0, sword()) {
		t.Fatalf("sword accepted into quick access")
	}
	mustEmpty(t, s, QuickSlot(0))
	if !s.PlaceQuickAccess(0, potions(3)) {
		t.Fatalf("potion rejected from quick access")
	}
	if s.Place(QuickSlot(1), arrows(3)) {
		t.Fatalf("Place must apply the quick access rule too")
	}
}

func TestPlaceRejectsOccupiedSlot(t *testing.T) {
	s := NewStore(2, 2, 0)
	ref := s.GridRef(1, 1)
	if !s.Place(ref, sword()) {
		t.Fatalf("place into empty slot failed")
	}
	if s.Place(ref, arrows(1)) {
		t.Fatalf("place over an occupied slot succeeded")
	}
	mustGet(t, s, ref, "sword", 1)
}

func TestOutOfRangeAccessIsANoop(t *testing.T) {
	s := NewStore(6, 4, 6)
	bad := []SlotRef{
		s.GridRef(-1, 0),
		s.GridRef(6, 0),
		s.GridRef(0, 4),
		{Container: Grid, Index: 24},
		QuickSlot(-1),
		QuickSlot(6),
		{Container: ContainerKind(9), Index: 0},
	}
	for _, ref := range bad {
		if s.Valid(ref) {
			t.Fatalf("%s reported valid", ref)
		}
		if s.Get(ref) != nil {
			t.Fatalf("%s returned an item", ref)
		}
		if s.Place(ref, potions(1)) {
			t.Fatalf("%s accepted a placement", ref)
		}
		if s.Remove(ref) != nil {
			t.Fatalf("%s removed something", ref)
		}
		if _, ok := s.Consume(ref, 1); ok {
			t.Fatalf("%s consumed something", ref)
		}
	}
	if s.GetGrid(100, 100) != nil {
		t.Fatalf("GetGrid out of range returned an item")
	}
}

func TestConsumeClampsAndClearsSlot(t *testing.T) {
	s := NewStore(1, 1, 1)
	s.PlaceQuickAccess(0, potions(2))

	var seen []int
	s.Subscribe(func(c Change) {
		if it := s.GetQuick(0); it != nil {
			seen = append(seen, it.Quantity())
		}
	})

	emptied, ok := s.Consume(QuickSlot(0), 1)
	if !ok || emptied {
		t.Fatalf("consume 1 of 2: ok=%v emptied=%v", ok, emptied)
	}
	it := s.GetQuick(0)
	emptied, ok = s.Consume(QuickSlot(0), 5)
	if !ok || !emptied {
		t.Fatalf("over-consume: ok=%v emptied=%v", ok, emptied)
	}
	if it.Quantity() != 0 {
		t.Fatalf("quantity should clamp at 0, got %d", it.Quantity())
	}
	mustEmpty(t, s, QuickSlot(0))
	for _, q := range seen {
		if q < 0 {
			t.Fatalf("listener observed negative quantity %d", q)
		}
	}
}

func TestGoldNeverGoesNegative(t *testing.T) {
	s := NewStore(1, 1, 1)
	if s.AddGold(0) || s.AddGold(-5) {
		t.Fatalf("non-positive credit accepted")
	}
	s.AddGold(30)
	if s.SpendGold(31) {
		t.Fatalf("overspend accepted")
	}
	if !s.SpendGold(30) {
		t.Fatalf("exact spend rejected")
	}
	if s.Gold() != 0 {
		t.Fatalf("expected 0 gold, got %d", s.Gold())
	}
}

func TestClearEmptiesEverythingWithOneChange(t *testing.T) {
	s := NewStore(2, 2, 2)
	s.Insert(arrows(5))
	s.Insert(sword())
	s.PlaceQuickAccess(1, potions(3))
	s.AddGold(12)

	var got []Change
	s.Subscribe(func(c Change) { got = append(got, c) })
	s.Clear()

	if len(got) != 1 || got[0].Reason != ReasonClear {
		t.Fatalf("expected one clear change, got %+v", got)
	}
	for i := 0; i < 4; i++ {
		mustEmpty(t, s, SlotRef{Container: Grid, Index: i})
	}
	mustEmpty(t, s, QuickSlot(1))
	if s.Gold() != 0 {
		t.Fatalf("gold not reset")
	}
}

func TestChangesOnlyForSuccessfulMutations(t *testing.T) {
	s := NewStore(2, 1, 1)
	var reasons []Reason
	unsubscribe := s.Subscribe(func(c Change) { reasons = append(reasons, c.Reason) })

	s.Insert(arrows(3))
	s.Place(s.GridRef(0, 0), sword()) // occupied
	s.Remove(s.GridRef(1, 0))         // empty
	s.SpendGold(1)                    // broke
	s.AddGold(1)
	s.Remove(s.GridRef(0, 0))

	want := []Reason{ReasonInsert, ReasonGold, ReasonRemove}
	if len(reasons) != len(want) {
		t.Fatalf("expected %v, got %v", want, reasons)
	}
	for i := range want {
		if reasons[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, reasons)
		}
	}

	unsubscribe()
	s.AddGold(1)
	if len(reasons) != len(want) {
		t.Fatalf("listener still notified after unsubscribe")
	}
}

func TestFindAndCount(t *testing.T) {
	s := NewStore(3, 2, 2)
	s.Place(s.GridRef(2, 1), potions(4))
	s.Place(s.GridRef(1, 0), potions(2))
	s.PlaceQuickAccess(0, potions(7))

	ref, ok := s.Find("potion")
	if !ok || ref != s.GridRef(1, 0) {
		t.Fatalf("expected first potion at grid (1,0), got %v %v", ref, ok)
	}
	if n := s.Count("potion"); n != 13 {
		t.Fatalf("expected 13 potions, got %d", n)
	}
	if _, ok := s.Find("sword"); ok {
		t.Fatalf("found a sword that is not there")
	}
}
