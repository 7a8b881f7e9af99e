package systems

import (
	"context"
	"testing"

	"emberhold/pkg/inventory"
	"emberhold/pkg/items"
	"emberhold/pkg/logging"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/config"
	"emberhold/pkg/shared/ecs"
	protocol "emberhold/pkg/shared/network"
	"emberhold/pkg/storage"
)

func newInventory() *inventory.Inventory {
	return inventory.New(inventory.Config{GridWidth: 4, GridHeight: 2, QuickSlots: 3, ManagedKind: items.PotionHealthSmall})
}

func TestInventorySnapshotRestore(t *testing.T) {
	inv := newInventory()
	st := inv.Store()
	st.Place(st.GridRef(1, 0), items.MustNew(items.ArrowWooden, 17))
	st.Place(st.GridRef(3, 1), items.MustNew("bow_starter", 1))
	st.PlaceQuickAccess(2, items.MustNew(items.PotionHealthSmall, 4))
	st.AddGold(99)

	save := SnapshotInventory(st)
	if len(save.Grid) != 2 || len(save.Quick) != 1 || save.Gold != 99 {
		t.Fatalf("unexpected snapshot %+v", save)
	}

	restored := newInventory()
	if errs := RestoreInventory(restored.Store(), save); len(errs) != 0 {
		t.Fatalf("restore errors: %v", errs)
	}
	rs := restored.Store()
	if it := rs.GetGrid(1, 0); it == nil || it.Kind() != items.ArrowWooden || it.Quantity() != 17 {
		t.Fatalf("arrows not restored, got %v", it)
	}
	if it := rs.GetGrid(3, 1); it == nil || it.Kind() != "bow_starter" {
		t.Fatalf("bow not restored, got %v", it)
	}
	if it := rs.GetQuick(2); it == nil || it.Quantity() != 4 {
		t.Fatalf("potions not restored, got %v", it)
	}
	if rs.Gold() != 99 {
		t.Fatalf("gold not restored")
	}
}

func TestRestoreSkipsBadEntries(t *testing.T) {
	save := storage.InventorySave{
		Grid: []storage.SlotSave{
			{Index: 0, ItemID: "mystery_box", Quantity: 1},
			{Index: 1, ItemID: items.ArrowWooden, Quantity: 45},
			{Index: 50, ItemID: "sword_starter", Quantity: 1},
		},
		Quick: []storage.SlotSave{
			{Index: 0, ItemID: "sword_starter", Quantity: 1},
		},
	}
	inv := newInventory()
	errs := RestoreInventory(inv.Store(), save)
	if len(errs) != 1 {
		t.Fatalf("expected only the unknown item to fail, got %v", errs)
	}
	st := inv.Store()
	if n := st.Count(items.ArrowWooden); n != 45 {
		t.Fatalf("oversized stack not split, %d arrows", n)
	}
	if n := st.Count("sword_starter"); n != 2 {
		t.Fatalf("misplaced swords should be inserted elsewhere, got %d", n)
	}
	if st.GetQuick(0) != nil {
		t.Fatalf("sword restored into quick access")
	}
}

func TestSplitStacks(t *testing.T) {
	stacks, err := SplitStacks(items.ArrowWooden, 45)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	want := []int{20, 20, 5}
	if len(stacks) != len(want) {
		t.Fatalf("expected %d stacks, got %d", len(want), len(stacks))
	}
	for i, s := range stacks {
		if s.Quantity() != want[i] {
			t.Fatalf("stack %d holds %d, want %d", i, s.Quantity(), want[i])
		}
	}
	if _, err := SplitStacks(items.ArrowWooden, 0); err == nil {
		t.Fatalf("zero quantity split")
	}
	if _, err := SplitStacks("nope", 1); err == nil {
		t.Fatalf("unknown id split")
	}
}

func TestGrantStarterKit(t *testing.T) {
	inv := newInventory()
	kit := []config.KitEntry{
		{ID: "sword_starter", Quantity: 1},
		{ID: items.PotionHealthSmall, Quantity: 12},
		{ID: items.CoinGold, Quantity: 5},
	}
	if err := GrantStarterKit(inv, kit, 10); err != nil {
		t.Fatalf("grant: %v", err)
	}
	st := inv.Store()
	if it := st.GetQuick(0); it == nil || it.Quantity() != 10 {
		t.Fatalf("first potion stack should sit in quick access, got %v", it)
	}
	if st.Count(items.PotionHealthSmall) != 12 || st.Gold() != 15 {
		t.Fatalf("unexpected kit result: %d potions, %d gold", st.Count(items.PotionHealthSmall), st.Gold())
	}

	if err := GrantStarterKit(newInventory(), []config.KitEntry{{ID: "nope", Quantity: 1}}, 0); err == nil {
		t.Fatalf("unknown kit item accepted")
	}
}

func TestPersistenceSnapshotAndSave(t *testing.T) {
	world := ecs.NewWorld()
	store := storage.NewFileStore(t.TempDir())
	ps := NewPersistenceSystem(world, store, logging.Discard())

	id := world.NewEntity()
	if _, ok := ps.Snapshot(id, storage.PlayerSaveData{Username: "mo"}); ok {
		t.Fatalf("snapshot of an empty entity succeeded")
	}

	inv := newInventory()
	inv.Pickup(items.MustNew(items.PotionHealthSmall, 2))
	world.AddComponent(id, components.TransformComponent{X: 10, Y: 20})
	world.AddComponent(id, components.StatsComponent{MaxHealth: 100, CurrentHealth: 40})
	world.AddComponent(id, components.InventoryComponent{Inventory: inv})
	world.AddComponent(id, components.UIStateComponent{OpenMenus: map[string]bool{"Inventory": true}})

	data, ok := ps.Snapshot(id, storage.PlayerSaveData{Username: "mo", Password: "pw"})
	if !ok {
		t.Fatalf("snapshot failed")
	}
	if data.Password != "pw" || data.X != 10 || data.Health != 40 || !data.OpenMenus["Inventory"] {
		t.Fatalf("unexpected snapshot %+v", data)
	}
	if len(data.Inventory.Quick) != 1 {
		t.Fatalf("inventory missing from snapshot")
	}
	if err := ps.Save(context.Background(), data); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Load(context.Background(), "mo"); err != nil {
		t.Fatalf("load after save: %v", err)
	}
}

func TestPrepareInventorySyncShowsDrag(t *testing.T) {
	inv := newInventory()
	st := inv.Store()
	st.Place(st.GridRef(2, 1), items.MustNew(items.ArrowWooden, 8))
	inv.Engine().BeginDrag(st.GridRef(2, 1))

	sync := PrepareInventorySync(inv).Data.(protocol.InventorySyncPacket)
	if !sync.Dragging || sync.DragItem.Quantity != 8 || sync.DragSource != st.GridRef(2, 1) {
		t.Fatalf("drag missing from sync: %+v", sync)
	}
	if len(sync.Grid) != 0 || sync.Width != 4 || sync.QuickSlots != 3 {
		t.Fatalf("unexpected sync %+v", sync)
	}
}

func TestMovementStaysInArena(t *testing.T) {
	world := ecs.NewWorld()
	ms := NewMovementSystem(world, 100, 100)
	id := world.NewEntity()
	world.AddComponent(id, components.TransformComponent{X: 98, Y: 50})
	world.AddComponent(id, components.PhysicsComponent{Speed: 6})
	world.AddComponent(id, components.InputComponent{Right: true})

	ms.Update(0.033)
	tr, _ := ecs.GetComponent[components.TransformComponent](world, id)
	if tr.X != 100 || tr.Y != 50 {
		t.Fatalf("expected clamp at the right edge, got (%v, %v)", tr.X, tr.Y)
	}
}

func TestStateUpdateListsSprites(t *testing.T) {
	world := ecs.NewWorld()
	ns := NewNetworkSystem(world)
	player := world.NewEntity()
	world.AddComponent(player, components.TransformComponent{X: 1})
	world.AddComponent(player, components.SpriteComponent{Width: 32})
	ground := world.NewEntity()
	world.AddComponent(ground, components.TransformComponent{X: 2})
	world.AddComponent(ground, components.GroundItemComponent{ItemID: items.ArrowWooden, Quantity: 3})

	state := ns.PrepareStateUpdate().Data.(protocol.StateUpdatePacket)
	if len(state.Entities) != 1 || state.Entities[0].ID != player {
		t.Fatalf("unexpected state %+v", state)
	}
	sync := ns.PrepareGroundItems().Data.(protocol.GroundItemsSyncPacket)
	if len(sync.Items) != 1 || sync.Items[0].ID != ground || sync.Items[0].Quantity != 3 {
		t.Fatalf("unexpected ground items %+v", sync)
	}
}
