package systems

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"emberhold/pkg/inventory"
	"emberhold/pkg/items"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/config"
	"emberhold/pkg/shared/ecs"
	"emberhold/pkg/storage"
)

type PersistenceSystem struct {
	World *ecs.World
	Store storage.Store
	Log   logrus.FieldLogger
}

func NewPersistenceSystem(world *ecs.World, store storage.Store, log logrus.FieldLogger) *PersistenceSystem {
	return &PersistenceSystem{
		World: world,
		Store: store,
		Log:   log,
	}
}

// Snapshot builds the save record for a player entity on top of base, which
// carries the fields the world does not own (password, keybindings). It
// reads the world and must run under the server lock; the returned value
// can be written with Save after the lock is released.
func (s *PersistenceSystem) Snapshot(id ecs.Entity, base storage.PlayerSaveData) (storage.PlayerSaveData, bool) {
	trans, _ := ecs.GetComponent[components.TransformComponent](s.World, id)
	stats, _ := ecs.GetComponent[components.StatsComponent](s.World, id)
	if trans == nil || stats == nil {
		s.Log.WithField("player", base.Username).Debug("Skipping save of incomplete entity.")
		return base, false
	}

	data := base
	data.X = trans.X
	data.Y = trans.Y
	data.Health = stats.CurrentHealth

	if inv, _ := ecs.GetComponent[components.InventoryComponent](s.World, id); inv != nil && inv.Inventory != nil {
		data.Inventory = SnapshotInventory(inv.Inventory.Store())
	}
	if uiState, _ := ecs.GetComponent[components.UIStateComponent](s.World, id); uiState != nil {
		data.OpenMenus = uiState.OpenMenus
	}
	return data, true
}

func (s *PersistenceSystem) Save(ctx context.Context, data storage.PlayerSaveData) error {
	if err := s.Store.Save(ctx, data); err != nil {
		return fmt.Errorf("save player %s: %w", data.Username, err)
	}
	s.Log.WithField("player", data.Username).Debug("Saved player.")
	return nil
}

// SnapshotInventory lists the occupied slots of store. An open drag must be
// settled first or the dragged stack is missing from the result.
func SnapshotInventory(store *inventory.Store) storage.InventorySave {
	save := storage.InventorySave{
		Grid:  make([]storage.SlotSave, 0),
		Quick: make([]storage.SlotSave, 0),
		Gold:  store.Gold(),
	}
	store.Each(inventory.Grid, func(ref inventory.SlotRef, it inventory.Item) {
		save.Grid = append(save.Grid, storage.SlotSave{Index: ref.Index, ItemID: it.Kind(), Quantity: it.Quantity()})
	})
	store.Each(inventory.QuickAccess, func(ref inventory.SlotRef, it inventory.Item) {
		save.Quick = append(save.Quick, storage.SlotSave{Index: ref.Index, ItemID: it.Kind(), Quantity: it.Quantity()})
	})
	return save
}

// RestoreInventory fills an empty store from a save. Entries that cannot be
// restored (unknown ids, slots outside a shrunken grid) are reported and
// skipped; stacks above the current max stack are split and inserted.
func RestoreInventory(store *inventory.Store, save storage.InventorySave) []error {
	var errs []error
	restore := func(ref inventory.SlotRef, slot storage.SlotSave) {
		stacks, err := SplitStacks(slot.ItemID, slot.Quantity)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref, err))
			return
		}
		first := stacks[0]
		if !store.Place(ref, first) && !store.Insert(first) {
			errs = append(errs, fmt.Errorf("%s: no room for %s", ref, first))
		}
		for _, extra := range stacks[1:] {
			if !store.Insert(extra) {
				errs = append(errs, fmt.Errorf("%s: no room for %s", ref, extra))
			}
		}
	}
	for _, slot := range save.Grid {
		restore(inventory.SlotRef{Container: inventory.Grid, Index: slot.Index}, slot)
	}
	for _, slot := range save.Quick {
		restore(inventory.QuickSlot(slot.Index), slot)
	}
	if save.Gold > 0 {
		store.AddGold(save.Gold)
	}
	return errs
}

// SplitStacks turns qty units of id into as many full stacks as needed.
func SplitStacks(id string, qty int) ([]*items.Stack, error) {
	def, err := items.Lookup(id)
	if err != nil {
		return nil, err
	}
	if qty < 1 {
		return nil, fmt.Errorf("item %s: quantity %d", id, qty)
	}
	var stacks []*items.Stack
	for qty > 0 {
		n := min(qty, def.MaxStack)
		stack, err := items.New(id, n)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, stack)
		qty -= n
	}
	return stacks, nil
}

// GrantStarterKit gives a new player the configured items. They go through
// Pickup so managed consumables land in quick access.
func GrantStarterKit(inv *inventory.Inventory, kit []config.KitEntry, gold int) error {
	for _, entry := range kit {
		if entry.ID == items.CoinGold {
			gold += entry.Quantity
			continue
		}
		stacks, err := SplitStacks(entry.ID, entry.Quantity)
		if err != nil {
			return fmt.Errorf("starter kit: %w", err)
		}
		for _, s := range stacks {
			if !inv.Pickup(s) {
				return fmt.Errorf("starter kit: no room for %s", s)
			}
		}
	}
	if gold > 0 {
		inv.Store().AddGold(gold)
	}
	return nil
}
