package items

import (
	"errors"
	"fmt"
	"sort"
)

type ItemType int

const (
	ItemTypeWeapon ItemType = iota
	ItemTypeConsumable
	ItemTypeMisc
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeWeapon:
		return "weapon"
	case ItemTypeConsumable:
		return "consumable"
	case ItemTypeMisc:
		return "misc"
	}
	return fmt.Sprintf("ItemType(%d)", int(t))
}

// ParseItemType maps a catalog type name to an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "weapon":
		return ItemTypeWeapon, nil
	case "consumable":
		return ItemTypeConsumable, nil
	case "misc":
		return ItemTypeMisc, nil
	}
	return 0, fmt.Errorf("unknown item type %q", s)
}

// ErrUnknownItem is returned when an id has no registered definition.
var ErrUnknownItem = errors.New("unknown item")

// Definition represents the static data for an item.
type Definition struct {
	ID          string // Unique string ID e.g. "sword_starter"
	Name        string
	Type        ItemType
	Description string

	// MaxStack is the largest quantity one slot may hold. 1 means the item
	// never stacks.
	MaxStack int

	Damage     float64 // weapons
	HealAmount float64 // consumables

	// Equipment Data
	EquipmentSlot int // -1 if not equippable
}

// Usable items may sit in the quick access bar.
func (d Definition) Usable() bool {
	return d.Type == ItemTypeConsumable
}

func (d Definition) validate() error {
	if d.ID == "" {
		return errors.New("item definition without id")
	}
	if d.MaxStack < 1 {
		return fmt.Errorf("item %s: max stack must be at least 1", d.ID)
	}
	return nil
}

// registry is filled by init() in this package and by catalog files at
// startup. It is read-only once the server or client starts ticking.
var registry = make(map[string]Definition)

// Register adds a built-in definition. It panics on duplicates or invalid
// data since those are programming errors.
func Register(def Definition) {
	if _, exists := registry[def.ID]; exists {
		panic("duplicate item ID: " + def.ID)
	}
	if err := def.validate(); err != nil {
		panic(err)
	}
	registry[def.ID] = def
}

// Define adds or replaces a definition coming from data files.
func Define(def Definition) error {
	if err := def.validate(); err != nil {
		return err
	}
	registry[def.ID] = def
	return nil
}

func Get(id string) (Definition, bool) {
	def, ok := registry[id]
	return def, ok
}

// Lookup is Get with an error suitable for wrapping.
func Lookup(id string) (Definition, error) {
	def, ok := registry[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return def, nil
}

// IDs lists every registered id in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
