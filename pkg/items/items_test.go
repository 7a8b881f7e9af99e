package items

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emberhold/pkg/inventory"
)

func TestBuiltinDefinitions(t *testing.T) {
	potion, ok := Get(PotionHealthSmall)
	if !ok {
		t.Fatalf("%s not registered", PotionHealthSmall)
	}
	if !potion.Usable() || potion.MaxStack < 2 {
		t.Fatalf("health potion must be a usable stack: %+v", potion)
	}
	sword, ok := Get("sword_starter")
	if !ok || sword.Usable() || sword.MaxStack != 1 {
		t.Fatalf("unexpected sword definition %+v", sword)
	}
	if ids := IDs(); len(ids) < 5 {
		t.Fatalf("expected built-in ids, got %v", ids)
	}
}

func TestNewUnknownItem(t *testing.T) {
	if _, err := New("no_such_thing", 1); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if _, err := New(ArrowWooden, 0); err == nil {
		t.Fatalf("zero quantity stack created")
	}
}

func TestStackImplementsItem(t *testing.T) {
	s := MustNew(ArrowWooden, 50)
	if s.Quantity() != 20 {
		t.Fatalf("quantity should clamp to max stack, got %d", s.Quantity())
	}
	c := s.Clone()
	c.SetQuantity(3)
	if s.Quantity() != 20 {
		t.Fatalf("clone shares state with original")
	}
	s.SetQuantity(-4)
	if s.Quantity() != 0 {
		t.Fatalf("negative quantity stored")
	}
	if MustNew("sword_starter", 1).IsStackable() {
		t.Fatalf("sword should not stack")
	}
}

func TestStacksInAStore(t *testing.T) {
	store := inventory.NewStore(6, 4, 6)
	store.Insert(MustNew(ArrowWooden, 10))
	store.Insert(MustNew(ArrowWooden, 15))
	if got := store.GetGrid(0, 0).Quantity(); got != 20 {
		t.Fatalf("(0,0) holds %d", got)
	}
	if got := store.GetGrid(1, 0).Quantity(); got != 5 {
		t.Fatalf("(1,0) holds %d", got)
	}
	if store.PlaceQuickAccess(0, MustNew("bow_starter", 1)) {
		t.Fatalf("bow accepted into quick access")
	}
	if !store.PlaceQuickAccess(0, MustNew(PotionHealthSmall, 2)) {
		t.Fatalf("potion rejected from quick access")
	}
}

const sampleCatalog = `
items:
  - id: potion_mana_small
    name: Small Mana Potion
    type: consumable
    max_stack: 10
    heal_amount: 0
  - id: axe_bronze
    name: Bronze Axe
    type: weapon
    max_stack: 1
    damage: 14
    equipment_slot: 5
`

func TestParseCatalog(t *testing.T) {
	defs, err := ParseCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Type != ItemTypeConsumable || defs[0].EquipmentSlot != -1 {
		t.Fatalf("unexpected mana potion %+v", defs[0])
	}
	if defs[1].Damage != 14 || defs[1].EquipmentSlot != 5 {
		t.Fatalf("unexpected axe %+v", defs[1])
	}
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not yaml", "items: [\n"},
		{"missing items", "things: []\n"},
		{"missing max stack", "items:\n  - {id: a, name: A, type: misc}\n"},
		{"zero max stack", "items:\n  - {id: a, name: A, type: misc, max_stack: 0}\n"},
		{"bad type", "items:\n  - {id: a, name: A, type: armor, max_stack: 1}\n"},
		{"bad id", "items:\n  - {id: Bad-Id, name: A, type: misc, max_stack: 1}\n"},
		{"unknown field", "items:\n  - {id: a, name: A, type: misc, max_stack: 1, weight: 3}\n"},
		{"duplicate", "items:\n  - {id: a, name: A, type: misc, max_stack: 1}\n  - {id: a, name: B, type: misc, max_stack: 1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.raw)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadCatalogDefinesItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 2 {
		t.Fatalf("loaded %d items", n)
	}
	if _, ok := Get("axe_bronze"); !ok {
		t.Fatalf("axe_bronze not defined")
	}

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected a read error, got %v", err)
	}
}

func TestExampleCatalogParses(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "items.example.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	defs, err := ParseCatalog(raw)
	if err != nil {
		t.Fatalf("parse example catalog: %v", err)
	}
	if len(defs) != 3 || !defs[0].Usable() || defs[2].EquipmentSlot != SlotWeapon {
		t.Fatalf("unexpected definitions %+v", defs)
	}
}
