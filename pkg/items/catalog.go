package items

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var catalogSchema string

var compiledCatalogSchema = jsonschema.MustCompileString("catalog.schema.json", catalogSchema)

type catalogFile struct {
	Items []catalogEntry `yaml:"items"`
}

type catalogEntry struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Type          string  `yaml:"type"`
	Description   string  `yaml:"description"`
	MaxStack      int     `yaml:"max_stack"`
	Damage        float64 `yaml:"damage"`
	HealAmount    float64 `yaml:"heal_amount"`
	EquipmentSlot *int    `yaml:"equipment_slot"`
}

// ParseCatalog validates a YAML item catalog against the catalog schema and
// returns its definitions.
func ParseCatalog(raw []byte) ([]Definition, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	// The schema validator works on JSON values.
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	var generic any
	if err := json.Unmarshal(js, &generic); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := compiledCatalogSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defs := make([]Definition, 0, len(f.Items))
	seen := make(map[string]bool, len(f.Items))
	for _, e := range f.Items {
		if seen[e.ID] {
			return nil, fmt.Errorf("catalog: duplicate id %s", e.ID)
		}
		seen[e.ID] = true
		t, err := ParseItemType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", e.ID, err)
		}
		slot := -1
		if e.EquipmentSlot != nil {
			slot = *e.EquipmentSlot
		}
		defs = append(defs, Definition{
			ID:            e.ID,
			Name:          e.Name,
			Type:          t,
			Description:   e.Description,
			MaxStack:      e.MaxStack,
			Damage:        e.Damage,
			HealAmount:    e.HealAmount,
			EquipmentSlot: slot,
		})
	}
	return defs, nil
}

// LoadCatalog reads a catalog file and defines every item in it. Entries
// replace built-in definitions with the same id.
func LoadCatalog(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	defs, err := ParseCatalog(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for _, d := range defs {
		if err := Define(d); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
	}
	return len(defs), nil
}
