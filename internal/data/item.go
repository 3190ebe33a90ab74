package data

import (
	"fmt"
	"os"

	"github.com/retrorpg/roguecore/internal/world"
	"gopkg.in/yaml.v3"
)

// ItemTemplate holds static data for an item type loaded from YAML.
type ItemTemplate struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"` // weapon, helmet, breastplate, leggings, potion, coins
	Damage     int32  `yaml:"damage"`
	Protection int32  `yaml:"protection"`
	Price      int32  `yaml:"price"`
	Heal       int32  `yaml:"heal"` // potions only

	kind world.ItemKind
}

type itemListFile struct {
	Items []ItemTemplate `yaml:"items"`
}

// ItemTable holds all item templates indexed by name.
type ItemTable struct {
	items map[string]*ItemTemplate
	order []string
}

// LoadItemTable loads item templates from a YAML file.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item_list: %w", err)
	}
	return ParseItemTable(raw)
}

// ParseItemTable decodes an item_list document.
func ParseItemTable(raw []byte) (*ItemTable, error) {
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse item_list: %w", err)
	}
	t := &ItemTable{items: make(map[string]*ItemTemplate, len(f.Items))}
	for i := range f.Items {
		it := &f.Items[i]
		k, ok := world.ParseItemKind(it.Kind)
		if !ok {
			return nil, fmt.Errorf("item %q: unknown kind %q", it.Name, it.Kind)
		}
		if _, dup := t.items[it.Name]; dup {
			return nil, fmt.Errorf("item %q: duplicate name", it.Name)
		}
		it.kind = k
		t.items[it.Name] = it
		t.order = append(t.order, it.Name)
	}
	return t, nil
}

// Get returns an item template by name, or nil if not found.
func (t *ItemTable) Get(name string) *ItemTemplate {
	return t.items[name]
}

// Count returns the number of loaded templates.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// Names lists templates in file order.
func (t *ItemTable) Names() []string {
	return append([]string(nil), t.order...)
}

// New stamps a fresh item instance, nil for an unknown name.
func (t *ItemTable) New(name string) *world.Item {
	tmpl := t.items[name]
	if tmpl == nil {
		return nil
	}
	return &world.Item{
		Name:       tmpl.Name,
		Kind:       tmpl.kind,
		Damage:     tmpl.Damage,
		Protection: tmpl.Protection,
		Price:      tmpl.Price,
		Heal:       tmpl.Heal,
	}
}
