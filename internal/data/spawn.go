package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldGen tunes the overworld generator.
type WorldGen struct {
	Forests      int `yaml:"forests"`
	InitialDecay int `yaml:"initial_decay"`
	DecayStep    int `yaml:"decay_step"`
	Villages     int `yaml:"villages"`
	MinHouses    int `yaml:"min_houses"`
	MaxHouses    int `yaml:"max_houses"`
}

// LocationGen tunes generated locations.
type LocationGen struct {
	Monsters    []string `yaml:"monsters"`
	MinMonsters int      `yaml:"min_monsters"`
	MaxMonsters int      `yaml:"max_monsters"`
	SafeZone    int32    `yaml:"safe_zone"`   // no monster with x and y both <= this
	TreeChance  int      `yaml:"tree_chance"` // percent per forest cell
	Villager    string   `yaml:"villager"`
	ChestItems  []string `yaml:"chest_items"`
	MinHouseW   int32    `yaml:"min_house_size"`
	MaxHouseW   int32    `yaml:"max_house_size"`
}

// SpawnTable is the spawn_list document.
type SpawnTable struct {
	World    WorldGen    `yaml:"world"`
	Location LocationGen `yaml:"location"`
}

// LoadSpawnTable loads generation tuning from a YAML file.
func LoadSpawnTable(path string) (*SpawnTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	return ParseSpawnTable(raw)
}

// ParseSpawnTable decodes a spawn_list document.
func ParseSpawnTable(raw []byte) (*SpawnTable, error) {
	var t SpawnTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	if t.Location.MinMonsters > t.Location.MaxMonsters {
		return nil, fmt.Errorf("spawn_list: min_monsters %d > max_monsters %d",
			t.Location.MinMonsters, t.Location.MaxMonsters)
	}
	if t.World.MinHouses > t.World.MaxHouses {
		return nil, fmt.Errorf("spawn_list: min_houses %d > max_houses %d",
			t.World.MinHouses, t.World.MaxHouses)
	}
	if t.Location.MinHouseW > t.Location.MaxHouseW {
		return nil, fmt.Errorf("spawn_list: min_house_size %d > max_house_size %d",
			t.Location.MinHouseW, t.Location.MaxHouseW)
	}
	return &t, nil
}

// Tables bundles every static table the simulation reads.
type Tables struct {
	Npcs   *NpcTable
	Items  *ItemTable
	Spawns *SpawnTable
}

// Validate checks that every name referenced across tables resolves.
func (t *Tables) Validate() error {
	for _, name := range t.Npcs.Names() {
		for _, g := range t.Npcs.Get(name).Gear {
			if t.Items.Get(g.Item) == nil {
				return fmt.Errorf("npc %q gear: unknown item %q", name, g.Item)
			}
		}
	}
	for _, m := range t.Spawns.Location.Monsters {
		if t.Npcs.Get(m) == nil {
			return fmt.Errorf("spawn_list monsters: unknown npc %q", m)
		}
	}
	if v := t.Spawns.Location.Villager; v != "" && t.Npcs.Get(v) == nil {
		return fmt.Errorf("spawn_list villager: unknown npc %q", v)
	}
	for _, it := range t.Spawns.Location.ChestItems {
		if t.Items.Get(it) == nil {
			return fmt.Errorf("spawn_list chest_items: unknown item %q", it)
		}
	}
	return nil
}
