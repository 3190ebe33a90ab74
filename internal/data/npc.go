package data

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/retrorpg/roguecore/internal/world"
	"gopkg.in/yaml.v3"
)

// NpcTemplate holds static data for an NPC type loaded from YAML.
// Zero cooldowns fall back to the [npc] config section.
type NpcTemplate struct {
	Name        string        `yaml:"name"`
	Symbol      string        `yaml:"symbol"`
	Color       string        `yaml:"color"`
	Disposition string        `yaml:"disposition"` // aggressive or passive
	Vision      int32         `yaml:"vision"`
	Strength    int32         `yaml:"strength"`
	Health      int32         `yaml:"health"`
	MoveCD      time.Duration `yaml:"move_cooldown"`
	PathCD      time.Duration `yaml:"path_cooldown"`
	HitCD       time.Duration `yaml:"hit_cooldown"`
	TurnCD      time.Duration `yaml:"direction_cooldown"`
	Gear        []GearItem    `yaml:"gear"`

	symbol rune
	color  world.Color
	actor  world.ActorKind
}

func (n *NpcTemplate) Rune() rune                 { return n.symbol }
func (n *NpcTemplate) RGB() world.Color           { return n.color }
func (n *NpcTemplate) ActorKind() world.ActorKind { return n.actor }

type npcListFile struct {
	Npcs []NpcTemplate `yaml:"npcs"`
}

// NpcTable holds all NPC templates indexed by name.
type NpcTable struct {
	templates map[string]*NpcTemplate
	order     []string
}

// LoadNpcTable loads NPC templates from a YAML file.
func LoadNpcTable(path string) (*NpcTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read npc_list: %w", err)
	}
	return ParseNpcTable(raw)
}

// ParseNpcTable decodes an npc_list document.
func ParseNpcTable(raw []byte) (*NpcTable, error) {
	var f npcListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse npc_list: %w", err)
	}
	t := &NpcTable{templates: make(map[string]*NpcTemplate, len(f.Npcs))}
	for i := range f.Npcs {
		npc := &f.Npcs[i]
		if utf8.RuneCountInString(npc.Symbol) != 1 {
			return nil, fmt.Errorf("npc %q: symbol must be one character, got %q", npc.Name, npc.Symbol)
		}
		npc.symbol, _ = utf8.DecodeRuneInString(npc.Symbol)
		c, ok := world.ColorByName(npc.Color)
		if !ok {
			return nil, fmt.Errorf("npc %q: unknown color %q", npc.Name, npc.Color)
		}
		npc.color = c
		switch npc.Disposition {
		case "aggressive":
			npc.actor = world.ActorHostile
		case "passive":
			npc.actor = world.ActorPassive
		default:
			return nil, fmt.Errorf("npc %q: unknown disposition %q", npc.Name, npc.Disposition)
		}
		if npc.Health <= 0 {
			return nil, fmt.Errorf("npc %q: health must be positive", npc.Name)
		}
		t.templates[npc.Name] = npc
		t.order = append(t.order, npc.Name)
	}
	return t, nil
}

// Get returns an NPC template by name, or nil if not found.
func (t *NpcTable) Get(name string) *NpcTemplate {
	return t.templates[name]
}

// Count returns the number of loaded templates.
func (t *NpcTable) Count() int {
	return len(t.templates)
}

func (t *NpcTable) Names() []string {
	return append([]string(nil), t.order...)
}
