package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Combat.HitDelay != 800*time.Millisecond || cfg.Combat.ChanceRollMax != 50 {
		t.Errorf("combat defaults = %+v", cfg.Combat)
	}
	if cfg.Player.WinGold != 10000 || cfg.Player.Health != 30 {
		t.Errorf("player defaults = %+v", cfg.Player)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	src := `
[sim]
seed = 42
max_ticks = 500

[combat]
hit_delay = "650ms"
hit_chance = 7

[database]
conn_max_lifetime = "5m"
`
	cfg, err := Parse([]byte(src), "inline")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Seed != 42 || cfg.Sim.MaxTicks != 500 {
		t.Errorf("sim = %+v", cfg.Sim)
	}
	if cfg.Combat.HitDelay != 650*time.Millisecond || cfg.Combat.HitChance != 7 {
		t.Errorf("combat = %+v", cfg.Combat)
	}
	if cfg.Combat.GlobalCooldown != 1200*time.Millisecond {
		t.Error("untouched key lost its default")
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("conn lifetime = %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Sim.TickRate != 16*time.Millisecond {
		t.Errorf("tick rate = %v", cfg.Sim.TickRate)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bad duration", "[combat]\nhit_delay = \"soon\"", "parse config"},
		{"zero tick", "[sim]\ntick_rate = \"0s\"", "tick_rate"},
		{"tiny location", "[sim]\nlocation_width = 4", "too small"},
		{"negative roll", "[combat]\nchance_roll_max = -1", "chance_roll_max"},
		{"db without dsn", "[database]\nenabled = true\ndsn = \"\"", "dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "inline")
			if err == nil {
				t.Fatal("accepted")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadShippedConfig(t *testing.T) {
	path := filepath.Join("..", "..", "config", "roguesim.toml")
	if _, err := os.Stat(path); err != nil {
		t.Skip("shipped config not found")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.Enabled {
		t.Error("shipped config enables the database")
	}
	if cfg.Npc.DirectionCooldown != 1500*time.Millisecond {
		t.Errorf("direction cooldown = %v", cfg.Npc.DirectionCooldown)
	}
}
