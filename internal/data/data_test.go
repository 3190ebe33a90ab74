package data

import (
	"math/rand"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/retrorpg/roguecore/internal/world"
)

func repoFile(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("no caller info")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", rel)
}

func loadShipped(t *testing.T) *Tables {
	t.Helper()
	npcs, err := LoadNpcTable(repoFile(t, "data/yaml/npc_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	items, err := LoadItemTable(repoFile(t, "data/yaml/item_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	spawns, err := LoadSpawnTable(repoFile(t, "data/yaml/spawn_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return &Tables{Npcs: npcs, Items: items, Spawns: spawns}
}

func TestShippedTablesValidate(t *testing.T) {
	tables := loadShipped(t)
	if err := tables.Validate(); err != nil {
		t.Fatal(err)
	}

	goblin := tables.Npcs.Get("Goblin")
	if goblin == nil {
		t.Fatal("Goblin missing")
	}
	if goblin.Rune() != 'G' || goblin.ActorKind() != world.ActorHostile || goblin.Health != 25 {
		t.Errorf("goblin = %+v", goblin)
	}
	if human := tables.Npcs.Get("Human"); human.ActorKind() != world.ActorPassive {
		t.Error("Human must be passive")
	}
	if ghost := tables.Npcs.Get("Ghost"); ghost.Rune() != '?' || ghost.RGB() != world.Grey {
		t.Error("Ghost glyph wrong")
	}

	sword := tables.Items.New("Rusty Sword")
	if sword == nil || sword.Kind != world.ItemWeapon || sword.Damage != 3 || sword.Price != 10 {
		t.Errorf("sword = %+v", sword)
	}
	if tables.Items.New("Excalibur") != nil {
		t.Error("unknown item instantiated")
	}
}

func TestParseNpcTableRejectsBadDisposition(t *testing.T) {
	doc := `
npcs:
  - name: Rat
    symbol: r
    color: grey
    disposition: grumpy
    health: 3
`
	_, err := ParseNpcTable([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "disposition") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseNpcTableCooldownOverride(t *testing.T) {
	doc := `
npcs:
  - name: Wolf
    symbol: w
    color: brown
    disposition: aggressive
    health: 12
    move_cooldown: 500ms
`
	tbl, err := ParseNpcTable([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Get("Wolf").MoveCD; got != 500*time.Millisecond {
		t.Errorf("MoveCD = %v", got)
	}
}

func TestValidateCatchesDanglingNames(t *testing.T) {
	tables := loadShipped(t)
	tables.Spawns.Location.Monsters = append(tables.Spawns.Location.Monsters, "Dragon")
	if err := tables.Validate(); err == nil {
		t.Error("unknown monster accepted")
	}
}

func TestRollGear(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	gear := []GearItem{{Item: "a", Chance: 100}, {Item: "b", Chance: 0}}
	got := RollGear(gear, rng)
	if len(got) != 1 || got[0].Item != "a" {
		t.Errorf("RollGear = %+v", got)
	}
}
