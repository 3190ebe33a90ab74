package scripting

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNilEngineUsesBuiltins(t *testing.T) {
	var e *Engine
	ctx := MeleeContext{AttackerStrength: 5, WeaponDamage: 3}
	if got := e.CalcMeleeDamage(ctx); got != 8 {
		t.Errorf("CalcMeleeDamage = %d, want 8", got)
	}
	if got := e.PotionHeal("Health Potion", 10, 5, 30); got != 10 {
		t.Errorf("PotionHeal = %d, want 10", got)
	}
	e.Close()
}

func TestCalcMeleeDamageHook(t *testing.T) {
	e, err := NewEngineFromSource(`
function calc_melee_damage(ctx)
  if ctx.attacker.facing == 0 then
    return ctx.attacker.str * 2 + ctx.attacker.weapon_dmg
  end
  return ctx.attacker.str + ctx.attacker.weapon_dmg
end`, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if got := e.CalcMeleeDamage(MeleeContext{AttackerStrength: 5, WeaponDamage: 3, AttackerFacing: 0}); got != 13 {
		t.Errorf("overhead = %d, want 13", got)
	}
	if got := e.CalcMeleeDamage(MeleeContext{AttackerStrength: 5, WeaponDamage: 3, AttackerFacing: 2}); got != 8 {
		t.Errorf("low = %d, want 8", got)
	}
}

func TestCalcMeleeDamageFallsBackOnError(t *testing.T) {
	e, err := NewEngineFromSource(`function calc_melee_damage(ctx) error("boom") end`, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if got := e.CalcMeleeDamage(MeleeContext{AttackerStrength: 2, WeaponDamage: 1}); got != 3 {
		t.Errorf("got %d, want builtin 3", got)
	}

	e2, err := NewEngineFromSource(`function calc_melee_damage(ctx) return "lots" end`, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e2.Close()
	if got := e2.CalcMeleeDamage(MeleeContext{AttackerStrength: 2}); got != 2 {
		t.Errorf("non-number result: got %d, want builtin 2", got)
	}
}

func TestNewEngineLoadsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "item"), 0o755); err != nil {
		t.Fatal(err)
	}
	src := `function calc_potion_heal(name, base, hp, max_hp) return base + 5 end`
	if err := os.WriteFile(filepath.Join(dir, "item", "potion.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if !e.HasFunc("calc_potion_heal") || e.HasFunc("calc_melee_damage") {
		t.Fatal("HasFunc mismatch")
	}
	if got := e.PotionHeal("Health Potion", 10, 1, 30); got != 15 {
		t.Errorf("PotionHeal = %d, want 15", got)
	}
}

func TestNewEngineReportsBrokenScript(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "combat"), 0o755)
	os.WriteFile(filepath.Join(dir, "combat", "bad.lua"), []byte("function ("), 0o644)
	if _, err := NewEngine(dir, nil); err == nil {
		t.Fatal("syntax error not reported")
	}
}
