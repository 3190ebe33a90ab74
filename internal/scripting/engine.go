package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for game formula hooks.
// Single-goroutine access only (tick loop). A nil *Engine is valid and
// always answers with the built-in formulas.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// scriptDirs are loaded in this order; missing directories are skipped.
var scriptDirs = []string{"core", "combat", "item", "ai"}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	for _, sub := range scriptDirs {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource creates an engine running a single chunk of Lua.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// MeleeContext holds pre-packed data for one melee hit.
type MeleeContext struct {
	AttackerName     string
	AttackerStrength int
	WeaponDamage     int
	AttackerFacing   int
	DefenderName     string
	DefenderHealth   int
	DefenderFacing   int
}

// BuiltinMeleeDamage is strength plus weapon damage.
func BuiltinMeleeDamage(ctx MeleeContext) int {
	return ctx.AttackerStrength + ctx.WeaponDamage
}

// CalcMeleeDamage calls the Lua calc_melee_damage function and returns the
// raw damage before armour. Missing function or a script error falls back
// to BuiltinMeleeDamage.
func (e *Engine) CalcMeleeDamage(ctx MeleeContext) int {
	if e == nil {
		return BuiltinMeleeDamage(ctx)
	}
	fn := e.vm.GetGlobal("calc_melee_damage")
	if fn == lua.LNil {
		return BuiltinMeleeDamage(ctx)
	}

	t := e.vm.NewTable()

	atk := e.vm.NewTable()
	atk.RawSetString("name", lua.LString(ctx.AttackerName))
	atk.RawSetString("str", lua.LNumber(ctx.AttackerStrength))
	atk.RawSetString("weapon_dmg", lua.LNumber(ctx.WeaponDamage))
	atk.RawSetString("facing", lua.LNumber(ctx.AttackerFacing))
	t.RawSetString("attacker", atk)

	def := e.vm.NewTable()
	def.RawSetString("name", lua.LString(ctx.DefenderName))
	def.RawSetString("hp", lua.LNumber(ctx.DefenderHealth))
	def.RawSetString("facing", lua.LNumber(ctx.DefenderFacing))
	t.RawSetString("defender", def)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_melee_damage error", zap.Error(err))
		return BuiltinMeleeDamage(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_melee_damage returned non-number",
			zap.String("type", result.Type().String()))
		return BuiltinMeleeDamage(ctx)
	}
	return int(n)
}

// --- Potion Bridge ---

// PotionHeal calls Lua calc_potion_heal(name, base_heal, hp, max_hp) and
// returns base when the hook is absent or fails.
func (e *Engine) PotionHeal(name string, base, hp, maxHP int) int {
	if e == nil {
		return base
	}
	fn := e.vm.GetGlobal("calc_potion_heal")
	if fn == lua.LNil {
		return base
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(name), lua.LNumber(base), lua.LNumber(hp), lua.LNumber(maxHP)); err != nil {
		e.log.Error("lua calc_potion_heal error", zap.Error(err))
		return base
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := result.(lua.LNumber); ok {
		return int(n)
	}
	return base
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	if e != nil {
		e.vm.Close()
	}
}
