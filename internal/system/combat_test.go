package system

import (
	"testing"
	"time"

	"github.com/retrorpg/roguecore/internal/world"
)

func TestFormEncounter(t *testing.T) {
	env := newSimEnv(t)
	goblin := env.spawn(t, world.ActorHostile, 'G', 7, 5)
	ghost := env.spawn(t, world.ActorHostile, '?', 14, 5)
	human := env.spawn(t, world.ActorPassive, 'H', 6, 6)
	far := env.spawn(t, world.ActorHostile, 'G', 17, 5)

	env.player.InFight = true
	env.combat.Update(time.Second)

	f := env.deps.World.Encounters.FightOf(env.player.ID)
	if f == nil {
		t.Fatal("no encounter formed")
	}
	if f.Members[0] != env.player.ID {
		t.Errorf("first member %v, want player", f.Members[0])
	}
	for _, e := range []*world.Entity{goblin, ghost} {
		if !f.Has(e.ID) || e.FightID != f.ID || !e.InFight {
			t.Errorf("%c not enrolled", e.Symbol)
		}
	}
	if f.Has(human.ID) {
		t.Error("passive NPC joined")
	}
	if f.Has(far.ID) {
		t.Error("NPC beyond join distance joined")
	}
	if env.player.Target != goblin.ID {
		t.Errorf("auto-target = %v, want nearest goblin", env.player.Target)
	}
	if !env.hasMessage("Combat started!") || !env.hasMessage("Auto-target: G") {
		t.Errorf("messages = %q", env.messages())
	}
	if env.deps.Bus.Pending() != 1 {
		t.Errorf("bus pending = %d, want EncounterStarted", env.deps.Bus.Pending())
	}
}

func TestFormEncounterKeepsValidTarget(t *testing.T) {
	env := newSimEnv(t)
	env.spawn(t, world.ActorHostile, 'G', 6, 5)
	ghost := env.spawn(t, world.ActorHostile, '?', 9, 5)
	env.player.Target = ghost.ID
	env.player.InFight = true

	env.combat.Update(time.Second)
	if env.player.Target != ghost.ID {
		t.Error("valid target replaced")
	}
	if env.hasMessage("Auto-target: G") {
		t.Error("auto-target announced with a valid target")
	}
}

func TestFormEncounterIncludesProvokedVillager(t *testing.T) {
	env := newSimEnv(t)
	h := env.spawn(t, world.ActorPassive, 'H', 8, 8)
	h.ApplyDamage(1, env.player.ID)
	if !h.IsHostile() || h.Target != env.player.ID {
		t.Fatal("struck villager did not turn on the player")
	}
	env.player.InFight = true

	env.combat.Update(time.Second)
	f := env.deps.World.Encounters.FightOf(env.player.ID)
	if f == nil || !f.Has(h.ID) {
		t.Fatal("provoked NPC not enrolled")
	}
}

func TestFormEncounterWithoutHostilesClearsFlag(t *testing.T) {
	env := newSimEnv(t)
	env.spawn(t, world.ActorPassive, 'H', 6, 5)
	env.player.InFight = true

	env.combat.Update(time.Second)
	if env.player.InFight {
		t.Error("in-fight flag kept with nobody to fight")
	}
	if env.deps.World.Encounters.Count() != 0 {
		t.Error("empty encounter created")
	}
}

func TestPlayerAttemptHit(t *testing.T) {
	env := newSimEnv(t)
	goblin := env.spawn(t, world.ActorHostile, 'G', 8, 5)

	env.combat.PlayerAttemptHit(time.Second)
	if env.log.Len() != 0 || env.m.Pending() != 0 {
		t.Fatal("swing outside an encounter")
	}

	env.fight(goblin)
	env.combat.PlayerAttemptHit(time.Second)
	if got, _ := env.log.Last(); got.Text != "No target!" {
		t.Errorf("message = %q, want No target!", got.Text)
	}

	env.player.Target = goblin.ID
	env.combat.PlayerAttemptHit(time.Second)
	if got, _ := env.log.Last(); got.Text != "Target too far!" {
		t.Errorf("message = %q, want Target too far!", got.Text)
	}

	env.m.MoveEntity(goblin, 6, 6)
	env.combat.PlayerAttemptHit(time.Second)
	if got, _ := env.log.Last(); got.Text != "You swing..." {
		t.Errorf("message = %q, want You swing...", got.Text)
	}
	if env.m.Pending() != 1 || env.player.LastHit != time.Second {
		t.Fatalf("pending = %d, last hit = %v", env.m.Pending(), env.player.LastHit)
	}

	env.combat.PlayerAttemptHit(time.Second + 100*time.Millisecond)
	if env.m.Pending() != 1 {
		t.Error("swing queued inside hit cooldown")
	}
	env.combat.PlayerAttemptHit(time.Second + 201*time.Millisecond)
	if env.m.Pending() != 2 {
		t.Error("swing refused after hit cooldown")
	}
}

func TestHostileAIGlobalCooldown(t *testing.T) {
	env := newSimEnv(t)
	env.deps.Config.Combat.HitChance = env.deps.Config.Combat.ChanceRollMax + 1
	env.deps.Config.Combat.DirectionChangeChance = 0
	a := env.spawn(t, world.ActorHostile, 'G', 6, 5)
	b := env.spawn(t, world.ActorHostile, 'G', 4, 5)
	f := env.fight(a, b)

	env.combat.Update(3 * time.Second)
	if env.m.Pending() != 1 {
		t.Fatalf("pending = %d, want one hostile swing", env.m.Pending())
	}
	if a.LastHit != 3*time.Second || b.LastHit != 0 {
		t.Errorf("first member should swing first: a=%v b=%v", a.LastHit, b.LastHit)
	}
	if want := 3*time.Second + 1200*time.Millisecond; f.NextEnemyAttack != want {
		t.Errorf("next enemy attack = %v, want %v", f.NextEnemyAttack, want)
	}

	env.combat.Update(3500 * time.Millisecond)
	if env.m.Pending() != 1 {
		t.Error("second swing inside the shared cooldown")
	}

	env.combat.Update(4300 * time.Millisecond)
	if env.m.Pending() != 2 || b.LastHit != 4300*time.Millisecond {
		t.Errorf("pending = %d, b last hit = %v", env.m.Pending(), b.LastHit)
	}
}

func TestHostileAIRequiresAdjacentTarget(t *testing.T) {
	env := newSimEnv(t)
	env.deps.Config.Combat.HitChance = env.deps.Config.Combat.ChanceRollMax + 1
	g := env.spawn(t, world.ActorHostile, 'G', 8, 5)
	env.fight(g)

	env.combat.Update(3 * time.Second)
	if env.m.Pending() != 0 {
		t.Error("swing from two tiles away")
	}
}

func TestHostileAIZeroChanceNeverSwings(t *testing.T) {
	env := newSimEnv(t)
	env.deps.Config.Combat.HitChance = 0
	g := env.spawn(t, world.ActorHostile, 'G', 6, 5)
	env.fight(g)

	for i := 3; i < 30; i++ {
		env.combat.Update(time.Duration(i) * time.Second)
	}
	if env.m.Pending() != 0 {
		t.Error("swing with zero hit chance")
	}
}

func TestPruneDissolvesFight(t *testing.T) {
	env := newSimEnv(t)
	g := env.spawn(t, world.ActorHostile, 'G', 6, 5)
	f := env.fight(g)

	env.m.MoveEntity(g, 16, 5)
	env.combat.Update(time.Second)
	if env.deps.World.Encounters.Get(f.ID) != nil {
		t.Fatal("fight survived pruning its last enemy")
	}
	if env.player.InFight || g.InFight || !g.Target.IsZero() {
		t.Error("fight state not cleared")
	}
}

func TestJoinFight(t *testing.T) {
	env := newSimEnv(t)
	a := env.spawn(t, world.ActorHostile, 'G', 6, 5)
	f := env.fight(a)
	b := env.spawn(t, world.ActorHostile, '?', 7, 7)

	if !env.combat.JoinFight(b, env.player) {
		t.Fatal("join refused")
	}
	if !f.Has(b.ID) || b.FightID != f.ID {
		t.Error("late NPC not enrolled")
	}
}
