package event

import "testing"

func TestEmitDeliveredNextDispatch(t *testing.T) {
	b := NewBus()
	var got []int32
	Subscribe(b, func(e EncounterEnded) { got = append(got, e.FightID) })

	Emit(b, EncounterEnded{FightID: 1})
	Emit(b, EncounterEnded{FightID: 2})

	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("delivered before swap: %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}

	// front buffer drained; a second dispatch delivers nothing new
	b.DispatchAll()
	if len(got) != 2 {
		t.Errorf("redelivered: %v", got)
	}
}

func TestEmitOnNilBusIsNoop(t *testing.T) {
	var b *Bus
	Emit(b, EncounterEnded{FightID: 1})
}

func TestPendingCountsBackBuffer(t *testing.T) {
	b := NewBus()
	Emit(b, HitResolved{Damage: 3})
	Emit(b, EntityDied{X: 1})
	if b.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", b.Pending())
	}
	b.SwapBuffers()
	if b.Pending() != 0 {
		t.Errorf("Pending after swap = %d, want 0", b.Pending())
	}
}
