package system

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retrorpg/roguecore/internal/core/event"
	coresys "github.com/retrorpg/roguecore/internal/core/system"
	"github.com/retrorpg/roguecore/internal/persist"
	"github.com/retrorpg/roguecore/internal/world"
	"go.uber.org/zap"
)

// JournalWriter stores journal batches; persist.JournalRepo implements it.
type JournalWriter interface {
	WriteBatch(ctx context.Context, id uuid.UUID, entries []persist.JournalEntry) error
}

// JournalSystem records player-facing messages and combat events and
// writes them out in batches every interval ticks. Phase 6 (Persist).
type JournalSystem struct {
	writer    JournalWriter
	sessionID uuid.UUID
	log       *zap.Logger

	buf       []persist.JournalEntry
	unstamped int // entries at the tail still waiting for a timestamp
	seq       int64
	limit     int
	tickCount int
	interval  int
}

func NewJournalSystem(writer JournalWriter, sessionID uuid.UUID, bus *event.Bus, intervalTicks, bufferSize int, log *zap.Logger) *JournalSystem {
	if intervalTicks <= 0 {
		intervalTicks = 1
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	s := &JournalSystem{
		writer:    writer,
		sessionID: sessionID,
		log:       log,
		buf:       make([]persist.JournalEntry, 0, bufferSize),
		limit:     bufferSize,
		interval:  intervalTicks,
	}
	s.subscribe(bus)
	return s
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

// Add implements world.Sink.
func (s *JournalSystem) Add(text string, _ world.Color) {
	s.record(persist.KindMessage, text, 0)
}

func (s *JournalSystem) subscribe(bus *event.Bus) {
	if bus == nil {
		return
	}
	event.Subscribe(bus, func(e event.HitResolved) {
		if e.Blocked {
			s.record(persist.KindBlock, fmt.Sprintf("fight %d: %d blocked by %d", e.FightID, e.Attacker, e.Defender), 0)
			return
		}
		s.record(persist.KindHit, fmt.Sprintf("fight %d: %d hit %d", e.FightID, e.Attacker, e.Defender), e.Damage)
	})
	event.Subscribe(bus, func(e event.EntityDied) {
		s.record(persist.KindDeath, fmt.Sprintf("%c died at %d,%d on map %d", e.Symbol, e.X, e.Y, e.MapID), int32(e.Dropped))
	})
	event.Subscribe(bus, func(e event.EncounterStarted) {
		s.record(persist.KindFightStarted, fmt.Sprintf("fight %d", e.FightID), int32(len(e.Members)))
	})
	event.Subscribe(bus, func(e event.EncounterEnded) {
		s.record(persist.KindFightEnded, fmt.Sprintf("fight %d", e.FightID), 0)
	})
}

func (s *JournalSystem) record(kind, text string, amount int32) {
	s.seq++
	s.buf = append(s.buf, persist.JournalEntry{Seq: s.seq, Kind: kind, Text: text, Amount: amount})
	s.unstamped++
}

func (s *JournalSystem) Update(now time.Duration) {
	for i := len(s.buf) - s.unstamped; i < len(s.buf); i++ {
		s.buf[i].At = now
	}
	s.unstamped = 0

	s.tickCount++
	if s.tickCount < s.interval && len(s.buf) < s.limit {
		return
	}
	s.tickCount = 0
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Flush(ctx); err != nil {
		s.log.Error("journal flush failed", zap.Error(err))
	}
}

// Flush writes every buffered entry. The buffer is cleared even on error so
// a dead database cannot grow it without bound. Called on shutdown.
func (s *JournalSystem) Flush(ctx context.Context) error {
	if len(s.buf) == 0 {
		return nil
	}
	batch := s.buf
	s.buf = make([]persist.JournalEntry, 0, s.limit)
	s.unstamped = 0
	if err := s.writer.WriteBatch(ctx, s.sessionID, batch); err != nil {
		return fmt.Errorf("write %d journal entries: %w", len(batch), err)
	}
	s.log.Debug("journal flushed", zap.Int("entries", len(batch)))
	return nil
}

// Buffered returns how many entries wait for the next flush.
func (s *JournalSystem) Buffered() int { return len(s.buf) }
