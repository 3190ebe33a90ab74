package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Journal entry kinds.
const (
	KindMessage      = "message"
	KindHit          = "hit"
	KindBlock        = "block"
	KindDeath        = "death"
	KindFightStarted = "fight_started"
	KindFightEnded   = "fight_ended"
)

// JournalEntry is one append-only combat journal row.
type JournalEntry struct {
	Seq    int64
	At     time.Duration // simulation clock
	Kind   string
	Text   string
	Amount int32 // damage for hits, dropped item count for deaths
}

// JournalRepo writes a session's combat journal. Nothing is ever read back
// into a running game.
type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// CreateSession registers a new play-through.
func (r *JournalRepo) CreateSession(ctx context.Context, id uuid.UUID, seed int64, startedAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO game_session (id, seed, started_at) VALUES ($1, $2, $3)`,
		id.String(), seed, startedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// WriteBatch atomically writes a batch of journal entries in a single
// transaction.
func (r *JournalRepo) WriteBatch(ctx context.Context, id uuid.UUID, entries []JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	sid := id.String()
	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO combat_journal (session_id, seq, at_ms, kind, text, amount)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			sid, e.Seq, e.At.Milliseconds(), e.Kind, e.Text, e.Amount,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}
	return nil
}

// EndSession stamps the outcome of a finished play-through.
func (r *JournalRepo) EndSession(ctx context.Context, id uuid.UUID, outcome string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE game_session SET ended_at = now(), outcome = $2 WHERE id = $1`,
		id.String(), outcome,
	)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
