package multiplier

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnquest/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored event for a course, expired or not, or nil when
// none exists. Liveness is the service's concern.
func (s *Store) Get(ctx context.Context, courseID string) (*models.MultiplierEvent, error) {
	var ev models.MultiplierEvent
	var label sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT course_id, multiplier, label, started_at, expires_at
		 FROM multiplier_events WHERE course_id = $1`,
		courseID,
	).Scan(&ev.CourseID, &ev.Multiplier, &label, &ev.StartedAt, &ev.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get multiplier event: %w", err)
	}
	ev.Label = label.String
	return &ev, nil
}

// Upsert replaces the course's event. Last writer wins.
func (s *Store) Upsert(ctx context.Context, ev *models.MultiplierEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO multiplier_events (course_id, multiplier, label, started_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (course_id) DO UPDATE SET
		    multiplier = EXCLUDED.multiplier,
		    label = EXCLUDED.label,
		    started_at = EXCLUDED.started_at,
		    expires_at = EXCLUDED.expires_at`,
		ev.CourseID, ev.Multiplier, ev.Label, ev.StartedAt, ev.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert multiplier event: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, courseID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM multiplier_events WHERE course_id = $1`,
		courseID,
	)
	if err != nil {
		return fmt.Errorf("delete multiplier event: %w", err)
	}
	return nil
}
