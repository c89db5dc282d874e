package progression

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/learnquest/backend/internal/models"
	"github.com/learnquest/backend/internal/multiplier"
	"github.com/learnquest/backend/internal/streak"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const progressColumns = `student_id, course_id, total_xp, current_streak, longest_streak,
	streak_freezes, lessons_completed, total_answered, total_correct, badges,
	last_xp_source, last_xp_amount, last_xp_at, created_at, updated_at`

// Get returns the progress row, or nil when the student has no record
// yet for that course. Callers render a zeroed default in that case.
func (s *Store) Get(ctx context.Context, studentID int64, courseID string) (*models.StudentProgress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM student_progress WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID)
	rec, err := scanProgress(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return rec, nil
}

// CurrentStreak computes the live streak from the activity history
// without touching the progress row. Used for previews, where the
// stored value may be stale relative to today.
func (s *Store) CurrentStreak(ctx context.Context, studentID int64, courseID string) (int, error) {
	dates, err := s.activityDates(ctx, s.db, studentID, courseID)
	if err != nil {
		return 0, err
	}
	return streak.Count(dates, time.Now().UTC()), nil
}

// ApplyAward runs the whole award as one transaction: ensure the row
// exists, lock it, record today's activity, recompute the streak from
// history, apply the multiplier and add the XP. Two concurrent awards
// for the same student serialize on the row lock, so the final total is
// always the sum of both.
func (s *Store) ApplyAward(ctx context.Context, studentID int64, courseID string, base int, eventMult float64, cfg models.MultiplierConfig, source string, now time.Time) (*models.AwardXPResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin award tx: %w", err)
	}
	defer tx.Rollback()

	rec, err := s.lockProgress(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO activity_days (student_id, course_id, activity_date) VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING`,
		studentID, courseID, now.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("record activity day: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("record activity day: %w", err)
	}
	newDay := inserted == 1

	dates, err := s.activityDates(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	advanceStreak(rec, dates, newDay, now)

	mult := eventMult
	if cfg.ApplyStreakOnAward {
		mult *= multiplier.StreakMultiplier(cfg, rec.CurrentStreak)
	}
	awarded := finalAmount(base, mult)

	rec.TotalXP += int64(awarded)
	rec.LastXPSource = source
	rec.LastXPAmount = awarded
	rec.LastXPAt = &now

	_, err = tx.ExecContext(ctx,
		`UPDATE student_progress
		 SET total_xp = $3, current_streak = $4, longest_streak = $5, streak_freezes = $6,
		     last_xp_source = $7, last_xp_amount = $8, last_xp_at = $9, updated_at = NOW()
		 WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID, rec.TotalXP, rec.CurrentStreak, rec.LongestStreak,
		rec.StreakFreezes, rec.LastXPSource, rec.LastXPAmount, rec.LastXPAt)
	if err != nil {
		return nil, fmt.Errorf("save award: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit award: %w", err)
	}

	return &models.AwardXPResponse{
		NewTotal:      rec.TotalXP,
		Awarded:       awarded,
		Multiplier:    mult,
		CurrentStreak: rec.CurrentStreak,
	}, nil
}

// MergeStats applies a partial stats merge under the row lock,
// refreshes the streak from history, and re-evaluates badges against
// the merged record. The stored badge set only grows.
func (s *Store) MergeStats(ctx context.Context, studentID int64, courseID string, update models.StatsUpdate, level func(totalXP int64) int, now time.Time) (*models.StudentProgress, []string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin stats tx: %w", err)
	}
	defer tx.Rollback()

	rec, err := s.lockProgress(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, nil, err
	}

	if update.LessonsCompleted != nil {
		rec.LessonsCompleted = *update.LessonsCompleted
	}
	if update.TotalAnswered != nil {
		rec.TotalAnswered = *update.TotalAnswered
	}
	if update.TotalCorrect != nil {
		rec.TotalCorrect = *update.TotalCorrect
	}

	dates, err := s.activityDates(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, nil, err
	}
	advanceStreak(rec, dates, false, now)

	evaluated := EvaluateBadges(rec, level(rec.TotalXP))
	all, newly := MergeBadges(rec.Badges, evaluated)
	rec.Badges = all

	badgeJSON, err := json.Marshal(rec.Badges)
	if err != nil {
		return nil, nil, fmt.Errorf("encode badges: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE student_progress
		 SET lessons_completed = $3, total_answered = $4, total_correct = $5,
		     current_streak = $6, longest_streak = $7, badges = $8, updated_at = NOW()
		 WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID, rec.LessonsCompleted, rec.TotalAnswered, rec.TotalCorrect,
		rec.CurrentStreak, rec.LongestStreak, badgeJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("save stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit stats: %w", err)
	}
	return rec, newly, nil
}

// lockProgress ensures the row exists and returns it locked for the
// duration of the transaction.
func (s *Store) lockProgress(ctx context.Context, tx *sql.Tx, studentID int64, courseID string) (*models.StudentProgress, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO student_progress (student_id, course_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("ensure progress row: %w", err)
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM student_progress
		 WHERE student_id = $1 AND course_id = $2 FOR UPDATE`,
		studentID, courseID)
	rec, err := scanProgress(row)
	if err != nil {
		return nil, fmt.Errorf("lock progress row: %w", err)
	}
	return rec, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (s *Store) activityDates(ctx context.Context, q querier, studentID int64, courseID string) ([]time.Time, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT activity_date FROM activity_days
		 WHERE student_id = $1 AND course_id = $2 ORDER BY activity_date DESC`,
		studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("load activity days: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan activity day: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProgress(row rowScanner) (*models.StudentProgress, error) {
	var rec models.StudentProgress
	var badgeJSON []byte
	var source sql.NullString
	var lastAt sql.NullTime
	err := row.Scan(&rec.StudentID, &rec.CourseID, &rec.TotalXP, &rec.CurrentStreak,
		&rec.LongestStreak, &rec.StreakFreezes, &rec.LessonsCompleted, &rec.TotalAnswered,
		&rec.TotalCorrect, &badgeJSON, &source, &rec.LastXPAmount, &lastAt,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if source.Valid {
		rec.LastXPSource = source.String
	}
	if lastAt.Valid {
		t := lastAt.Time
		rec.LastXPAt = &t
	}
	if len(badgeJSON) > 0 {
		if err := json.Unmarshal(badgeJSON, &rec.Badges); err != nil {
			return nil, fmt.Errorf("decode badges: %w", err)
		}
	}
	if rec.Badges == nil {
		rec.Badges = []string{}
	}
	return &rec, nil
}
