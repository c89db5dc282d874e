package perks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Course Settings ─────────────────────────────────────

// GetPerks returns the saved catalog. The second return is false when
// the course has never been saved (caller seeds defaults).
func (s *Store) GetPerks(ctx context.Context, courseID string) ([]models.Perk, bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT perks FROM course_settings WHERE course_id = $1`,
		courseID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get course perks: %w", err)
	}

	var perks []models.Perk
	if err := json.Unmarshal(raw, &perks); err != nil {
		return nil, false, fmt.Errorf("decode course perks: %w", err)
	}
	return perks, true, nil
}

// SavePerks replaces the whole catalog. Last writer wins; usage counters
// live on an independent key and are untouched.
func (s *Store) SavePerks(ctx context.Context, courseID string, perks []models.Perk) error {
	raw, err := json.Marshal(perks)
	if err != nil {
		return fmt.Errorf("encode course perks: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO course_settings (course_id, perks, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (course_id) DO UPDATE SET perks = EXCLUDED.perks, updated_at = NOW()`,
		courseID, raw,
	)
	if err != nil {
		return fmt.Errorf("save course perks: %w", err)
	}
	return nil
}

// GetXPConfig returns the course XP config, zero-valued when the course
// has no settings row or no config saved.
func (s *Store) GetXPConfig(ctx context.Context, courseID string) (models.XPConfig, error) {
	var cfg models.XPConfig
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT xp_config FROM course_settings WHERE course_id = $1`,
		courseID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("get xp config: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("decode xp config: %w", err)
		}
	}
	return cfg, nil
}

func (s *Store) SaveXPConfig(ctx context.Context, courseID string, cfg models.XPConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode xp config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO course_settings (course_id, xp_config, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (course_id) DO UPDATE SET xp_config = EXCLUDED.xp_config, updated_at = NOW()`,
		courseID, raw,
	)
	if err != nil {
		return fmt.Errorf("save xp config: %w", err)
	}
	return nil
}

// ── Usage Counters ──────────────────────────────────────

func (s *Store) GetUsage(ctx context.Context, studentID int64, courseID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT perk_id, uses FROM perk_usage WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("get perk usage: %w", err)
	}
	defer rows.Close()

	usage := make(map[string]int)
	for rows.Next() {
		var perkID string
		var uses int
		if err := rows.Scan(&perkID, &uses); err != nil {
			return nil, fmt.Errorf("scan perk usage: %w", err)
		}
		usage[perkID] = uses
	}
	return usage, rows.Err()
}

// ── Redemption Requests ─────────────────────────────────

func (s *Store) CreateRequest(ctx context.Context, req *models.PerkRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO perk_requests (id, course_id, student_id, perk_id, status, requested_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ID, req.CourseID, req.StudentID, req.PerkID, req.Status, req.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("create perk request: %w", err)
	}
	return nil
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (*models.PerkRequest, error) {
	var req models.PerkRequest
	err := s.db.QueryRowContext(ctx,
		`SELECT id, course_id, student_id, perk_id, status, requested_at, resolved_at
		 FROM perk_requests WHERE id = $1`,
		requestID,
	).Scan(&req.ID, &req.CourseID, &req.StudentID, &req.PerkID, &req.Status, &req.RequestedAt, &req.ResolvedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get perk request: %w", err)
	}
	return &req, nil
}

// ListRequests returns a course's requests, oldest first, optionally
// filtered by status.
func (s *Store) ListRequests(ctx context.Context, courseID, status string) ([]models.PerkRequest, error) {
	query := `SELECT id, course_id, student_id, perk_id, status, requested_at, resolved_at
	          FROM perk_requests WHERE course_id = $1`
	args := []interface{}{courseID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY requested_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list perk requests: %w", err)
	}
	defer rows.Close()

	var requests []models.PerkRequest
	for rows.Next() {
		var req models.PerkRequest
		if err := rows.Scan(&req.ID, &req.CourseID, &req.StudentID, &req.PerkID, &req.Status, &req.RequestedAt, &req.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan perk request: %w", err)
		}
		requests = append(requests, req)
	}
	if requests == nil {
		requests = []models.PerkRequest{}
	}
	return requests, rows.Err()
}

// ApproveRequest flips a pending request to approved and increments the
// student's usage counter in the same transaction; the two effects land
// together or not at all. A request that is missing or already resolved
// leaves the counter untouched.
func (s *Store) ApproveRequest(ctx context.Context, requestID string, now time.Time) (*models.PerkRequest, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin approve tx: %w", err)
	}
	defer tx.Rollback()

	var req models.PerkRequest
	err = tx.QueryRowContext(ctx,
		`UPDATE perk_requests SET status = $2, resolved_at = $3
		 WHERE id = $1 AND status = $4
		 RETURNING id, course_id, student_id, perk_id, status, requested_at, resolved_at`,
		requestID, models.RequestApproved, now, models.RequestPending,
	).Scan(&req.ID, &req.CourseID, &req.StudentID, &req.PerkID, &req.Status, &req.RequestedAt, &req.ResolvedAt)
	if err == sql.ErrNoRows {
		return nil, 0, s.resolveConflict(ctx, requestID)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("approve perk request: %w", err)
	}

	var uses int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO perk_usage (student_id, course_id, perk_id, uses, updated_at)
		 VALUES ($1, $2, $3, 1, NOW())
		 ON CONFLICT (student_id, course_id, perk_id)
		 DO UPDATE SET uses = perk_usage.uses + 1, updated_at = NOW()
		 RETURNING uses`,
		req.StudentID, req.CourseID, req.PerkID,
	).Scan(&uses)
	if err != nil {
		return nil, 0, fmt.Errorf("increment perk usage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit approve tx: %w", err)
	}
	return &req, uses, nil
}

// DenyRequest flips a pending request to denied. No usage effect.
func (s *Store) DenyRequest(ctx context.Context, requestID string, now time.Time) (*models.PerkRequest, error) {
	var req models.PerkRequest
	err := s.db.QueryRowContext(ctx,
		`UPDATE perk_requests SET status = $2, resolved_at = $3
		 WHERE id = $1 AND status = $4
		 RETURNING id, course_id, student_id, perk_id, status, requested_at, resolved_at`,
		requestID, models.RequestDenied, now, models.RequestPending,
	).Scan(&req.ID, &req.CourseID, &req.StudentID, &req.PerkID, &req.Status, &req.RequestedAt, &req.ResolvedAt)
	if err == sql.ErrNoRows {
		return nil, s.resolveConflict(ctx, requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("deny perk request: %w", err)
	}
	return &req, nil
}

// resolveConflict distinguishes a missing request from one already
// resolved, after a status-guarded update matched no rows.
func (s *Store) resolveConflict(ctx context.Context, requestID string) error {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM perk_requests WHERE id = $1`, requestID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return apperrors.ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("check perk request status: %w", err)
	}
	return apperrors.ErrAlreadyResolved
}
