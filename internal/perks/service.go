package perks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// GetCoursePerks returns the course catalog, seeding the defaults on
// first access.
func (s *Service) GetCoursePerks(ctx context.Context, courseID string) ([]models.Perk, error) {
	perks, found, err := s.store.GetPerks(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if found {
		return perks, nil
	}

	defaults := DefaultPerks()
	if err := s.store.SavePerks(ctx, courseID, defaults); err != nil {
		return nil, fmt.Errorf("seed default perks: %w", err)
	}
	return defaults, nil
}

// SaveCoursePerks validates and replaces the whole catalog.
func (s *Service) SaveCoursePerks(ctx context.Context, courseID string, perks []models.Perk) error {
	if err := ValidatePerks(perks); err != nil {
		return err
	}
	return s.store.SavePerks(ctx, courseID, perks)
}

func (s *Service) GetXPConfig(ctx context.Context, courseID string) (models.XPConfig, error) {
	return s.store.GetXPConfig(ctx, courseID)
}

func (s *Service) SaveXPConfig(ctx context.Context, courseID string, cfg models.XPConfig) error {
	return s.store.SaveXPConfig(ctx, courseID, cfg)
}

func (s *Service) GetUsage(ctx context.Context, studentID int64, courseID string) (map[string]int, error) {
	return s.store.GetUsage(ctx, studentID, courseID)
}

// RequestRedemption creates a pending request. The perk must exist in
// the catalog; level and usage eligibility are NOT re-checked here — the
// teacher sees the request and decides.
func (s *Service) RequestRedemption(ctx context.Context, courseID string, studentID int64, perkID string) (*models.PerkRequest, error) {
	catalog, err := s.GetCoursePerks(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if FindPerk(catalog, perkID) == nil {
		return nil, apperrors.ErrUnknownPerk
	}

	req := &models.PerkRequest{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		StudentID:   studentID,
		PerkID:      perkID,
		Status:      models.RequestPending,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) ListRequests(ctx context.Context, courseID, status string) ([]models.PerkRequest, error) {
	return s.store.ListRequests(ctx, courseID, status)
}

// ApproveRedemption resolves a pending request and consumes one use.
// Approving an already-resolved request returns ErrAlreadyResolved and
// never double-counts.
func (s *Service) ApproveRedemption(ctx context.Context, requestID string) (*models.PerkResolveResponse, error) {
	req, uses, err := s.store.ApproveRequest(ctx, requestID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &models.PerkResolveResponse{Request: *req, UsageNow: uses}, nil
}

func (s *Service) DenyRedemption(ctx context.Context, requestID string) (*models.PerkResolveResponse, error) {
	req, err := s.store.DenyRequest(ctx, requestID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &models.PerkResolveResponse{Request: *req}, nil
}
