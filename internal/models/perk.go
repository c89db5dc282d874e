package models

import "time"

// ── Perk Catalog ──────────────────────────────────────────

const (
	PerkTypePassive    = "passive"
	PerkTypeConsumable = "consumable"
)

// Perk is one level-gated reward in a course catalog. A nil
// UsesPerSemester means unlimited consumable uses.
type Perk struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	UnlockLevel     int    `json:"unlock_level"`
	Type            string `json:"type"`
	UsesPerSemester *int   `json:"uses_per_semester,omitempty"`
	Enabled         bool   `json:"enabled"`
}

// ── Redemption Workflow ───────────────────────────────────

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestDenied   = "denied"
)

// PerkRequest is a student's pending redemption, resolved exactly once
// by a teacher.
type PerkRequest struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"course_id"`
	StudentID   int64      `json:"student_id"`
	PerkID      string     `json:"perk_id"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type SavePerksRequest struct {
	Perks []Perk `json:"perks"`
}

type PerkCatalogResponse struct {
	CourseID string `json:"course_id"`
	Perks    []Perk `json:"perks"`
}

type PerkRequestsResponse struct {
	Requests []PerkRequest `json:"requests"`
}

type PerkResolveResponse struct {
	Request   PerkRequest `json:"request"`
	UsageNow  int         `json:"usage_now,omitempty"`
}
