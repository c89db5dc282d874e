package perks

import (
	"fmt"

	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/levels"
	"github.com/learnquest/backend/internal/models"
)

func intPtr(n int) *int { return &n }

// DefaultPerks seeds a course catalog that has never been saved.
func DefaultPerks() []models.Perk {
	return []models.Perk{
		{ID: "seat_choice", Name: "Pick Your Seat", Description: "Choose where you sit for the week", UnlockLevel: 3, Type: models.PerkTypePassive, Enabled: true},
		{ID: "homework_pass", Name: "Homework Pass", Description: "Skip one homework assignment", UnlockLevel: 5, Type: models.PerkTypeConsumable, UsesPerSemester: intPtr(2), Enabled: true},
		{ID: "music_in_class", Name: "Headphones On", Description: "Listen to music during solo work", UnlockLevel: 8, Type: models.PerkTypePassive, Enabled: true},
		{ID: "retake_quiz", Name: "Quiz Retake", Description: "Retake one quiz for a better grade", UnlockLevel: 10, Type: models.PerkTypeConsumable, UsesPerSemester: intPtr(1), Enabled: true},
		{ID: "extra_credit", Name: "Extra Credit Shot", Description: "Attempt a bonus problem for extra credit", UnlockLevel: 15, Type: models.PerkTypeConsumable, UsesPerSemester: intPtr(3), Enabled: true},
		{ID: "early_lunch", Name: "Early Lunch Pass", Description: "Leave two minutes before the bell", UnlockLevel: 20, Type: models.PerkTypePassive, Enabled: true},
	}
}

// CanUsePerk reports whether a consumable perk has uses left. Passive,
// disabled, and unknown perks are never "usable" in the redemption
// sense; a nil UsesPerSemester means unlimited.
func CanUsePerk(perkID string, usage map[string]int, catalog []models.Perk) bool {
	perk := FindPerk(catalog, perkID)
	if perk == nil || !perk.Enabled || perk.Type != models.PerkTypeConsumable {
		return false
	}
	if perk.UsesPerSemester == nil {
		return true
	}
	return usage[perkID] < *perk.UsesPerSemester
}

// FindPerk returns the catalog entry with the given id, or nil.
func FindPerk(catalog []models.Perk, perkID string) *models.Perk {
	for i := range catalog {
		if catalog[i].ID == perkID {
			return &catalog[i]
		}
	}
	return nil
}

// ValidatePerks checks a catalog before a whole-list save.
func ValidatePerks(perks []models.Perk) error {
	seen := make(map[string]bool, len(perks))
	for _, p := range perks {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("%w: id and name are required", apperrors.ErrInvalidPerk)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate id %q", apperrors.ErrInvalidPerk, p.ID)
		}
		seen[p.ID] = true
		if p.Type != models.PerkTypePassive && p.Type != models.PerkTypeConsumable {
			return fmt.Errorf("%w: %q has unknown type %q", apperrors.ErrInvalidPerk, p.ID, p.Type)
		}
		if p.UnlockLevel < 1 || p.UnlockLevel > levels.MaxLevel {
			return fmt.Errorf("%w: %q unlock level must be 1..%d", apperrors.ErrInvalidPerk, p.ID, levels.MaxLevel)
		}
		if p.UsesPerSemester != nil && *p.UsesPerSemester < 1 {
			return fmt.Errorf("%w: %q uses per semester must be positive", apperrors.ErrInvalidPerk, p.ID)
		}
	}
	return nil
}
