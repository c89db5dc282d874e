package perks

import (
	"errors"
	"testing"

	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/models"
)

func testCatalog() []models.Perk {
	return []models.Perk{
		{ID: "homework_pass", Name: "Homework Pass", UnlockLevel: 5, Type: models.PerkTypeConsumable, UsesPerSemester: intPtr(2), Enabled: true},
		{ID: "seat_choice", Name: "Pick Your Seat", UnlockLevel: 3, Type: models.PerkTypePassive, Enabled: true},
		{ID: "retake_quiz", Name: "Quiz Retake", UnlockLevel: 10, Type: models.PerkTypeConsumable, UsesPerSemester: intPtr(1), Enabled: false},
		{ID: "tutor_time", Name: "Tutor Time", UnlockLevel: 2, Type: models.PerkTypeConsumable, Enabled: true}, // unlimited
	}
}

func TestCanUsePerk(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name   string
		perkID string
		usage  map[string]int
		want   bool
	}{
		{"consumable with uses left", "homework_pass", map[string]int{"homework_pass": 1}, true},
		{"consumable never used", "homework_pass", map[string]int{}, true},
		{"consumable exhausted", "homework_pass", map[string]int{"homework_pass": 2}, false},
		{"passive perk", "seat_choice", map[string]int{}, false},
		{"disabled perk", "retake_quiz", map[string]int{}, false},
		{"unknown perk", "time_machine", map[string]int{}, false},
		{"unlimited consumable", "tutor_time", map[string]int{"tutor_time": 99}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUsePerk(tt.perkID, tt.usage, catalog); got != tt.want {
				t.Errorf("CanUsePerk(%q, %v) = %v, want %v", tt.perkID, tt.usage, got, tt.want)
			}
		})
	}
}

func TestValidatePerks(t *testing.T) {
	if err := ValidatePerks(DefaultPerks()); err != nil {
		t.Fatalf("default perks should validate: %v", err)
	}

	bad := []struct {
		name  string
		perks []models.Perk
	}{
		{"missing id", []models.Perk{{Name: "X", UnlockLevel: 1, Type: models.PerkTypePassive}}},
		{"duplicate id", []models.Perk{
			{ID: "a", Name: "A", UnlockLevel: 1, Type: models.PerkTypePassive},
			{ID: "a", Name: "A2", UnlockLevel: 2, Type: models.PerkTypePassive},
		}},
		{"unknown type", []models.Perk{{ID: "a", Name: "A", UnlockLevel: 1, Type: "magic"}}},
		{"unlock level zero", []models.Perk{{ID: "a", Name: "A", UnlockLevel: 0, Type: models.PerkTypePassive}}},
		{"unlock level too high", []models.Perk{{ID: "a", Name: "A", UnlockLevel: 36, Type: models.PerkTypePassive}}},
		{"zero uses", []models.Perk{{ID: "a", Name: "A", UnlockLevel: 1, Type: models.PerkTypeConsumable, UsesPerSemester: intPtr(0)}}},
	}

	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePerks(tt.perks)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, apperrors.ErrInvalidPerk) {
				t.Errorf("error %v should wrap ErrInvalidPerk", err)
			}
		})
	}
}

func TestFindPerk(t *testing.T) {
	catalog := testCatalog()
	if FindPerk(catalog, "seat_choice") == nil {
		t.Error("FindPerk should locate an existing perk")
	}
	if FindPerk(catalog, "nope") != nil {
		t.Error("FindPerk should return nil for an unknown id")
	}
}
