package levels

import "testing"

func TestXPRequiredKnownValues(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{1, 0},
		{2, 141},   // round(50 × 2^1.5)
		{10, 1581}, // round(50 × 10^1.5)
		{35, 10353},
	}

	for _, tt := range tests {
		got := XPRequired(tt.level)
		if got != tt.want {
			t.Errorf("XPRequired(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestXPRequiredStrictlyIncreasing(t *testing.T) {
	for level := 2; level <= MaxLevel; level++ {
		if XPRequired(level) <= XPRequired(level - 1) {
			t.Errorf("XPRequired(%d) = %d not greater than XPRequired(%d) = %d",
				level, XPRequired(level), level-1, XPRequired(level-1))
		}
	}
}

func TestGetLevelInfoBounds(t *testing.T) {
	for totalXP := int64(0); totalXP <= 11000; totalXP += 37 {
		info := GetLevelInfo(totalXP)
		if info.Current.XPRequired > totalXP {
			t.Fatalf("GetLevelInfo(%d): current threshold %d exceeds total", totalXP, info.Current.XPRequired)
		}
		if info.Next != nil && info.Next.XPRequired <= totalXP {
			t.Fatalf("GetLevelInfo(%d): next threshold %d not above total", totalXP, info.Next.XPRequired)
		}
		if info.Next == nil && info.Current.Level != MaxLevel {
			t.Fatalf("GetLevelInfo(%d): nil next below max level (%d)", totalXP, info.Current.Level)
		}
	}
}

func TestGetLevelInfoRoundTrip(t *testing.T) {
	// Exactly hitting a threshold lands on that level.
	for level := 1; level <= MaxLevel; level++ {
		info := GetLevelInfo(XPRequired(level))
		if info.Current.Level != level {
			t.Errorf("GetLevelInfo(XPRequired(%d)).Current.Level = %d, want %d",
				level, info.Current.Level, level)
		}
	}
}

func TestGetLevelInfoNegativeClamps(t *testing.T) {
	info := GetLevelInfo(-500)
	if info.Current.Level != 1 {
		t.Errorf("GetLevelInfo(-500).Current.Level = %d, want 1", info.Current.Level)
	}
	if info.XPIntoLevel != 0 {
		t.Errorf("GetLevelInfo(-500).XPIntoLevel = %d, want 0", info.XPIntoLevel)
	}
}

func TestGetLevelInfoMaxLevel(t *testing.T) {
	info := GetLevelInfo(XPRequired(MaxLevel) + 9999)
	if info.Current.Level != MaxLevel {
		t.Errorf("Current.Level = %d, want %d", info.Current.Level, MaxLevel)
	}
	if info.Next != nil {
		t.Errorf("Next = %+v, want nil at max level", info.Next)
	}
	if info.Progress != 1.0 {
		t.Errorf("Progress = %f, want 1.0 at max level", info.Progress)
	}
}

func TestRankTier(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Novice"},
		{4, "Novice"},
		{5, "Apprentice"},
		{9, "Apprentice"},
		{10, "Scholar"},
		{30, "Grandmaster"},
		{34, "Grandmaster"},
		{35, "Legend"}, // max level sits alone in the final tier
	}

	for _, tt := range tests {
		if got := RankTier(tt.level); got != tt.want {
			t.Errorf("RankTier(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNextTierMilestone(t *testing.T) {
	def, ok := NextTierMilestone(3)
	if !ok || def.Level != 5 {
		t.Errorf("NextTierMilestone(3) = %+v, %v; want level 5", def, ok)
	}
	if def.XPRequired != XPRequired(5) {
		t.Errorf("milestone threshold = %d, want %d", def.XPRequired, XPRequired(5))
	}

	def, ok = NextTierMilestone(34)
	if !ok || def.Level != 35 {
		t.Errorf("NextTierMilestone(34) = %+v, %v; want level 35", def, ok)
	}

	if _, ok := NextTierMilestone(35); ok {
		t.Error("NextTierMilestone(35) should report no further tier")
	}
}

func TestTableIsCopy(t *testing.T) {
	a := Table()
	a[0].XPRequired = 999
	if Table()[0].XPRequired == 999 {
		t.Error("Table() must return a copy, not the backing array")
	}
}
