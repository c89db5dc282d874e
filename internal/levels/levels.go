package levels

import "math"

// BaseXP is the scaling constant for the level threshold curve.
const BaseXP = 50

// MaxLevel is the highest reachable level.
const MaxLevel = 35

// LevelDefinition is one entry of the static level table.
type LevelDefinition struct {
	Level      int    `json:"level"`
	XPRequired int64  `json:"xp_required"`
	Tier       string `json:"tier"`
	Title      string `json:"title"`
}

// LevelInfo describes a student's position within the level table.
type LevelInfo struct {
	Current     LevelDefinition  `json:"current"`
	Next        *LevelDefinition `json:"next,omitempty"`
	XPIntoLevel int64            `json:"xp_into_level"`
	XPForNext   int64            `json:"xp_for_next"`
	Progress    float64          `json:"progress"`
}

// tierNames indexes rank tiers by level/5. Level 35 sits alone in the
// final tier.
var tierNames = []string{
	"Novice", "Apprentice", "Scholar", "Adept",
	"Expert", "Master", "Grandmaster", "Legend",
}

var levelTitles = []string{
	"Beginner", "Learner", "Student", "Dedicated Student", "Quick Study",
	"Bookworm", "Note Taker", "Question Asker", "Problem Solver", "Rising Star",
	"Knowledge Seeker", "Idea Builder", "Deep Thinker", "Pattern Spotter", "Sharp Mind",
	"Skill Collector", "Insight Finder", "Theory Crafter", "Concept Master", "Star Pupil",
	"Mentor in Training", "Tutor", "Guide", "Class Leader", "Honor Student",
	"Scholar Elect", "Thesis Writer", "Researcher", "Innovator", "Trailblazer",
	"Luminary", "Sage", "Virtuoso", "Prodigy", "Living Legend",
}

// table is the immutable 35-entry level table, built once at init.
var table []LevelDefinition

func init() {
	table = make([]LevelDefinition, MaxLevel)
	for i := 0; i < MaxLevel; i++ {
		level := i + 1
		table[i] = LevelDefinition{
			Level:      level,
			XPRequired: XPRequired(level),
			Tier:       RankTier(level),
			Title:      levelTitles[i],
		}
	}
}

// XPRequired returns the total XP threshold for the given level.
// Level 1 costs nothing; above that the curve is BaseXP × level^1.5,
// which is strictly increasing.
func XPRequired(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(math.Round(BaseXP * math.Pow(float64(level), 1.5)))
}

// Table returns a copy of the full level table.
func Table() []LevelDefinition {
	out := make([]LevelDefinition, len(table))
	copy(out, table)
	return out
}

// GetLevelInfo returns the highest level whose threshold is ≤ totalXP,
// plus progress toward the next level. Negative XP is clamped to zero.
// Progress is 1.0 at max level.
func GetLevelInfo(totalXP int64) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	current := table[0]
	for _, def := range table {
		if def.XPRequired <= totalXP {
			current = def
		} else {
			break
		}
	}

	info := LevelInfo{
		Current:     current,
		XPIntoLevel: totalXP - current.XPRequired,
	}

	if current.Level >= MaxLevel {
		info.Progress = 1.0
		return info
	}

	next := table[current.Level] // table is zero-indexed, so this is level+1
	info.Next = &next
	info.XPForNext = next.XPRequired - totalXP
	span := next.XPRequired - current.XPRequired
	if span > 0 {
		info.Progress = float64(info.XPIntoLevel) / float64(span)
	}
	return info
}

// LevelForXP returns just the level number for a total XP amount.
func LevelForXP(totalXP int64) int {
	return GetLevelInfo(totalXP).Current.Level
}

// RankTier maps a level to its named 5-level tier.
func RankTier(level int) string {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	idx := level / 5
	if idx >= len(tierNames) {
		idx = len(tierNames) - 1
	}
	return tierNames[idx]
}

// NextTierMilestone returns the first level of the next tier and the XP
// threshold to enter it. The second return is false at the top tier.
func NextTierMilestone(level int) (LevelDefinition, bool) {
	if level < 1 {
		level = 1
	}
	nextTierStart := (level/5 + 1) * 5
	if nextTierStart > MaxLevel {
		return LevelDefinition{}, false
	}
	return table[nextTierStart-1], true
}
