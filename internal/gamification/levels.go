package gamification

import "fmt"

// Level thresholds: 500 XP per level for levels 1-10, 1000 per level for
// 11-25, 2000 per level from 26 on.
const (
	tierOneCapXP = 5000  // end of level 10
	tierTwoCapXP = 20000 // end of level 25
)

// LevelFromXP returns the level reached with the given cumulative XP
func LevelFromXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	switch {
	case totalXP < tierOneCapXP:
		level := totalXP/500 + 1
		if level > 10 {
			level = 10
		}
		return level
	case totalXP < tierTwoCapXP:
		return 10 + (totalXP-tierOneCapXP)/1000 + 1
	default:
		return 25 + (totalXP-tierTwoCapXP)/2000 + 1
	}
}

// XPForLevel returns the cumulative XP needed to reach the given level
func XPForLevel(level int) int {
	switch {
	case level <= 1:
		return 0
	case level <= 10:
		return (level - 1) * 500
	case level <= 25:
		return tierOneCapXP + (level-11)*1000
	default:
		return tierTwoCapXP + (level-26)*2000
	}
}

// LevelProgress describes where a user sits inside their current level
type LevelProgress struct {
	Level           int     `json:"level"`
	XPIntoLevel     int     `json:"xp_into_level"`
	XPForNextLevel  int     `json:"xp_for_next_level"`
	ProgressPercent float64 `json:"progress_percent"`
}

// Progress computes level and intra-level progress for a XP total
func Progress(totalXP int) LevelProgress {
	level := LevelFromXP(totalXP)
	floor := XPForLevel(level)
	ceil := XPForLevel(level + 1)

	into := totalXP - floor
	span := ceil - floor

	pct := 0.0
	if span > 0 {
		pct = float64(into) / float64(span) * 100
		if pct > 100 {
			pct = 100
		}
	}

	return LevelProgress{
		Level:           level,
		XPIntoLevel:     into,
		XPForNextLevel:  span,
		ProgressPercent: pct,
	}
}

// LevelRewards returns the cosmetic rewards unlocked at a level, if any
func LevelRewards(level int) []string {
	var rewards []string
	if level%10 == 0 {
		rewards = append(rewards, "New title unlocked!")
	}
	if level%5 == 0 {
		rewards = append(rewards, "New avatar frame unlocked!")
	}
	if level == 25 {
		rewards = append(rewards, "Study Group Creator feature unlocked!")
	}
	if level == 50 {
		rewards = append(rewards, "Course Champion status unlocked!")
	}
	return rewards
}

// LevelUpMessage formats the activity-feed message for a level up
func LevelUpMessage(level int) string {
	return fmt.Sprintf("Congratulations! You reached Level %d!", level)
}
