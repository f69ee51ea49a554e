package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{-50, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{4999, 10},
		{5000, 11}, // tier two starts, 1000 XP per level
		{5999, 11},
		{6000, 12},
		{19999, 25},
		{20000, 26}, // tier three, 2000 XP per level
		{21999, 26},
		{22000, 27},
		{40000, 36},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromXP(tt.totalXP), "LevelFromXP(%d)", tt.totalXP)
	}
}

func TestXPForLevelRoundTrips(t *testing.T) {
	for level := 1; level <= 40; level++ {
		floor := XPForLevel(level)
		assert.Equal(t, level, LevelFromXP(floor), "floor of level %d", level)
		if level > 1 {
			assert.Equal(t, level-1, LevelFromXP(floor-1), "just below level %d", level)
		}
	}
}

func TestProgress(t *testing.T) {
	p := Progress(750)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 250, p.XPIntoLevel)
	assert.Equal(t, 500, p.XPForNextLevel)
	assert.InDelta(t, 50.0, p.ProgressPercent, 1e-9)

	p = Progress(0)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XPIntoLevel)
	assert.InDelta(t, 0.0, p.ProgressPercent, 1e-9)

	// Tier boundary: level 10 spans 4500..5000
	p = Progress(4999)
	assert.Equal(t, 10, p.Level)
	assert.Equal(t, 499, p.XPIntoLevel)
	assert.Equal(t, 500, p.XPForNextLevel)
}

func TestLevelRewards(t *testing.T) {
	assert.Empty(t, LevelRewards(3))
	assert.Len(t, LevelRewards(5), 1)
	assert.Len(t, LevelRewards(10), 2) // title and frame
	assert.Contains(t, LevelRewards(25), "Study Group Creator feature unlocked!")
	assert.Contains(t, LevelRewards(50), "Course Champion status unlocked!")
}
