package engine

import (
	"math"

	"focusquest/internal/storage"
)

const (
	// BaseXPToNextLevel is the level-1 threshold; each level-up multiplies
	// the threshold by LevelGrowthFactor (floored).
	BaseXPToNextLevel = 100
	LevelGrowthFactor = 1.5

	// FallbackTaskXP is awarded when a stored difficulty is unrecognized.
	FallbackTaskXP = 10

	// FocusBlockMinutes worth of focus time earns FocusBlockXP; partial
	// blocks earn nothing.
	FocusBlockMinutes = 25
	FocusBlockXP      = 10

	DefaultEnergy = 75
	DefaultName   = "Explorer"
)

var difficultyXP = map[Difficulty]int{
	DifficultyEasy:   10,
	DifficultyMedium: 25,
	DifficultyHard:   50,
	DifficultyEpic:   100,
}

// XPForDifficulty returns the completion reward for a difficulty. Unknown
// values fall back to FallbackTaskXP rather than erroring, matching how
// stored records are treated.
func XPForDifficulty(d Difficulty) int {
	if xp, ok := difficultyXP[d]; ok {
		return xp
	}
	return FallbackTaskXP
}

// ApplyXP adds amount to the user's XP and resolves level-ups until the
// remainder fits under the current threshold. The loop terminates because
// the threshold strictly grows each iteration. Post-condition:
// 0 <= XP < XPToNextLevel.
func ApplyXP(u *storage.User, amount int) {
	u.XP += amount
	for u.XP >= u.XPToNextLevel {
		u.XP -= u.XPToNextLevel
		u.Level++
		u.XPToNextLevel = int(math.Floor(float64(u.XPToNextLevel) * LevelGrowthFactor))
	}
}

// FocusBonusXP converts completed focus minutes into bonus XP. Only full
// 25-minute blocks count: FocusBonusXP(24) == 0, FocusBonusXP(60) == 20.
func FocusBonusXP(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes / FocusBlockMinutes) * FocusBlockXP
}

// DefaultUser is the profile seeded on an owner's first access.
func DefaultUser(owner Owner) *storage.User {
	name := owner.Name
	if name == "" {
		name = DefaultName
	}
	return &storage.User{
		OwnerID:       owner.ID,
		Name:          name,
		Level:         1,
		XP:            0,
		XPToNextLevel: BaseXPToNextLevel,
		Energy:        DefaultEnergy,
	}
}
