package progression

import "math"

// DefaultXPPerLevel is the canonical threshold step: level N needs N*1000 xp
const DefaultXPPerLevel = 1000

// LevelPolicy decides when a profile levels up
type LevelPolicy struct {
	XPPerLevel int
	// SubtractOnLevelUp removes the threshold from xp on every level gained.
	// When false xp accumulates and is compared against the raw threshold.
	SubtractOnLevelUp bool
}

// DefaultLevelPolicy subtracts the threshold, so xp reads as progress into the current level
func DefaultLevelPolicy() LevelPolicy {
	return LevelPolicy{XPPerLevel: DefaultXPPerLevel, SubtractOnLevelUp: true}
}

// Threshold returns the xp needed to leave level
func (p LevelPolicy) Threshold(level int) float64 {
	step := p.XPPerLevel
	if step <= 0 {
		step = DefaultXPPerLevel
	}
	if level < 1 {
		level = 1
	}
	return float64(level * step)
}

// apply runs the level-up loop and returns the number of levels gained.
// Non-finite xp gains nothing.
func (p LevelPolicy) apply(level int, xp float64) (int, float64, int) {
	gained := 0
	if math.IsNaN(xp) || math.IsInf(xp, 0) {
		return level, xp, gained
	}
	for {
		threshold := p.Threshold(level)
		if xp < threshold {
			break
		}
		if p.SubtractOnLevelUp {
			xp -= threshold
		}
		level++
		gained++
	}
	return level, xp, gained
}
