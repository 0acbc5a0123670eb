package progression

// XPPerLevel is the per-level multiplier in the level-up threshold formula.
// The add_xp database procedure implements the same formula; the two must stay
// numerically identical. Tests use this package as the oracle.
const XPPerLevel = 263

// Threshold returns the XP required to advance from the given level
func Threshold(level int) int {
	return level * XPPerLevel
}

// ApplyXP pools gained XP into the current level/xp pair and resolves any
// level-ups. It is the client-side fallback for the add_xp procedure and
// terminates with pooled XP strictly below the next threshold.
func ApplyXP(level, xp, gained int) (newLevel, newXP int) {
	if level < 1 {
		level = 1
	}
	pooled := xp + gained
	for pooled >= Threshold(level) {
		pooled -= Threshold(level)
		level++
	}
	return level, pooled
}
