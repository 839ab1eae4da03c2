package config

import (
	_ "embed"
)

//go:embed defaults/threerow.yaml
var defaultThreeRowYAML []byte

// DefaultThreeRowConfig returns the built-in configuration. It matches the
// embedded YAML and is the last fallback of the loader.
func DefaultThreeRowConfig() ThreeRowConfig {
	return ThreeRowConfig{
		Board: BoardConfig{Size: 8},
		Difficulties: map[string]DifficultyEntry{
			"easy":   {Colors: 3, Moves: 40, Target: 500},
			"medium": {Colors: 4, Moves: 30, Target: 600},
			"hard":   {Colors: 5, Moves: 25, Target: 750},
		},
		Scoring: ScoringConfig{Match3: 10, Match4: 25, Match5: 50},
		Pacing: PacingConfig{
			SwapMS:    300,
			MatchMS:   400,
			GravityMS: 100,
			SettleMS:  100,
		},
		Hint: HintConfig{
			Enabled: true,
			DelayMS: 6000,
			ShowMS:  3000,
		},
		Stalemate: StalemateReshuffle,
	}
}
