// Package config loads the YAML configuration of the three-in-a-row game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

// ThreeRowConfig is the full game configuration.
type ThreeRowConfig struct {
	Board        BoardConfig                `yaml:"board"`
	Difficulties map[string]DifficultyEntry `yaml:"difficulties"`
	Scoring      ScoringConfig              `yaml:"scoring"`
	Pacing       PacingConfig               `yaml:"pacing"`
	Hint         HintConfig                 `yaml:"hint"`
	Stalemate    StalematePolicy            `yaml:"stalemate"`
}

// BoardConfig sets the board geometry.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// DifficultyEntry is one row of the difficulty table.
type DifficultyEntry struct {
	Colors int `yaml:"colors"`
	Moves  int `yaml:"moves"`
	Target int `yaml:"target"`
}

// ScoringConfig holds base points per group size.
type ScoringConfig struct {
	Match3 int `yaml:"match3"`
	Match4 int `yaml:"match4"`
	Match5 int `yaml:"match5"` // five or more
}

// PacingConfig controls how long each animation phase stays on screen.
type PacingConfig struct {
	SwapMS    int `yaml:"swap_ms"`    // swapped tokens before validation or revert
	MatchMS   int `yaml:"match_ms"`   // highlighted group before it clears
	GravityMS int `yaml:"gravity_ms"` // per gravity pass
	SettleMS  int `yaml:"settle_ms"`  // refilled board before the next step
}

// HintConfig controls the inactivity hint.
type HintConfig struct {
	Enabled bool `yaml:"enabled"`
	DelayMS int  `yaml:"delay_ms"`
	ShowMS  int  `yaml:"show_ms"`
}

// StalematePolicy decides what happens when no legal move is left.
type StalematePolicy string

const (
	StalemateReshuffle StalematePolicy = "reshuffle"
	StalemateStuck     StalematePolicy = "stuck"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func (p PacingConfig) Swap() time.Duration    { return ms(p.SwapMS) }
func (p PacingConfig) Match() time.Duration   { return ms(p.MatchMS) }
func (p PacingConfig) Gravity() time.Duration { return ms(p.GravityMS) }
func (p PacingConfig) Settle() time.Duration  { return ms(p.SettleMS) }

func (h HintConfig) Delay() time.Duration { return ms(h.DelayMS) }
func (h HintConfig) Show() time.Duration  { return ms(h.ShowMS) }

// Presets converts the difficulty table for the engine.
func (c ThreeRowConfig) Presets() map[match3.Difficulty]match3.Preset {
	out := make(map[match3.Difficulty]match3.Preset, len(c.Difficulties))
	for name, d := range c.Difficulties {
		out[match3.Difficulty(name)] = match3.Preset{Colors: d.Colors, Moves: d.Moves, Target: d.Target}
	}
	return out
}

// Settings resolves engine settings for a mode and difficulty.
func (c ThreeRowConfig) Settings(mode match3.Mode, difficulty match3.Difficulty) (match3.Settings, error) {
	s, err := match3.ResolveWith(c.Presets(), mode, difficulty)
	if err != nil {
		return s, fmt.Errorf("config: %w", err)
	}
	s.Size = c.Board.Size
	s.Scoring = match3.Scoring{Match3: c.Scoring.Match3, Match4: c.Scoring.Match4, Match5: c.Scoring.Match5}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns the first problem found.
func (c ThreeRowConfig) Validate() error {
	if c.Board.Size < match3.MinSize {
		return ConfigError{"board.size", fmt.Sprintf("must be at least %d, got %d", match3.MinSize, c.Board.Size)}
	}
	for _, d := range match3.Difficulties {
		entry, ok := c.Difficulties[string(d)]
		if !ok {
			return ConfigError{"difficulties." + string(d), "missing"}
		}
		if entry.Colors < match3.MinColors {
			return ConfigError{"difficulties." + string(d) + ".colors", fmt.Sprintf("must be at least %d, got %d", match3.MinColors, entry.Colors)}
		}
		if entry.Moves <= 0 || entry.Target <= 0 {
			return ConfigError{"difficulties." + string(d), "moves and target must be positive"}
		}
	}
	if c.Scoring.Match3 <= 0 || c.Scoring.Match4 <= 0 || c.Scoring.Match5 <= 0 {
		return ConfigError{"scoring", "points must be positive"}
	}
	if c.Pacing.SwapMS < 0 || c.Pacing.MatchMS < 0 || c.Pacing.GravityMS < 0 || c.Pacing.SettleMS < 0 {
		return ConfigError{"pacing", "durations cannot be negative"}
	}
	if c.Hint.Enabled && (c.Hint.DelayMS <= 0 || c.Hint.ShowMS <= 0) {
		return ConfigError{"hint", "delay_ms and show_ms must be positive when enabled"}
	}
	switch c.Stalemate {
	case StalemateReshuffle, StalemateStuck:
	default:
		return ConfigError{"stalemate", fmt.Sprintf("unknown policy %q", c.Stalemate)}
	}
	return nil
}
