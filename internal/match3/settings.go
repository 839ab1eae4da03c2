package match3

import (
	"fmt"
	"strings"
)

// Mode selects how a session ends.
type Mode string

const (
	// ModeMoves ends on reaching the score target or running out of moves.
	ModeMoves Mode = "moves"
	// ModeEndless never ends.
	ModeEndless Mode = "endless"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeMoves, ModeEndless}

// Difficulty selects a preset from the difficulty table.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseMode converts a name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m != ModeMoves && m != ModeEndless {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, s)
	}
	return m, nil
}

// ParseDifficulty converts a name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Presets[d]; !ok {
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfiguration, s)
	}
	return d, nil
}

// Preset is one row of the difficulty table.
type Preset struct {
	Colors int
	Moves  int
	Target int
}

// Presets is the fixed difficulty table.
var Presets = map[Difficulty]Preset{
	Easy:   {Colors: 3, Moves: 40, Target: 500},
	Medium: {Colors: 4, Moves: 30, Target: 600},
	Hard:   {Colors: 5, Moves: 25, Target: 750},
}

// Settings is the resolved configuration of one session.
// MoveLimit and ScoreTarget are zero in endless mode.
type Settings struct {
	Mode        Mode
	Difficulty  Difficulty
	Size        int
	ColorCount  int
	MoveLimit   int
	ScoreTarget int
	Scoring     Scoring
}

// Resolve looks a (mode, difficulty) pair up in the fixed table.
func Resolve(mode Mode, difficulty Difficulty) (Settings, error) {
	return ResolveWith(Presets, mode, difficulty)
}

// ResolveWith looks a (mode, difficulty) pair up in a caller-supplied table.
func ResolveWith(table map[Difficulty]Preset, mode Mode, difficulty Difficulty) (Settings, error) {
	if mode != ModeMoves && mode != ModeEndless {
		return Settings{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, mode)
	}
	p, ok := table[difficulty]
	if !ok {
		return Settings{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfiguration, difficulty)
	}
	s := Settings{
		Mode:       mode,
		Difficulty: difficulty,
		Size:       DefaultSize,
		ColorCount: p.Colors,
		Scoring:    DefaultScoring,
	}
	if mode == ModeMoves {
		s.MoveLimit = p.Moves
		s.ScoreTarget = p.Target
	}
	return s, s.Validate()
}

// Validate checks that an engine can run with these settings.
func (s Settings) Validate() error {
	if err := validateDimensions(s.Size, s.ColorCount); err != nil {
		return err
	}
	if s.Mode == ModeMoves && (s.MoveLimit <= 0 || s.ScoreTarget <= 0) {
		return fmt.Errorf("%w: moves mode needs a positive move limit and score target", ErrInvalidConfiguration)
	}
	return nil
}
