package match3

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Selector states.
const (
	StateIdle           = "idle"
	StateAwaitingSecond = "awaiting_second"
	StateValidating     = "validating"
	StateResolved       = "resolved"
	StateReverted       = "reverted"
)

const (
	eventSelect   = "select"
	eventDeselect = "deselect"
	eventSwap     = "swap"
	eventResolve  = "resolve"
	eventRevert   = "revert"
	eventReset    = "reset"
)

// ClickKind says what a click did to the selection.
type ClickKind int

const (
	ClickSelected ClickKind = iota
	ClickDeselected
	ClickReselected
	ClickSwap
)

func (k ClickKind) String() string {
	switch k {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickReselected:
		return "reselected"
	case ClickSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// Click is the result of a selection. For ClickSwap, From and To are the
// pair to validate; otherwise From is the clicked coordinate.
type Click struct {
	Kind ClickKind
	From Coord
	To   Coord
}

// Selector is the two-click swap selection state machine:
// idle, awaiting_second, validating, then resolved or reverted, then idle.
type Selector struct {
	machine  *fsm.FSM
	size     int
	selected Coord

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to string)
}

// NewSelector returns an idle selector for a size×size board.
func NewSelector(size int) *Selector {
	s := &Selector{size: size}
	s.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventSelect, Src: []string{StateIdle}, Dst: StateAwaitingSecond},
			{Name: eventDeselect, Src: []string{StateAwaitingSecond}, Dst: StateIdle},
			{Name: eventSwap, Src: []string{StateAwaitingSecond}, Dst: StateValidating},
			{Name: eventResolve, Src: []string{StateValidating}, Dst: StateResolved},
			{Name: eventRevert, Src: []string{StateValidating}, Dst: StateReverted},
			{Name: eventReset, Src: []string{StateResolved, StateReverted}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if s.OnTransition != nil {
					s.OnTransition(e.Src, e.Dst)
				}
			},
		},
	)
	return s
}

// State returns the current state name.
func (s *Selector) State() string {
	return s.machine.Current()
}

// Selected returns the first coordinate of a pending swap.
func (s *Selector) Selected() (Coord, bool) {
	return s.selected, s.machine.Is(StateAwaitingSecond)
}

// Click advances the selection with a clicked coordinate. Clicking the
// selected slot again deselects it, clicking a non-adjacent slot moves the
// selection, and clicking an adjacent slot requests a swap and enters
// validating until Complete is called.
func (s *Selector) Click(c Coord) (Click, error) {
	if c.Row < 0 || c.Row >= s.size || c.Col < 0 || c.Col >= s.size {
		return Click{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, c)
	}

	switch s.machine.Current() {
	case StateIdle:
		if err := s.fire(eventSelect); err != nil {
			return Click{}, err
		}
		s.selected = c
		return Click{Kind: ClickSelected, From: c}, nil

	case StateAwaitingSecond:
		switch {
		case c == s.selected:
			if err := s.fire(eventDeselect); err != nil {
				return Click{}, err
			}
			return Click{Kind: ClickDeselected, From: c}, nil
		case c.Adjacent(s.selected):
			if err := s.fire(eventSwap); err != nil {
				return Click{}, err
			}
			return Click{Kind: ClickSwap, From: s.selected, To: c}, nil
		default:
			s.selected = c
			return Click{Kind: ClickReselected, From: c}, nil
		}

	default:
		return Click{}, ErrConcurrentResolution
	}
}

// Complete records whether the requested swap was valid and returns to idle.
func (s *Selector) Complete(valid bool) error {
	event := eventRevert
	if valid {
		event = eventResolve
	}
	if err := s.fire(event); err != nil {
		return err
	}
	return s.fire(eventReset)
}

// Cancel drops a pending first selection.
func (s *Selector) Cancel() {
	if s.machine.Is(StateAwaitingSecond) {
		_ = s.fire(eventDeselect)
	}
}

// Reset forces the selector back to idle, for example on restart.
func (s *Selector) Reset() {
	s.machine.SetState(StateIdle)
}

func (s *Selector) fire(event string) error {
	if err := s.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("match3: selector %s from %s: %w", event, s.machine.Current(), err)
	}
	return nil
}
