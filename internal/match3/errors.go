package match3

import "errors"

var (
	// ErrInvalidCoordinate is returned when a coordinate lies outside the board.
	ErrInvalidCoordinate = errors.New("match3: invalid coordinate")

	// ErrInvalidConfiguration is returned for board or session settings the
	// engine cannot honor, such as fewer than three colors.
	ErrInvalidConfiguration = errors.New("match3: invalid configuration")

	// ErrConcurrentResolution is returned when a swap is resolved while another
	// resolution is still in flight. Callers must serialize resolutions.
	ErrConcurrentResolution = errors.New("match3: resolution already in progress")

	// ErrNoResolution is returned when finishing a cascade the engine did not start.
	ErrNoResolution = errors.New("match3: no resolution in progress")

	// ErrGameOver is returned when a move is attempted after the session ended.
	ErrGameOver = errors.New("match3: session already finished")

	// ErrNoMovesAvailable is returned when a reshuffle cannot produce a playable board.
	ErrNoMovesAvailable = errors.New("match3: no playable board found")
)
