package match3

// Placement is a power-up to be put on the board after a cascade step.
type Placement struct {
	At   Coord   `json:"at"`
	Kind PowerUp `json:"kind"`
}

// PowerUpFor decides the power-up a match group earns. Groups of five or more
// earn a mega power-up, groups of four earn a row power-up when every
// coordinate shares one row and a column power-up otherwise. The power-up
// lands on the first coordinate of the group in row-major order.
func PowerUpFor(m Match) (Placement, bool) {
	switch {
	case len(m) >= 5:
		return Placement{At: m[0], Kind: PowerUpMega}, true
	case len(m) == 4 && m.SameRow():
		return Placement{At: m[0], Kind: PowerUpRow}, true
	case len(m) == 4:
		return Placement{At: m[0], Kind: PowerUpColumn}, true
	default:
		return Placement{}, false
	}
}

// MarshalText lets power-up kinds appear by name in JSON reports.
func (p PowerUp) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
