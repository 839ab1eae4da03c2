package match3

// StepResult describes one cascade step. A settled step carries no matches
// and means the board is stable.
type StepResult struct {
	Index         int
	Settled       bool
	Matched       Match
	Combo         int
	Score         int
	PowerUp       *Placement
	GravityPasses int
	Refilled      []Coord

	// Frames holds board snapshots for animation when the cascade records
	// them: before the clear, after the clear, after every gravity pass and
	// after the refill.
	Frames []*Grid
}

// Cascade resolves the consequences of one valid swap, one step at a time.
// The caller decides when to call Step; the cascade itself never waits.
type Cascade struct {
	grid    *Grid
	session *Session
	rng     Rand
	seed    Match
	record  bool

	steps   int
	settled bool
}

func newCascade(g *Grid, s *Session, rng Rand, seed Match, record bool) *Cascade {
	return &Cascade{grid: g, session: s, rng: rng, seed: seed, record: record}
}

// Seed returns the union of matches created directly by the swap.
func (c *Cascade) Seed() Match {
	return c.seed
}

// Settled reports whether the board has stabilized.
func (c *Cascade) Settled() bool {
	return c.settled
}

// Steps returns the number of scoring steps performed so far.
func (c *Cascade) Steps() int {
	return c.steps
}

// Step runs one detect, score, clear, gravity and refill iteration. Matches
// are always recomputed over the whole board, so the swap seed is a subset of
// the first step's group. When nothing matches the combo resets to 1 and the
// cascade settles; further calls keep returning a settled result.
func (c *Cascade) Step() StepResult {
	if c.settled {
		return StepResult{Index: c.steps, Settled: true, Combo: c.session.Combo}
	}

	matched := FindAllMatches(c.grid)
	if len(matched) == 0 {
		c.settled = true
		c.session.Combo = 1
		return StepResult{Index: c.steps, Settled: true, Combo: 1}
	}

	res := StepResult{
		Index:   c.steps + 1,
		Matched: matched,
		Combo:   c.session.Combo,
	}
	res.Score = c.session.scoring().ForGroup(len(matched)) * res.Combo
	c.session.Score += res.Score
	placement, earned := PowerUpFor(matched)

	c.snapshot(&res)
	c.grid.Clear(matched)
	c.snapshot(&res)
	for c.grid.GravityPass() {
		res.GravityPasses++
		c.snapshot(&res)
	}
	res.Refilled = c.grid.Refill(c.session.ColorCount, c.rng)
	if earned {
		c.grid.setPowerUp(placement.At, placement.Kind)
		res.PowerUp = &placement
	}
	c.snapshot(&res)

	c.session.Combo++
	c.steps++
	return res
}

// Run steps until the board settles and returns every scoring step.
func (c *Cascade) Run() []StepResult {
	var steps []StepResult
	for {
		res := c.Step()
		if res.Settled {
			return steps
		}
		steps = append(steps, res)
	}
}

// drain settles the board without scoring or placing power-ups.
func (c *Cascade) drain() {
	for {
		matched := FindAllMatches(c.grid)
		if len(matched) == 0 {
			break
		}
		c.grid.Clear(matched)
		c.grid.ApplyGravity()
		c.grid.Refill(c.session.ColorCount, c.rng)
	}
	c.settled = true
	c.session.Combo = 1
}

func (c *Cascade) snapshot(res *StepResult) {
	if c.record {
		res.Frames = append(res.Frames, c.grid.Clone())
	}
}
