// Package match3 implements the match-resolution engine of the three-in-a-row
// puzzle: board generation, match detection, swap validation, cascades, scoring,
// session outcome tracking and hints.
//
// The package is UI-agnostic and performs no I/O or timing. Given the same random
// source every operation is deterministic, which keeps it testable headlessly.
// Presentation layers drive cascades one step at a time and own all pacing.
package match3
