package solver

import (
	"errors"
	"fmt"
)

// Solver error kinds. Both are ordinary result values for the caller, never
// process-fatal conditions.
var (
	// ErrInvalidPuzzle reports malformed input: an empty grid, or a start or
	// goal that is out of bounds or sits on a wall.
	ErrInvalidPuzzle = errors.New("invalid puzzle")

	// ErrNotFound reports a well-formed puzzle with no discoverable solution
	// under the configured strategy or budget.
	ErrNotFound = errors.New("no solution found")
)

// Puzzle describes one grid navigation problem: the grid, the start and goal
// cells, and the set of allowed move directions. A Puzzle is created fresh per
// incoming request and discarded after the response is produced.
type Puzzle struct {
	Grid  Grid        // Rectangular grid of open and wall cells
	Start Position    // Starting cell, must be open and in bounds
	Goal  Position    // Goal cell, must be open and in bounds
	Moves []Direction // Allowed move directions, in tie-break priority order
}

// validate checks the puzzle's structural constraints.
func (p *Puzzle) validate() error {
	if p.Grid.Height() == 0 || p.Grid.Width() == 0 {
		return fmt.Errorf("%w: empty grid", ErrInvalidPuzzle)
	}
	for row := range p.Grid {
		if len(p.Grid[row]) != p.Grid.Width() {
			return fmt.Errorf("%w: ragged grid row %d", ErrInvalidPuzzle, row)
		}
	}
	if !p.Grid.Open(p.Start) {
		return fmt.Errorf("%w: start %v is out of bounds or a wall", ErrInvalidPuzzle, p.Start)
	}
	if !p.Grid.Open(p.Goal) {
		return fmt.Errorf("%w: goal %v is out of bounds or a wall", ErrInvalidPuzzle, p.Goal)
	}
	if len(p.Moves) == 0 {
		return fmt.Errorf("%w: no allowed moves", ErrInvalidPuzzle)
	}
	for _, d := range p.Moves {
		if _, known := Directions[d]; !known {
			return fmt.Errorf("%w: unknown move direction %q", ErrInvalidPuzzle, d)
		}
	}
	return nil
}
