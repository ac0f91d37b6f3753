package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridOf builds a grid from rows of 0 (open) and 1 (wall).
func gridOf(rows ...[]int) Grid {
	grid := make(Grid, len(rows))
	for i, row := range rows {
		grid[i] = make([]Cell, len(row))
		for j, v := range row {
			if v == 1 {
				grid[i][j] = CellWall
			}
		}
	}
	return grid
}

func openGrid(height, width int) Grid {
	grid := make(Grid, height)
	for i := range grid {
		grid[i] = make([]Cell, width)
	}
	return grid
}

// replay applies a move sequence from the puzzle's start, asserting every
// intermediate position stays in bounds and off walls, and returns the final
// position.
func replay(t *testing.T, p *Puzzle, moves []Direction) Position {
	t.Helper()
	current := p.Start
	for _, dir := range moves {
		current = current.Step(dir)
		require.True(t, p.Grid.Open(current), "replay stepped onto %v which is not open", current)
	}
	return current
}

// shortestDistance finds the true shortest-path length by exhaustive
// expansion, independent of the solver's own bookkeeping.
func shortestDistance(p *Puzzle) int {
	type node struct {
		pos  Position
		dist int
	}
	seen := map[Position]bool{p.Start: true}
	queue := []node{{p.Start, 0}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.pos == p.Goal {
			return n.dist
		}
		for _, dir := range p.Moves {
			next := n.pos.Step(dir)
			if p.Grid.Open(next) && !seen[next] {
				seen[next] = true
				queue = append(queue, node{next, n.dist + 1})
			}
		}
	}
	return -1
}

func TestSolveBFS(t *testing.T) {
	s := New(&Options{Strategy: StrategyBFS})

	t.Run("open 3x3 grid corner to corner", func(t *testing.T) {
		p := &Puzzle{
			Grid:  openGrid(3, 3),
			Start: Position{0, 0},
			Goal:  Position{2, 2},
			Moves: DefaultMoves,
		}

		moves, err := s.Solve(p)
		require.NoError(t, err)
		assert.Len(t, moves, 4)
		assert.Equal(t, p.Goal, replay(t, p, moves))
	})

	t.Run("start equals goal", func(t *testing.T) {
		p := &Puzzle{
			Grid:  openGrid(3, 3),
			Start: Position{1, 1},
			Goal:  Position{1, 1},
			Moves: DefaultMoves,
		}

		moves, err := s.Solve(p)
		require.NoError(t, err)
		assert.Empty(t, moves)
	})

	t.Run("path threads around a wall", func(t *testing.T) {
		p := &Puzzle{
			Grid: gridOf(
				[]int{0, 1, 0},
				[]int{0, 1, 0},
				[]int{0, 0, 0},
			),
			Start: Position{0, 0},
			Goal:  Position{0, 2},
			Moves: DefaultMoves,
		}

		moves, err := s.Solve(p)
		require.NoError(t, err)
		assert.Len(t, moves, 6)
		assert.Equal(t, p.Goal, replay(t, p, moves))
	})

	t.Run("goal walled off", func(t *testing.T) {
		p := &Puzzle{
			Grid: gridOf(
				[]int{0, 1, 0},
				[]int{0, 1, 0},
				[]int{0, 1, 0},
			),
			Start: Position{0, 0},
			Goal:  Position{0, 2},
			Moves: DefaultMoves,
		}

		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("restricted move set blocks otherwise reachable goal", func(t *testing.T) {
		p := &Puzzle{
			Grid:  openGrid(2, 2),
			Start: Position{1, 1},
			Goal:  Position{0, 0},
			Moves: []Direction{Down, Right},
		}

		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deterministic across repeated solves", func(t *testing.T) {
		p := &Puzzle{
			Grid: gridOf(
				[]int{0, 0, 0, 0},
				[]int{0, 1, 1, 0},
				[]int{0, 0, 0, 0},
			),
			Start: Position{2, 0},
			Goal:  Position{0, 3},
			Moves: DefaultMoves,
		}

		first, err := s.Solve(p)
		require.NoError(t, err)
		second, err := s.Solve(p)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("sequence length matches exhaustive shortest distance", func(t *testing.T) {
		grids := []Grid{
			openGrid(4, 4),
			gridOf(
				[]int{0, 0, 1, 0},
				[]int{1, 0, 1, 0},
				[]int{0, 0, 0, 0},
				[]int{0, 1, 1, 0},
			),
			gridOf(
				[]int{0, 1, 0},
				[]int{0, 0, 0},
				[]int{1, 0, 0},
			),
		}

		for _, grid := range grids {
			for row := 0; row < grid.Height(); row++ {
				for col := 0; col < grid.Width(); col++ {
					goal := Position{row, col}
					if !grid.Open(goal) {
						continue
					}
					p := &Puzzle{Grid: grid, Start: Position{0, 0}, Goal: goal, Moves: DefaultMoves}
					want := shortestDistance(p)

					moves, err := s.Solve(p)
					if want < 0 {
						assert.ErrorIs(t, err, ErrNotFound)
						continue
					}
					require.NoError(t, err)
					assert.Len(t, moves, want, "goal %v", goal)
					assert.Equal(t, goal, replay(t, p, moves))
				}
			}
		}
	})
}

func TestSolveInvalidPuzzle(t *testing.T) {
	s := New(nil)

	t.Run("empty grid", func(t *testing.T) {
		p := &Puzzle{Grid: Grid{}, Moves: DefaultMoves}
		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})

	t.Run("start outside grid bounds", func(t *testing.T) {
		p := &Puzzle{
			Grid:  openGrid(3, 3),
			Start: Position{5, 5},
			Goal:  Position{2, 2},
			Moves: DefaultMoves,
		}
		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})

	t.Run("goal on a wall", func(t *testing.T) {
		p := &Puzzle{
			Grid: gridOf(
				[]int{0, 0},
				[]int{0, 1},
			),
			Start: Position{0, 0},
			Goal:  Position{1, 1},
			Moves: DefaultMoves,
		}
		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})

	t.Run("no allowed moves", func(t *testing.T) {
		p := &Puzzle{
			Grid:  openGrid(2, 2),
			Start: Position{0, 0},
			Goal:  Position{1, 1},
		}
		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})

	t.Run("unknown move token", func(t *testing.T) {
		p := &Puzzle{
			Grid:  openGrid(2, 2),
			Start: Position{0, 0},
			Goal:  Position{1, 1},
			Moves: []Direction{"diagonal"},
		}
		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})
}

func TestSolveRandomWalk(t *testing.T) {
	t.Run("reaches adjacent goal within a generous budget", func(t *testing.T) {
		s := New(&Options{Strategy: StrategyRandomWalk, MaxSteps: 10000, Seed: 1})
		p := &Puzzle{
			Grid:  openGrid(2, 2),
			Start: Position{0, 0},
			Goal:  Position{0, 1},
			Moves: DefaultMoves,
		}

		moves, err := s.Solve(p)
		require.NoError(t, err)
		assert.Equal(t, p.Goal, replay(t, p, moves))
	})

	t.Run("reports NotFound when budget exhausted", func(t *testing.T) {
		s := New(&Options{Strategy: StrategyRandomWalk, MaxSteps: 3, Seed: 1})
		p := &Puzzle{
			Grid:  openGrid(8, 8),
			Start: Position{0, 0},
			Goal:  Position{7, 7},
			Moves: DefaultMoves,
		}

		// Three steps can never cover a Manhattan distance of fourteen.
		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unreachable goal stays NotFound", func(t *testing.T) {
		s := New(&Options{Strategy: StrategyRandomWalk, MaxSteps: 100, Seed: 7})
		p := &Puzzle{
			Grid: gridOf(
				[]int{0, 1, 0},
				[]int{1, 1, 0},
				[]int{0, 0, 0},
			),
			Start: Position{0, 0},
			Goal:  Position{2, 2},
			Moves: DefaultMoves,
		}

		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("validation still applies", func(t *testing.T) {
		s := New(&Options{Strategy: StrategyRandomWalk})
		p := &Puzzle{
			Grid:  openGrid(3, 3),
			Start: Position{0, 0},
			Goal:  Position{3, 3},
			Moves: DefaultMoves,
		}

		_, err := s.Solve(p)
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})
}

func TestParseStrategy(t *testing.T) {
	st, err := ParseStrategy("bfs")
	assert.NoError(t, err)
	assert.Equal(t, StrategyBFS, st)

	st, err = ParseStrategy("random")
	assert.NoError(t, err)
	assert.Equal(t, StrategyRandomWalk, st)

	_, err = ParseStrategy("dijkstra")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidPuzzle))
}
