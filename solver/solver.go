/*
Package solver computes move sequences for grid navigation puzzles.

A puzzle is a rectangular grid of open and wall cells with a start cell, a goal
cell, and a set of allowed move directions. The solver either returns an
ordered list of moves that, replayed from the start, lands on the goal without
crossing a wall or leaving the grid, or reports that no such sequence was
found.

Two strategies are available, selected at construction: breadth-first search,
which guarantees a shortest path with deterministic tie-breaking, and a
bounded random walk kept as a cruder baseline with no completeness guarantee.

A solve is a pure computation over its input. The solver holds no state across
invocations and is safe for concurrent use, except that the random-walk
strategy shares one seeded source and serializes its sampling.
*/
package solver

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"
)

const defaultRandomWalkBudget = 256

// Strategy selects the solving algorithm at construction time.
type Strategy uint8

// Solving strategies.
const (
	StrategyBFS        Strategy = iota // Shortest path via breadth-first search.
	StrategyRandomWalk                 // Bounded uniform random walk.
)

// ParseStrategy maps a configuration token to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "bfs":
		return StrategyBFS, nil
	case "random":
		return StrategyRandomWalk, nil
	default:
		return StrategyBFS, fmt.Errorf("unknown solver strategy %q", name)
	}
}

// Options configures a Solver.
type Options struct {
	// Strategy selects between breadth-first search and random walk.
	Strategy Strategy

	// MaxSteps bounds the random-walk strategy. Ignored by BFS.
	MaxSteps int

	// Seed seeds the random-walk sampling. Zero means time-based.
	Seed int64
}

// Solver computes move sequences for puzzles using a fixed strategy.
type Solver struct {
	strategy Strategy
	maxSteps int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a Solver with the provided options.
func New(opts *Options) *Solver {
	if opts == nil {
		opts = &Options{}
	}

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultRandomWalkBudget
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Solver{
		strategy: opts.Strategy,
		maxSteps: maxSteps,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Solve computes a move sequence from the puzzle's start to its goal.
// It returns ErrInvalidPuzzle for malformed input and ErrNotFound when no
// solution is discovered under the configured strategy.
func (s *Solver) Solve(p *Puzzle) ([]Direction, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	switch s.strategy {
	case StrategyRandomWalk:
		return s.randomWalk(p)
	default:
		return s.bfs(p)
	}
}

// step records the predecessor link of a visited position: the position the
// search came from and the move that crossed the gap.
type step struct {
	from Position
	dir  Direction
}

// bfs expands positions in first-in-first-out order, recording for each newly
// visited position the move that reached it. Neighbors are tried in the fixed
// order of the puzzle's move list, which makes repeated solves on identical
// input reproducible. Each cell is visited at most once, so the search
// terminates within Height×Width expansions.
func (s *Solver) bfs(p *Puzzle) ([]Direction, error) {
	if p.Start == p.Goal {
		return []Direction{}, nil
	}

	visited := map[Position]step{p.Start: {}}
	frontier := []Position{p.Start}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, dir := range p.Moves {
			next := current.Step(dir)
			if !p.Grid.Open(next) {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = step{from: current, dir: dir}
			if next == p.Goal {
				return reconstruct(visited, p.Start, p.Goal), nil
			}
			frontier = append(frontier, next)
		}
	}

	return nil, fmt.Errorf("%w: goal unreachable from start", ErrNotFound)
}

// reconstruct walks predecessor links from goal back to start and reverses
// the collected moves.
func reconstruct(visited map[Position]step, start, goal Position) []Direction {
	var moves []Direction
	for at := goal; at != start; {
		st := visited[at]
		moves = append(moves, st.dir)
		at = st.from
	}
	slices.Reverse(moves)
	return moves
}

// randomWalk samples allowed moves uniformly at random, skipping samples that
// would leave the grid or enter a wall, until the goal is reached or the step
// budget runs out. An illegal sample still consumes budget so a boxed-in
// start cannot loop forever.
func (s *Solver) randomWalk(p *Puzzle) ([]Direction, error) {
	current := p.Start
	moves := make([]Direction, 0, s.maxSteps)

	for i := 0; i < s.maxSteps; i++ {
		if current == p.Goal {
			return moves, nil
		}

		dir := p.Moves[s.sample(len(p.Moves))]
		next := current.Step(dir)
		if !p.Grid.Open(next) {
			continue
		}

		current = next
		moves = append(moves, dir)
	}

	if current == p.Goal {
		return moves, nil
	}
	return nil, fmt.Errorf("%w: random-walk budget of %d steps exhausted", ErrNotFound, s.maxSteps)
}

func (s *Solver) sample(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}
