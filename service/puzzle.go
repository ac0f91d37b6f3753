package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/solver"
)

// gridPuzzleRequest is the one-shot puzzle document some green agents send in
// place of the iterative rooms prompt. Grid cells are 0 for open and 1 for
// wall; start and goal are [row, col] pairs; moves defaults to all four
// directions when omitted.
type gridPuzzleRequest struct {
	Grid  [][]int  `json:"grid"`
	Start []int    `json:"start"`
	Goal  []int    `json:"goal"`
	Moves []string `json:"moves,omitempty"`
}

// parseGridPuzzle sniffs whether the payload is a grid puzzle document and,
// if so, converts it. The second return value reports the sniff; the error
// covers documents that are recognizably grid puzzles but ill-formed.
func parseGridPuzzle(text string) (*solver.Puzzle, bool, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false, nil
	}

	var request gridPuzzleRequest
	if err := json.Unmarshal([]byte(trimmed), &request); err != nil || request.Grid == nil {
		return nil, false, nil
	}

	if len(request.Start) != 2 || len(request.Goal) != 2 {
		return nil, true, fmt.Errorf("%w: start and goal must be [row, col] pairs", solver.ErrInvalidPuzzle)
	}

	grid := make(solver.Grid, len(request.Grid))
	for i, row := range request.Grid {
		grid[i] = make([]solver.Cell, len(row))
		for j, v := range row {
			if v != 0 {
				grid[i][j] = solver.CellWall
			}
		}
	}

	moves := solver.DefaultMoves
	if len(request.Moves) > 0 {
		moves = make([]solver.Direction, len(request.Moves))
		for i, m := range request.Moves {
			moves[i] = solver.Direction(m)
		}
	}

	return &solver.Puzzle{
		Grid:  grid,
		Start: solver.Position{Row: request.Start[0], Col: request.Start[1]},
		Goal:  solver.Position{Row: request.Goal[0], Col: request.Goal[1]},
		Moves: moves,
	}, true, nil
}

// gridPuzzleResponse is the reply payload for a solved grid puzzle.
type gridPuzzleResponse struct {
	Moves []solver.Direction `json:"moves"`
}
