package solver

// Cell represents the type of a single grid cell.
type Cell uint8

// Cell types.
const (
	CellOpen Cell = iota // CellOpen marks a cell the agent may stand on.
	CellWall             // CellWall marks an impassable cell.
)

// Position represents the location of a cell in the grid.
type Position struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Direction is a discrete move token understood by the green agent.
type Direction string

// Move directions.
const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions maps each move token to its row/column delta.
var Directions = map[Direction]Position{
	Up:    {Row: -1, Col: 0},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Right: {Row: 0, Col: 1},
}

// DefaultMoves is the fixed move-priority ordering used when a puzzle does not
// restrict its move set. The ordering also breaks ties between equally short
// paths so repeated solves are reproducible.
var DefaultMoves = []Direction{Up, Down, Left, Right}

// Step returns the position reached by applying one move to p.
func (p Position) Step(d Direction) Position {
	delta := Directions[d]
	return Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Grid is a rectangular arrangement of cells. It is never mutated by a solve.
type Grid [][]Cell

// Height returns the number of rows in the grid.
func (g Grid) Height() int {
	return len(g)
}

// Width returns the number of columns in the grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBound checks whether a position lies inside the grid bounds.
func (g Grid) InBound(p Position) bool {
	return p.Row >= 0 && p.Row < g.Height() && p.Col >= 0 && p.Col < g.Width()
}

// Open checks whether a position is inside the grid and not a wall.
func (g Grid) Open(p Position) bool {
	return g.InBound(p) && g[p.Row][p.Col] == CellOpen
}
