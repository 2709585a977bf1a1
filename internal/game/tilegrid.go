package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTileSize is the world-space edge length of one grid cell.
const DefaultTileSize = 4.0

// ErrMalformedLevel is returned when a level layout is empty or ragged.
var ErrMalformedLevel = errors.New("malformed level")

// Tile identifies what occupies one cell of the level grid.
type Tile uint8

const (
	TileFloor     Tile = iota // anything not listed below
	TileWall                  // '#'
	TileWallRunEW             // '-' thin wall running east-west
	TileWallRunNS             // '|' thin wall running north-south
	TileDoor                  // 'D' blocks sight, not movement
	TileBarrel                // 'B' barrel spawn; floor once the barrel is gone
)

// tileFromRune decodes one layout character.
func tileFromRune(r byte) Tile {
	switch r {
	case '#':
		return TileWall
	case '-':
		return TileWallRunEW
	case '|':
		return TileWallRunNS
	case 'D':
		return TileDoor
	case 'B':
		return TileBarrel
	default:
		return TileFloor
	}
}

// Rune returns the layout character for t.
func (t Tile) Rune() rune {
	switch t {
	case TileWall:
		return '#'
	case TileWallRunEW:
		return '-'
	case TileWallRunNS:
		return '|'
	case TileDoor:
		return 'D'
	case TileBarrel:
		return 'B'
	default:
		return '.'
	}
}

// BlocksSight reports whether the tile is opaque to line-of-sight checks.
func (t Tile) BlocksSight() bool {
	switch t {
	case TileWall, TileWallRunEW, TileWallRunNS, TileDoor:
		return true
	default:
		return false
	}
}

// BlocksMovement reports whether the player cannot enter the tile.
// Doors are walk-through; barrels collide through their own radius test.
func (t Tile) BlocksMovement() bool {
	switch t {
	case TileWall, TileWallRunEW, TileWallRunNS:
		return true
	default:
		return false
	}
}

// CellState is the tri-state answer of a grid probe.
type CellState uint8

const (
	CellOpen CellState = iota
	CellBlocked
	CellOutOfBounds
)

func (s CellState) String() string {
	switch s {
	case CellOpen:
		return "open"
	case CellBlocked:
		return "blocked"
	case CellOutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// TileGrid is the immutable per-level character grid.
// Row index is world Z, column index is world X.
type TileGrid struct {
	Cols     int
	Rows     int
	TileSize float32
	tiles    []Tile // row-major: index = row*Cols + col
}

// NewTileGrid validates the layout rows and builds a grid.
// Every row must have the same, non-zero length.
func NewTileGrid(rows []string, tileSize float32) (*TileGrid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedLevel)
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrMalformedLevel)
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	g := &TileGrid{
		Cols:     cols,
		Rows:     len(rows),
		TileSize: tileSize,
		tiles:    make([]Tile, cols*len(rows)),
	}
	for z, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedLevel, z, len(row), cols)
		}
		for x := 0; x < cols; x++ {
			g.tiles[z*cols+x] = tileFromRune(row[x])
		}
	}
	return g, nil
}

// inBounds returns true if (col, row) is within the grid.
func (g *TileGrid) inBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// At returns the tile at (col, row). The bool is false when out of bounds.
func (g *TileGrid) At(col, row int) (Tile, bool) {
	if !g.inBounds(col, row) {
		return TileFloor, false
	}
	return g.tiles[row*g.Cols+col], true
}

// ProbeSight classifies a cell for line-of-sight sampling.
func (g *TileGrid) ProbeSight(col, row int) CellState {
	t, ok := g.At(col, row)
	if !ok {
		return CellOutOfBounds
	}
	if t.BlocksSight() {
		return CellBlocked
	}
	return CellOpen
}

// ProbeMovement classifies a cell for player movement.
func (g *TileGrid) ProbeMovement(col, row int) CellState {
	t, ok := g.At(col, row)
	if !ok {
		return CellOutOfBounds
	}
	if t.BlocksMovement() {
		return CellBlocked
	}
	return CellOpen
}

// CellToWorld returns the world-space centre of a cell at ground level.
func (g *TileGrid) CellToWorld(col, row int) mgl32.Vec3 {
	return mgl32.Vec3{float32(col) * g.TileSize, 0, float32(row) * g.TileSize}
}

// WorldToCell maps a world position to the cell containing it.
// Cells are centred on their world position, hence the half-tile offset.
func (g *TileGrid) WorldToCell(p mgl32.Vec3) (col, row int) {
	half := g.TileSize / 2
	col = int(math.Floor(float64((p.X() + half) / g.TileSize)))
	row = int(math.Floor(float64((p.Z() + half) / g.TileSize)))
	return col, row
}

// BarrelCells returns the world positions of every 'B' cell in row-major order.
func (g *TileGrid) BarrelCells() []mgl32.Vec3 {
	var out []mgl32.Vec3
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.tiles[row*g.Cols+col] == TileBarrel {
				out = append(out, g.CellToWorld(col, row))
			}
		}
	}
	return out
}

// Bounds returns the world-space extent covered by the grid (min and max corners).
func (g *TileGrid) Bounds() (minX, minZ, maxX, maxZ float32) {
	half := g.TileSize / 2
	return -half, -half, float32(g.Cols)*g.TileSize - half, float32(g.Rows)*g.TileSize - half
}
