// Package layout synthesizes multi-floor building layouts: occupancy
// footprints, rectangular room partitions, door/arch/window openings and
// stair placement, all driven by a recipe and one deterministic rng stream.
package layout

import (
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
)

// Cell is a (column, row) coordinate on a floor grid. Row 0 is the north
// edge; rows grow southward, columns grow eastward.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the cell one unit toward side.
func (c Cell) Step(side recipe.Side) Cell {
	switch side {
	case recipe.North:
		return Cell{c.X, c.Y - 1}
	case recipe.South:
		return Cell{c.X, c.Y + 1}
	case recipe.West:
		return Cell{c.X - 1, c.Y}
	default:
		return Cell{c.X + 1, c.Y}
	}
}

// CellPair keys an internal opening between two adjacent cells. Pairs are
// stored canonically (lower row-major cell first) so lookups are order-free.
type CellPair struct {
	A Cell `json:"a"`
	B Cell `json:"b"`
}

// PairOf builds the canonical pair for two adjacent cells.
func PairOf(a, b Cell) CellPair {
	if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
		a, b = b, a
	}
	return CellPair{A: a, B: b}
}

// EdgeAddress keys an external opening: the occupied cell plus the compass
// side of its wall facing outside.
type EdgeAddress struct {
	Cell Cell        `json:"cell"`
	Side recipe.Side `json:"side"`
}

type OpeningKind string

const (
	Door   OpeningKind = "door"
	Arch   OpeningKind = "arch"
	Window OpeningKind = "window"
)

// Room is one rectangular-packed partition of a floor's occupied cells.
type Room struct {
	ID    int    `json:"id"`
	Cells []Cell `json:"cells"`
	MinX  int    `json:"minX"`
	MinY  int    `json:"minY"`
	MaxX  int    `json:"maxX"`
	MaxY  int    `json:"maxY"`
}

// Area is the room's cell count.
func (r *Room) Area() int { return len(r.Cells) }

// FloorPlan owns one floor's footprint, room partition and opening maps.
type FloorPlan struct {
	Grid     *Footprint                  `json:"grid"`
	RoomOf   map[Cell]int                `json:"-"`
	Rooms    []Room                      `json:"rooms"`
	Internal map[CellPair]OpeningKind    `json:"-"`
	External map[EdgeAddress]OpeningKind `json:"-"`
}

// StairPlacement connects a lower-floor anchor cell to the upper-floor
// landing cell one step toward Dir.
type StairPlacement struct {
	Anchor  Cell        `json:"anchor"`
	Dir     recipe.Side `json:"dir"`
	Landing Cell        `json:"landing"`
}

// BuildingLayout is the complete generated layout for one building.
type BuildingLayout struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Floors int             `json:"floors"`
	Front  recipe.Side     `json:"front"`
	Plans  []*FloorPlan    `json:"plans"`
	Stair  *StairPlacement `json:"stair,omitempty"`
}
