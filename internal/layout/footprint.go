package layout

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

// Footprint is a row-major occupancy grid for one floor.
type Footprint struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []bool `json:"cells"`
}

func NewFootprint(width, height int) *Footprint {
	return &Footprint{Width: width, Height: height, Cells: make([]bool, width*height)}
}

func (f *Footprint) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < f.Width && c.Y >= 0 && c.Y < f.Height
}

func (f *Footprint) At(c Cell) bool {
	if !f.InBounds(c) {
		return false
	}
	return f.Cells[c.Y*f.Width+c.X]
}

func (f *Footprint) Set(c Cell, occupied bool) {
	if f.InBounds(c) {
		f.Cells[c.Y*f.Width+c.X] = occupied
	}
}

// Count returns the number of occupied cells.
func (f *Footprint) Count() int {
	n := 0
	for _, occupied := range f.Cells {
		if occupied {
			n++
		}
	}
	return n
}

func (f *Footprint) Clone() *Footprint {
	out := NewFootprint(f.Width, f.Height)
	copy(out.Cells, f.Cells)
	return out
}

// OccupiedNeighbors counts the occupied orthogonal neighbors of c.
func (f *Footprint) OccupiedNeighbors(c Cell) int {
	n := 0
	for _, side := range recipe.Sides {
		if f.At(c.Step(side)) {
			n++
		}
	}
	return n
}

// ExternalSides counts the sides of c facing outside the footprint.
func (f *Footprint) ExternalSides(c Cell) int {
	n := 0
	for _, side := range recipe.Sides {
		if !f.At(c.Step(side)) {
			n++
		}
	}
	return n
}

// Bounds returns the bounding box of occupied cells; ok=false if empty.
func (f *Footprint) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	minX, minY = f.Width, f.Height
	maxX, maxY = -1, -1
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if !f.Cells[y*f.Width+x] {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return minX, minY, maxX, maxY, maxX >= 0
}

// FootprintResult is the ground-floor generation output.
type FootprintResult struct {
	Grid       *Footprint
	MainDepth  int
	FoyerCells mapset.Set[Cell]
	Front      recipe.Side
}

// GenerateFootprint draws the ground-floor occupancy grid: a fully occupied
// main rectangle, an optional centered foyer block appended on the front
// side, and an optional corner carve.
func GenerateFootprint(rec *recipe.Recipe, stream *rng.Stream) FootprintResult {
	width := stream.Int(rec.Width.Min, rec.Width.Max)
	mainDepth := stream.Int(rec.Depth.Min, rec.Depth.Max)

	front := rec.FrontSide
	foyerCells := mapset.New[Cell]()

	var grid *Footprint
	if rec.Foyer != nil {
		foyerWidth := stream.Int(rec.Foyer.Width.Min, rec.Foyer.Width.Max)
		foyerDepth := stream.Int(rec.Foyer.Depth.Min, rec.Foyer.Depth.Max)
		if foyerWidth > width {
			foyerWidth = width
		}
		// the foyer is the entrance block, so the front faces it
		front = recipe.South
		grid = NewFootprint(width, mainDepth+foyerDepth)
		for y := 0; y < mainDepth; y++ {
			for x := 0; x < width; x++ {
				grid.Set(Cell{x, y}, true)
			}
		}
		offset := (width - foyerWidth) / 2
		for y := mainDepth; y < mainDepth+foyerDepth; y++ {
			for x := offset; x < offset+foyerWidth; x++ {
				c := Cell{x, y}
				grid.Set(c, true)
				foyerCells.Put(c)
			}
		}
	} else {
		grid = NewFootprint(width, mainDepth)
		for i := range grid.Cells {
			grid.Cells[i] = true
		}
	}

	if rec.CarveChance > 0 && stream.Chance(rec.CarveChance) {
		carveCorner(grid, 0, 0, width-1, mainDepth-1, rec.CarveSize, 0.6, stream, mapset.New[Cell]())
	}

	return FootprintResult{
		Grid:       grid,
		MainDepth:  mainDepth,
		FoyerCells: foyerCells,
		Front:      front,
	}
}

// carveCorner clears a rectangular notch from a randomly chosen corner of
// the box (minX..maxX, minY..maxY). The carve only commits if the occupied
// count stays at or above keepRatio of the pre-carve count; protected cells
// are never cleared.
func carveCorner(grid *Footprint, minX, minY, maxX, maxY int, size recipe.IntRange, keepRatio float64, stream *rng.Stream, protected mapset.Set[Cell]) bool {
	corner := stream.Int(0, 3)
	carveW := stream.Int(size.Min, size.Max)
	carveH := stream.Int(size.Min, size.Max)

	boxW := maxX - minX + 1
	boxH := maxY - minY + 1
	if carveW >= boxW {
		carveW = boxW - 1
	}
	if carveH >= boxH {
		carveH = boxH - 1
	}
	if carveW < 1 || carveH < 1 {
		return false
	}

	x0, y0 := minX, minY
	if corner == 1 || corner == 3 {
		x0 = maxX - carveW + 1
	}
	if corner == 2 || corner == 3 {
		y0 = maxY - carveH + 1
	}

	before := grid.Count()
	removed := make([]Cell, 0, carveW*carveH)
	for y := y0; y < y0+carveH; y++ {
		for x := x0; x < x0+carveW; x++ {
			c := Cell{x, y}
			if protected.Has(c) {
				continue
			}
			if grid.At(c) {
				grid.Set(c, false)
				removed = append(removed, c)
			}
		}
	}

	if float64(grid.Count()) < keepRatio*float64(before) {
		for _, c := range removed {
			grid.Set(c, true)
		}
		return false
	}
	return len(removed) > 0
}
