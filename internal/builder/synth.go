package builder

import (
	"fmt"
	"math"

	"github.com/nirholas/hyperscape-sub002/internal/layout"
	"github.com/nirholas/hyperscape-sub002/internal/mesh"
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
)

// World-unit dimensions of the emitted geometry. Cells are square; walls
// sit centered on cell boundaries.
const (
	cellSize       = 2.0
	wallThickness  = 0.2
	floorHeight    = 3.0
	floorThickness = 0.1
	skirtDrop      = 0.25
	roofThickness  = 0.2
	roofFascia     = 0.3
	stairWidth     = 1.2
	stairStepRise  = 0.3

	windowGap    = 0.8
	archGap      = 1.2
	doorGap      = 1.4
	minSideBlock = 0.3
	sillHeight   = 0.9
	headHeight   = 2.1
	doorHeight   = 2.1
	archSpring   = 1.6

	counterClearance = 0.6
)

// synthesizer turns one layout plus prop placements into primitives.
type synthesizer struct {
	list   *layout.BuildingLayout
	scheme *mesh.MaterialScheme
	roof   bool
	props  []Prop
	nodes  []*mesh.Node
	stats  *Stats
}

func (s *synthesizer) emit(node *mesh.Node) {
	s.nodes = append(s.nodes, node)
}

func (s *synthesizer) run() []*mesh.Node {
	for floor, plan := range s.list.Plans {
		s.emitFloorTiles(floor, plan)
		s.emitFloorSkirts(floor, plan)
		s.emitWalls(floor, plan)
	}
	s.emitStair()
	s.emitRoof()
	s.emitProps()
	return s.nodes
}

// dirVec maps a compass side to a grid direction.
func dirVec(side recipe.Side) (dx, dy int) {
	switch side {
	case recipe.North:
		return 0, -1
	case recipe.South:
		return 0, 1
	case recipe.West:
		return -1, 0
	default:
		return 1, 0
	}
}

func (s *synthesizer) emitFloorTiles(floor int, plan *layout.FloorPlan) {
	base := float64(floor) * floorHeight
	stair := s.list.Stair
	for y := 0; y < plan.Grid.Height; y++ {
		for x := 0; x < plan.Grid.Width; x++ {
			c := layout.Cell{X: x, Y: y}
			if !plan.Grid.At(c) {
				continue
			}
			x0, z0 := float64(x)*cellSize, float64(y)*cellSize
			x1, z1 := x0+cellSize, z0+cellSize
			name := fmt.Sprintf("floor-%d-%d-%d", floor, x, y)

			if stair != nil && floor == 1 && c == stair.Landing {
				// the stair rises through this tile: two strips flanking
				// the stair footprint
				if stair.Dir == recipe.East || stair.Dir == recipe.West {
					zc := (z0 + z1) / 2
					s.emit(mesh.NewBox(name+"-a",
						mesh.Vec3{X: x0, Y: base, Z: z0},
						mesh.Vec3{X: x1, Y: base + floorThickness, Z: zc - stairWidth/2},
						mesh.RoleFloor, s.scheme))
					s.emit(mesh.NewBox(name+"-b",
						mesh.Vec3{X: x0, Y: base, Z: zc + stairWidth/2},
						mesh.Vec3{X: x1, Y: base + floorThickness, Z: z1},
						mesh.RoleFloor, s.scheme))
				} else {
					xc := (x0 + x1) / 2
					s.emit(mesh.NewBox(name+"-a",
						mesh.Vec3{X: x0, Y: base, Z: z0},
						mesh.Vec3{X: xc - stairWidth/2, Y: base + floorThickness, Z: z1},
						mesh.RoleFloor, s.scheme))
					s.emit(mesh.NewBox(name+"-b",
						mesh.Vec3{X: xc + stairWidth/2, Y: base, Z: z0},
						mesh.Vec3{X: x1, Y: base + floorThickness, Z: z1},
						mesh.RoleFloor, s.scheme))
				}
			} else {
				s.emit(mesh.NewBox(name,
					mesh.Vec3{X: x0, Y: base, Z: z0},
					mesh.Vec3{X: x1, Y: base + floorThickness, Z: z1},
					mesh.RoleFloor, s.scheme))
			}
			s.stats.FloorTiles++
		}
	}
}

// emitFloorSkirts closes the exposed slab edges with thin boundary strips.
func (s *synthesizer) emitFloorSkirts(floor int, plan *layout.FloorPlan) {
	base := float64(floor) * floorHeight
	for y := 0; y < plan.Grid.Height; y++ {
		for x := 0; x < plan.Grid.Width; x++ {
			c := layout.Cell{X: x, Y: y}
			if !plan.Grid.At(c) {
				continue
			}
			for _, side := range recipe.Sides {
				if plan.Grid.At(c.Step(side)) {
					continue
				}
				minV, maxV := edgeSlab(c, side, base-skirtDrop, base+floorThickness)
				s.emit(mesh.NewBox(fmt.Sprintf("skirt-%d-%d-%d-%s", floor, x, y, side),
					minV, maxV, mesh.RoleSkirt, s.scheme))
			}
		}
	}
}

// edgeSlab returns the box extents of a thickness-wide slab centered on the
// given cell edge, spanning [y0, y1] vertically.
func edgeSlab(c layout.Cell, side recipe.Side, y0, y1 float64) (mesh.Vec3, mesh.Vec3) {
	x0, z0 := float64(c.X)*cellSize, float64(c.Y)*cellSize
	x1, z1 := x0+cellSize, z0+cellSize
	switch side {
	case recipe.North:
		return mesh.Vec3{X: x0, Y: y0, Z: z0 - wallThickness/2},
			mesh.Vec3{X: x1, Y: y1, Z: z0 + wallThickness/2}
	case recipe.South:
		return mesh.Vec3{X: x0, Y: y0, Z: z1 - wallThickness/2},
			mesh.Vec3{X: x1, Y: y1, Z: z1 + wallThickness/2}
	case recipe.West:
		return mesh.Vec3{X: x0 - wallThickness/2, Y: y0, Z: z0},
			mesh.Vec3{X: x0 + wallThickness/2, Y: y1, Z: z1}
	default:
		return mesh.Vec3{X: x1 - wallThickness/2, Y: y0, Z: z0},
			mesh.Vec3{X: x1 + wallThickness/2, Y: y1, Z: z1}
	}
}

func (s *synthesizer) emitWalls(floor int, plan *layout.FloorPlan) {
	for y := 0; y < plan.Grid.Height; y++ {
		for x := 0; x < plan.Grid.Width; x++ {
			c := layout.Cell{X: x, Y: y}
			if !plan.Grid.At(c) {
				continue
			}
			// internal walls once per edge, from the canonical cell
			for _, side := range []recipe.Side{recipe.East, recipe.South} {
				n := c.Step(side)
				if !plan.Grid.At(n) {
					continue
				}
				if plan.RoomOf[c] == plan.RoomOf[n] {
					continue
				}
				var opening *layout.OpeningKind
				if kind, ok := plan.Internal[layout.PairOf(c, n)]; ok {
					opening = &kind
				}
				s.emitWall(floor, plan, c, side, opening, false)
			}
			// exterior walls always
			for _, side := range recipe.Sides {
				if plan.Grid.At(c.Step(side)) {
					continue
				}
				var opening *layout.OpeningKind
				if kind, ok := plan.External[layout.EdgeAddress{Cell: c, Side: side}]; ok {
					opening = &kind
				}
				s.emitWall(floor, plan, c, side, opening, true)
			}
		}
	}
}

// gapFor sizes the opening gap per kind, capped so both side blocks keep
// their minimum width.
func gapFor(kind layout.OpeningKind) float64 {
	var gap float64
	switch kind {
	case layout.Window:
		gap = windowGap
	case layout.Arch:
		gap = archGap
	default:
		gap = doorGap
	}
	if limit := cellSize - 2*minSideBlock; gap > limit {
		gap = limit
	}
	return gap
}

// emitWall builds one wall primitive on the given cell edge, with the
// opening cut in if present. Exterior corner walls are mitered: the run is
// extended by half the wall thickness where the adjoining corner edge is
// also exterior.
func (s *synthesizer) emitWall(floor int, plan *layout.FloorPlan, c layout.Cell, side recipe.Side, opening *layout.OpeningKind, external bool) {
	s.stats.WallSegments++

	base := float64(floor)*floorHeight + floorThickness
	top := float64(floor+1) * floorHeight

	// run axis and boundary line
	alongX := side == recipe.North || side == recipe.South
	var boundary, run0, run1 float64
	if alongX {
		if side == recipe.North {
			boundary = float64(c.Y) * cellSize
		} else {
			boundary = float64(c.Y+1) * cellSize
		}
		run0 = float64(c.X) * cellSize
		run1 = run0 + cellSize
	} else {
		if side == recipe.West {
			boundary = float64(c.X) * cellSize
		} else {
			boundary = float64(c.X+1) * cellSize
		}
		run0 = float64(c.Y) * cellSize
		run1 = run0 + cellSize
	}

	if external {
		startSide, endSide := recipe.West, recipe.East
		if !alongX {
			startSide, endSide = recipe.North, recipe.South
		}
		if !plan.Grid.At(c.Step(startSide)) {
			run0 -= wallThickness / 2
		}
		if !plan.Grid.At(c.Step(endSide)) {
			run1 += wallThickness / 2
		}
	}

	name := fmt.Sprintf("wall-%d-%d-%d-%s", floor, c.X, c.Y, side)
	box := func(suffix string, r0, r1, y0, y1 float64, role mesh.Role) {
		if r1 <= r0 || y1 <= y0 {
			return
		}
		var minV, maxV mesh.Vec3
		if alongX {
			minV = mesh.Vec3{X: r0, Y: y0, Z: boundary - wallThickness/2}
			maxV = mesh.Vec3{X: r1, Y: y1, Z: boundary + wallThickness/2}
		} else {
			minV = mesh.Vec3{X: boundary - wallThickness/2, Y: y0, Z: r0}
			maxV = mesh.Vec3{X: boundary + wallThickness/2, Y: y1, Z: r1}
		}
		s.emit(mesh.NewBox(name+suffix, minV, maxV, role, s.scheme))
	}

	if opening == nil {
		box("", run0, run1, base, top, mesh.RoleWall)
		return
	}

	gap := gapFor(*opening)
	center := centerOfRun(c, alongX)
	g0, g1 := center-gap/2, center+gap/2
	box("-l", run0, g0, base, top, mesh.RoleWall)
	box("-r", g1, run1, base, top, mesh.RoleWall)

	switch *opening {
	case layout.Window:
		box("-sill", g0, g1, base, base+sillHeight, mesh.RoleTrim)
		box("-head", g0, g1, base+headHeight, top, mesh.RoleTrim)
	case layout.Door:
		box("-lintel", g0, g1, base+doorHeight, top, mesh.RoleTrim)
	case layout.Arch:
		spring := base + archSpring
		var cx, cz float64
		if alongX {
			cx, cz = center, boundary
		} else {
			cx, cz = boundary, center
		}
		s.emit(mesh.NewArchCap(name+"-cap", cx, spring, cz, gap, wallThickness,
			alongX, mesh.RoleWall, s.scheme))
		box("-head", g0, g1, spring+gap/2, top, mesh.RoleWall)
	}
}

func centerOfRun(c layout.Cell, alongX bool) float64 {
	if alongX {
		return (float64(c.X) + 0.5) * cellSize
	}
	return (float64(c.Y) + 0.5) * cellSize
}

// emitStair builds the step run from the anchor cell up to the landing.
func (s *synthesizer) emitStair() {
	stair := s.list.Stair
	if stair == nil {
		return
	}

	steps := int(math.Round(floorHeight / stairStepRise))
	if steps < 6 {
		steps = 6
	}
	s.stats.StairSteps = steps

	baseTop := floorThickness
	rise := floorHeight / float64(steps)

	ax := (float64(stair.Anchor.X) + 0.5) * cellSize
	az := (float64(stair.Anchor.Y) + 0.5) * cellSize
	dx, dy := dirVec(stair.Dir)
	runLen := cellSize

	for i := 0; i < steps; i++ {
		s0 := float64(i) * runLen / float64(steps)
		s1 := float64(i+1) * runLen / float64(steps)
		topY := baseTop + float64(i+1)*rise

		var minV, maxV mesh.Vec3
		if dy == 0 {
			x0 := ax + float64(dx)*s0
			x1 := ax + float64(dx)*s1
			if x1 < x0 {
				x0, x1 = x1, x0
			}
			minV = mesh.Vec3{X: x0, Y: baseTop, Z: az - stairWidth/2}
			maxV = mesh.Vec3{X: x1, Y: topY, Z: az + stairWidth/2}
		} else {
			z0 := az + float64(dy)*s0
			z1 := az + float64(dy)*s1
			if z1 < z0 {
				z0, z1 = z1, z0
			}
			minV = mesh.Vec3{X: ax - stairWidth/2, Y: baseTop, Z: z0}
			maxV = mesh.Vec3{X: ax + stairWidth/2, Y: topY, Z: z1}
		}
		s.emit(mesh.NewBox(fmt.Sprintf("stair-step-%d", i), minV, maxV, mesh.RoleStair, s.scheme))
	}
}

// topFloorOf returns the highest floor index whose footprint occupies the
// cell, or -1.
func (s *synthesizer) topFloorOf(c layout.Cell) int {
	for f := len(s.list.Plans) - 1; f >= 0; f-- {
		if s.list.Plans[f].Grid.At(c) {
			return f
		}
	}
	return -1
}

// emitRoof covers the topmost occupied cell of every column with a flat
// block, skirted wherever the neighboring roof level is lower or absent.
// Cells below the top floor read as patios and keep their cover even when
// the main roof is disabled.
func (s *synthesizer) emitRoof() {
	if len(s.list.Plans) == 0 {
		return
	}
	ground := s.list.Plans[0].Grid
	topFloor := len(s.list.Plans) - 1

	for y := 0; y < ground.Height; y++ {
		for x := 0; x < ground.Width; x++ {
			c := layout.Cell{X: x, Y: y}
			t := s.topFloorOf(c)
			if t < 0 {
				continue
			}
			role := mesh.RoleRoof
			if t < topFloor {
				role = mesh.RolePatio
			} else if !s.roof {
				continue
			}

			roofBase := float64(t+1) * floorHeight
			x0, z0 := float64(x)*cellSize, float64(y)*cellSize
			s.emit(mesh.NewBox(fmt.Sprintf("roof-%d-%d", x, y),
				mesh.Vec3{X: x0, Y: roofBase, Z: z0},
				mesh.Vec3{X: x0 + cellSize, Y: roofBase + roofThickness, Z: z0 + cellSize},
				role, s.scheme))
			s.stats.RoofPieces++

			for _, side := range recipe.Sides {
				if s.topFloorOf(c.Step(side)) >= t {
					continue
				}
				minV, maxV := edgeSlab(c, side, roofBase-roofFascia, roofBase+roofThickness)
				s.emit(mesh.NewBox(fmt.Sprintf("roof-skirt-%d-%d-%s", x, y, side),
					minV, maxV, role, s.scheme))
			}
		}
	}
}

func (s *synthesizer) emitProps() {
	for i, prop := range s.props {
		s.stats.Props++
		cx := (float64(prop.Cell.X) + 0.5) * cellSize
		cz := (float64(prop.Cell.Y) + 0.5) * cellSize

		// inward offset direction away from the backing wall
		ix, iz := 0.0, 0.0
		if prop.Edge != nil {
			dx, dy := dirVec(prop.Edge.Side)
			ix, iz = -float64(dx), -float64(dy)
		}
		wallX := cx - ix*cellSize/2
		wallZ := cz - iz*cellSize/2

		name := fmt.Sprintf("prop-%d-%s", i, prop.Kind)
		switch prop.Kind {
		case PropCounter:
			s.emitPropBox(name, wallX, wallZ, ix, iz,
				counterClearance, 0.5, 1.4, floorThickness, 1.0, mesh.RoleCounter)
		case PropAttendant:
			// the attendant stands in the clearance gap behind the counter
			s.emitPropBox(name+"-body", wallX, wallZ, ix, iz,
				0.1, 0.4, 0.45, floorThickness, 1.4, mesh.RoleAttendant)
			s.emitPropBox(name+"-head", wallX, wallZ, ix, iz,
				0.175, 0.25, 0.25, floorThickness+1.4, floorThickness+1.75, mesh.RoleAttendant)
		case PropForge:
			s.emitPropBox(name, wallX, wallZ, ix, iz,
				0.1, 1.2, 1.2, floorThickness, 1.1, mesh.RoleForge)
		case PropAnvil:
			s.emit(mesh.NewBox(name+"-base",
				mesh.Vec3{X: cx - 0.2, Y: floorThickness, Z: cz - 0.2},
				mesh.Vec3{X: cx + 0.2, Y: floorThickness + 0.4, Z: cz + 0.2},
				mesh.RoleAnvil, s.scheme))
			s.emit(mesh.NewBox(name+"-top",
				mesh.Vec3{X: cx - 0.35, Y: floorThickness + 0.4, Z: cz - 0.15},
				mesh.Vec3{X: cx + 0.35, Y: floorThickness + 0.65, Z: cz + 0.15},
				mesh.RoleAnvil, s.scheme))
		}
	}
}

// emitPropBox places a box at `gap..gap+depth` inward from the wall point,
// `width` wide along the wall, between heights y0 and y1. With no backing
// wall (ix=iz=0) the box centers on the cell.
func (s *synthesizer) emitPropBox(name string, wallX, wallZ, ix, iz, gap, depth, width, y0, y1 float64, role mesh.Role) {
	if ix == 0 && iz == 0 {
		s.emit(mesh.NewBox(name,
			mesh.Vec3{X: wallX - width/2, Y: y0, Z: wallZ - depth/2},
			mesh.Vec3{X: wallX + width/2, Y: y1, Z: wallZ + depth/2},
			role, s.scheme))
		return
	}
	var minV, maxV mesh.Vec3
	if ix != 0 {
		x0 := wallX + ix*gap
		x1 := wallX + ix*(gap+depth)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		minV = mesh.Vec3{X: x0, Y: y0, Z: wallZ - width/2}
		maxV = mesh.Vec3{X: x1, Y: y1, Z: wallZ + width/2}
	} else {
		z0 := wallZ + iz*gap
		z1 := wallZ + iz*(gap+depth)
		if z1 < z0 {
			z0, z1 = z1, z0
		}
		minV = mesh.Vec3{X: wallX - width/2, Y: y0, Z: z0}
		maxV = mesh.Vec3{X: wallX + width/2, Y: y1, Z: z1}
	}
	s.emit(mesh.NewBox(name, minV, maxV, role, s.scheme))
}
