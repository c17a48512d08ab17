package layout

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

// floorArchBias decays the recipe arch bias by 0.15 per floor above ground,
// clamped to [0.1, 0.9].
func floorArchBias(rec *recipe.Recipe, floor int) float64 {
	bias := rec.ArchBias - 0.15*float64(floor)
	if bias < 0.1 {
		bias = 0.1
	}
	if bias > 0.9 {
		bias = 0.9
	}
	return bias
}

// floorExtraChance damps the extra-connection chance above ground.
func floorExtraChance(rec *recipe.Recipe, floor int) float64 {
	if floor > 0 {
		return rec.ExtraConnectionChance * 0.7
	}
	return rec.ExtraConnectionChance
}

// floorWindowChance damps the window chance above ground.
func floorWindowChance(rec *recipe.Recipe, floor int) float64 {
	if floor > 0 {
		return rec.WindowChance * 0.7
	}
	return rec.WindowChance
}

type roomPair struct {
	A, B int
}

func pairRooms(a, b int) roomPair {
	if b < a {
		a, b = b, a
	}
	return roomPair{a, b}
}

type edgeGroup struct {
	rooms roomPair
	edges []CellPair
}

// adjacentRoomGroups collects every orthogonally touching cell pair that
// crosses a room boundary, grouped per room pair in first-encounter order.
func adjacentRoomGroups(plan *FloorPlan) []*edgeGroup {
	index := make(map[roomPair]*edgeGroup)
	var order []*edgeGroup
	grid := plan.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := Cell{x, y}
			a, ok := plan.RoomOf[c]
			if !ok {
				continue
			}
			for _, side := range []recipe.Side{recipe.East, recipe.South} {
				n := c.Step(side)
				b, ok := plan.RoomOf[n]
				if !ok || a == b {
					continue
				}
				rp := pairRooms(a, b)
				group, seen := index[rp]
				if !seen {
					group = &edgeGroup{rooms: rp}
					index[rp] = group
					order = append(order, group)
				}
				group.edges = append(group.edges, PairOf(c, n))
			}
		}
	}
	return order
}

// unionFind is a plain path-compressing disjoint set over room ids.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	uf.parent[ra] = rb
	return true
}

// SelectInternalOpenings chooses the doors and arches between rooms on one
// floor. A spanning pass over shuffled room-pair edge groups guarantees
// every room is reachable from every other; a second pass offers the
// redundant groups as optional extra connections.
func SelectInternalOpenings(plan *FloorPlan, rec *recipe.Recipe, floor int, stream *rng.Stream) {
	plan.Internal = make(map[CellPair]OpeningKind)
	if len(plan.Rooms) < 2 {
		return
	}

	groups := adjacentRoomGroups(plan)
	rng.Shuffle(stream, groups)

	bias := floorArchBias(rec, floor)
	uf := newUnionFind(len(plan.Rooms))

	var redundant []*edgeGroup
	for _, group := range groups {
		if !uf.union(group.rooms.A, group.rooms.B) {
			redundant = append(redundant, group)
			continue
		}
		edge, _ := rng.Pick(stream, group.edges)
		plan.Internal[edge] = drawDoorOrArch(stream, bias)
	}

	extra := floorExtraChance(rec, floor)
	for _, group := range redundant {
		if !stream.Chance(extra) {
			continue
		}
		edge, _ := rng.Pick(stream, group.edges)
		if _, taken := plan.Internal[edge]; !taken {
			plan.Internal[edge] = drawDoorOrArch(stream, bias)
		}
	}
}

func drawDoorOrArch(stream *rng.Stream, archBias float64) OpeningKind {
	if stream.Chance(archBias) {
		return Arch
	}
	return Door
}

// exteriorEdges lists every occupied-cell edge facing outside the
// footprint, in row-major cell order with fixed side order.
func exteriorEdges(grid *Footprint) []EdgeAddress {
	var out []EdgeAddress
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := Cell{x, y}
			if !grid.At(c) {
				continue
			}
			for _, side := range recipe.Sides {
				if !grid.At(c.Step(side)) {
					out = append(out, EdgeAddress{Cell: c, Side: side})
				}
			}
		}
	}
	return out
}

// entranceRoom picks the room holding ground-floor entrances: the room
// containing the most foyer cells, else the largest room.
func entranceRoom(plan *FloorPlan, foyerCells mapset.Set[Cell]) int {
	bestID := -1
	if foyerCells.Size() > 0 {
		counts := make(map[int]int)
		foyerCells.Each(func(c Cell) {
			if id, ok := plan.RoomOf[c]; ok {
				counts[id]++
			}
		})
		best := 0
		for _, id := range sortedKeys(counts) {
			if counts[id] > best {
				bestID, best = id, counts[id]
			}
		}
		if bestID >= 0 {
			return bestID
		}
	}
	best := 0
	for _, r := range plan.Rooms {
		if r.Area() > best {
			bestID, best = r.ID, r.Area()
		}
	}
	return bestID
}

// SelectExternalOpenings places entrances (ground floor) and windows on the
// exterior edges of one floor. Stair anchor and landing cells never receive
// windows.
func SelectExternalOpenings(plan *FloorPlan, rec *recipe.Recipe, floor int, front recipe.Side, foyerCells mapset.Set[Cell], stair *StairPlacement, stream *rng.Stream) {
	plan.External = make(map[EdgeAddress]OpeningKind)
	edges := exteriorEdges(plan.Grid)
	if len(edges) == 0 {
		return
	}

	if floor == 0 {
		placeEntrances(plan, rec, front, foyerCells, edges, stream)
	}

	stairCells := mapset.New[Cell]()
	if stair != nil {
		stairCells.Put(stair.Anchor)
		stairCells.Put(stair.Landing)
	}

	windowChance := floorWindowChance(rec, floor)
	for _, edge := range edges {
		if _, taken := plan.External[edge]; taken {
			continue
		}
		if stairCells.Has(edge.Cell) {
			continue
		}
		if stream.Chance(windowChance) {
			plan.External[edge] = Window
		}
	}
}

func placeEntrances(plan *FloorPlan, rec *recipe.Recipe, front recipe.Side, foyerCells mapset.Set[Cell], edges []EdgeAddress, stream *rng.Stream) {
	roomID := entranceRoom(plan, foyerCells)

	var frontEdges, roomEdges []EdgeAddress
	for _, edge := range edges {
		if plan.RoomOf[edge.Cell] != roomID {
			continue
		}
		roomEdges = append(roomEdges, edge)
		if edge.Side == front {
			frontEdges = append(frontEdges, edge)
		}
	}

	candidates := frontEdges
	if len(candidates) == 0 {
		candidates = roomEdges
	}
	if len(candidates) == 0 {
		candidates = edges
	}

	pool := make([]EdgeAddress, len(candidates))
	copy(pool, candidates)
	rng.Shuffle(stream, pool)

	count := rec.Entrances
	if count > len(pool) {
		count = len(pool)
	}
	for i := 0; i < count; i++ {
		kind := Door
		if stream.Chance(rec.EntranceArchChance) {
			kind = Arch
		}
		plan.External[pool[i]] = kind
	}
}

// SelectPatioDoors may convert some patio edges of an upper floor into
// doors. A patio edge is an exterior edge whose outside cell sits over an
// occupied, uncovered cell of the floor below.
func SelectPatioDoors(plan *FloorPlan, below *Footprint, rec *recipe.Recipe, stream *rng.Stream) {
	if rec.PatioDoorChance <= 0 {
		return
	}
	var patio []EdgeAddress
	for _, edge := range exteriorEdges(plan.Grid) {
		outside := edge.Cell.Step(edge.Side)
		if below.At(outside) && !plan.Grid.At(outside) {
			patio = append(patio, edge)
		}
	}
	if len(patio) == 0 || !stream.Chance(rec.PatioDoorChance) {
		return
	}
	count := stream.Int(rec.PatioDoorCount.Min, rec.PatioDoorCount.Max)
	rng.Shuffle(stream, patio)
	if count > len(patio) {
		count = len(patio)
	}
	for i := 0; i < count; i++ {
		plan.External[patio[i]] = Door
	}
}
