package layout

import (
	"sort"

	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

// PartitionRooms decomposes a footprint's occupied cells into rectangular
// rooms by greedy row-major packing, then merges undersized rooms into
// their most-adjacent neighbor. Every occupied cell ends up in exactly one
// room.
func PartitionRooms(grid *Footprint, rec *recipe.Recipe, stream *rng.Stream) ([]Room, map[Cell]int) {
	roomOf := make(map[Cell]int)
	nextID := 0

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			seed := Cell{x, y}
			if !grid.At(seed) {
				continue
			}
			if _, taken := roomOf[seed]; taken {
				continue
			}

			maxRunX := freeRun(grid, roomOf, seed, recipe.East)
			maxRunY := freeRun(grid, roomOf, seed, recipe.South)
			spanX := stream.Int(rec.RoomSpan.Min, minInt(maxRunX, rec.RoomSpan.Max))
			spanY := stream.Int(rec.RoomSpan.Min, minInt(maxRunY, rec.RoomSpan.Max))

			for retry := 0; retry < 6 && spanConflicts(grid, roomOf, seed, spanX, spanY); retry++ {
				// shed a cell off the larger axis and try again
				if spanX >= spanY && spanX > 1 {
					spanX--
				} else if spanY > 1 {
					spanY--
				} else {
					break
				}
			}
			if spanConflicts(grid, roomOf, seed, spanX, spanY) {
				spanX, spanY = 1, 1
			}

			for dy := 0; dy < spanY; dy++ {
				for dx := 0; dx < spanX; dx++ {
					roomOf[Cell{seed.X + dx, seed.Y + dy}] = nextID
				}
			}
			nextID++
		}
	}

	rooms := collectRooms(grid, roomOf, nextID)
	rooms, roomOf = mergeSmallRooms(grid, rooms, roomOf, rec.MinRoomArea)
	return rooms, roomOf
}

// freeRun measures the contiguous run of occupied, unassigned cells from c
// (inclusive) toward side.
func freeRun(grid *Footprint, roomOf map[Cell]int, c Cell, side recipe.Side) int {
	run := 0
	for grid.At(c) {
		if _, taken := roomOf[c]; taken {
			break
		}
		run++
		c = c.Step(side)
	}
	return run
}

func spanConflicts(grid *Footprint, roomOf map[Cell]int, seed Cell, spanX, spanY int) bool {
	for dy := 0; dy < spanY; dy++ {
		for dx := 0; dx < spanX; dx++ {
			c := Cell{seed.X + dx, seed.Y + dy}
			if !grid.At(c) {
				return true
			}
			if _, taken := roomOf[c]; taken {
				return true
			}
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// collectRooms materializes Room records from the cell->id map, in row-major
// cell order per room.
func collectRooms(grid *Footprint, roomOf map[Cell]int, roomCount int) []Room {
	rooms := make([]Room, roomCount)
	for id := range rooms {
		rooms[id] = Room{ID: id, MinX: grid.Width, MinY: grid.Height, MaxX: -1, MaxY: -1}
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := Cell{x, y}
			id, ok := roomOf[c]
			if !ok {
				continue
			}
			r := &rooms[id]
			r.Cells = append(r.Cells, c)
			if c.X < r.MinX {
				r.MinX = c.X
			}
			if c.X > r.MaxX {
				r.MaxX = c.X
			}
			if c.Y < r.MinY {
				r.MinY = c.Y
			}
			if c.Y > r.MaxY {
				r.MaxY = c.Y
			}
		}
	}
	return rooms
}

// mergeSmallRooms folds rooms below minArea into the adjacent room sharing
// the most boundary contacts, repeating until nothing mergeable remains,
// then renumbers ids densely.
func mergeSmallRooms(grid *Footprint, rooms []Room, roomOf map[Cell]int, minArea int) ([]Room, map[Cell]int) {
	alive := make(map[int]bool, len(rooms))
	for _, r := range rooms {
		alive[r.ID] = true
	}

	for {
		merged := false
		ids := aliveIDs(alive)
		for _, id := range ids {
			if !alive[id] {
				continue
			}
			if areaOf(roomOf, id) >= minArea {
				continue
			}
			target, contacts := bestNeighbor(grid, roomOf, id)
			if contacts == 0 {
				continue
			}
			for c, rid := range roomOf {
				if rid == id {
					roomOf[c] = target
				}
			}
			alive[id] = false
			merged = true
		}
		if !merged {
			break
		}
	}

	// dense renumbering in old-id order
	remap := make(map[int]int)
	for _, id := range aliveIDs(alive) {
		if alive[id] {
			remap[id] = len(remap)
		}
	}
	for c, id := range roomOf {
		roomOf[c] = remap[id]
	}
	return collectRooms(grid, roomOf, len(remap)), roomOf
}

func aliveIDs(alive map[int]bool) []int {
	ids := make([]int, 0, len(alive))
	for id := range alive {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func areaOf(roomOf map[Cell]int, id int) int {
	n := 0
	for _, rid := range roomOf {
		if rid == id {
			n++
		}
	}
	return n
}

// bestNeighbor returns the adjacent room id sharing the most boundary-cell
// contacts with room id, ties going to the lower room id.
func bestNeighbor(grid *Footprint, roomOf map[Cell]int, id int) (int, int) {
	contacts := make(map[int]int)
	for c, rid := range roomOf {
		if rid != id {
			continue
		}
		for _, side := range recipe.Sides {
			n := c.Step(side)
			if other, ok := roomOf[n]; ok && other != id {
				contacts[other]++
			}
		}
	}
	bestID, bestCount := -1, 0
	for _, other := range sortedKeys(contacts) {
		if contacts[other] > bestCount {
			bestID, bestCount = other, contacts[other]
		}
	}
	return bestID, bestCount
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
