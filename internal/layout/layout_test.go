package layout

import (
	"fmt"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

func testRecipe(t *testing.T, key string) *recipe.Recipe {
	t.Helper()
	rec, err := recipe.Builtin().Get(key)
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func seeds(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("seed-%d", i)
	}
	return out
}

func TestFootprintFullyOccupiedWithoutCarve(t *testing.T) {
	rec := *testRecipe(t, "simple-house")
	rec.CarveChance = 0
	fp := GenerateFootprint(&rec, rng.New("plain"))
	if fp.Grid.Count() != fp.Grid.Width*fp.Grid.Height {
		t.Fatalf("uncarved rectangle should be full: %d of %d",
			fp.Grid.Count(), fp.Grid.Width*fp.Grid.Height)
	}
	if fp.Grid.Width < rec.Width.Min || fp.Grid.Width > rec.Width.Max {
		t.Fatalf("width %d outside recipe range", fp.Grid.Width)
	}
}

func TestCarveRejectedWhenTooDeep(t *testing.T) {
	// a 2x2 carve from a 3x3 footprint would drop below 60% retention
	rec := *testRecipe(t, "simple-house")
	rec.Width = recipe.IntRange{Min: 3, Max: 3}
	rec.Depth = recipe.IntRange{Min: 3, Max: 3}
	rec.CarveChance = 1.0
	rec.CarveSize = recipe.IntRange{Min: 2, Max: 2}
	for _, seed := range seeds(25) {
		fp := GenerateFootprint(&rec, rng.New(seed))
		if fp.Grid.Count() != 9 {
			t.Fatalf("seed %s: over-deep carve committed, %d cells kept", seed, fp.Grid.Count())
		}
	}
}

func TestCarveCommitsWhenShallow(t *testing.T) {
	rec := *testRecipe(t, "simple-house")
	rec.Width = recipe.IntRange{Min: 6, Max: 6}
	rec.Depth = recipe.IntRange{Min: 6, Max: 6}
	rec.CarveChance = 1.0
	rec.CarveSize = recipe.IntRange{Min: 2, Max: 2}
	carved := false
	for _, seed := range seeds(25) {
		fp := GenerateFootprint(&rec, rng.New(seed))
		if fp.Grid.Count() == 32 {
			carved = true
		}
		if fp.Grid.Count() != 32 && fp.Grid.Count() != 36 {
			t.Fatalf("seed %s: unexpected cell count %d", seed, fp.Grid.Count())
		}
	}
	if !carved {
		t.Fatal("carve at probability 1.0 never committed")
	}
}

func TestFoyerCellsTracked(t *testing.T) {
	rec := testRecipe(t, "church")
	fp := GenerateFootprint(rec, rng.New("church-1"))
	if fp.FoyerCells.Size() == 0 {
		t.Fatal("church recipe produced no foyer cells")
	}
	fp.FoyerCells.Each(func(c Cell) {
		if !fp.Grid.At(c) {
			t.Errorf("foyer cell %v not occupied", c)
		}
		if c.Y < fp.MainDepth {
			t.Errorf("foyer cell %v inside the main block", c)
		}
	})
	if fp.Front != recipe.South {
		t.Fatalf("foyer building front should face the foyer, got %s", fp.Front)
	}
}

func TestPartitionCoversEveryCellExactlyOnce(t *testing.T) {
	for _, key := range []string{"simple-house", "house", "inn", "bank", "church"} {
		rec := testRecipe(t, key)
		for _, seed := range seeds(10) {
			stream := rng.New(key + seed)
			fp := GenerateFootprint(rec, stream)
			rooms, roomOf := PartitionRooms(fp.Grid, rec, stream)

			assigned := 0
			for y := 0; y < fp.Grid.Height; y++ {
				for x := 0; x < fp.Grid.Width; x++ {
					c := Cell{x, y}
					id, ok := roomOf[c]
					if fp.Grid.At(c) != ok {
						t.Fatalf("%s/%s: cell %v occupied=%v assigned=%v", key, seed, c, fp.Grid.At(c), ok)
					}
					if ok {
						assigned++
						if id < 0 || id >= len(rooms) {
							t.Fatalf("%s/%s: cell %v has out-of-range room id %d", key, seed, c, id)
						}
					}
				}
			}
			total := 0
			for _, r := range rooms {
				if r.ID != rooms[r.ID].ID {
					t.Fatalf("%s/%s: room ids not dense", key, seed)
				}
				total += r.Area()
			}
			if total != assigned || assigned != fp.Grid.Count() {
				t.Fatalf("%s/%s: rooms cover %d cells, %d assigned, %d occupied",
					key, seed, total, assigned, fp.Grid.Count())
			}
		}
	}
}

func TestSmallRoomsMerged(t *testing.T) {
	rec := testRecipe(t, "inn")
	for _, seed := range seeds(10) {
		stream := rng.New("merge" + seed)
		fp := GenerateFootprint(rec, stream)
		rooms, roomOf := PartitionRooms(fp.Grid, rec, stream)
		for _, r := range rooms {
			if r.Area() >= rec.MinRoomArea {
				continue
			}
			// undersized rooms may only survive with no mergeable neighbor
			if _, contacts := bestNeighbor(fp.Grid, roomOf, r.ID); contacts > 0 {
				t.Fatalf("seed %s: room %d area %d kept despite neighbor", seed, r.ID, r.Area())
			}
		}
	}
}

func roomsConnected(plan *FloorPlan) bool {
	if len(plan.Rooms) < 2 {
		return true
	}
	adj := make(map[int][]int)
	for pair := range plan.Internal {
		a, aok := plan.RoomOf[pair.A]
		b, bok := plan.RoomOf[pair.B]
		if !aok || !bok || a == b {
			continue
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	seen := map[int]bool{plan.Rooms[0].ID: true}
	queue := []int{plan.Rooms[0].ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen) == len(plan.Rooms)
}

func TestInternalOpeningsConnectAllRooms(t *testing.T) {
	for _, key := range []string{"simple-house", "house", "inn", "bank", "church"} {
		rec := testRecipe(t, key)
		for _, seed := range seeds(15) {
			stream := rng.New(key + "conn" + seed)
			list := Assemble(rec, stream)
			for floor, plan := range list.Plans {
				if !roomsConnected(plan) {
					t.Fatalf("%s/%s floor %d: rooms not fully connected", key, seed, floor)
				}
			}
		}
	}
}

func TestUpperFloorContainment(t *testing.T) {
	rec := testRecipe(t, "inn")
	for _, seed := range seeds(20) {
		list := Assemble(rec, rng.New("contain"+seed))
		if list.Floors < 2 {
			continue
		}
		lower, upper := list.Plans[0].Grid, list.Plans[1].Grid
		for y := 0; y < upper.Height; y++ {
			for x := 0; x < upper.Width; x++ {
				c := Cell{x, y}
				if upper.At(c) && !lower.At(c) {
					t.Fatalf("seed %s: upper cell %v unsupported", seed, c)
				}
			}
		}
	}
}

func TestStairValidity(t *testing.T) {
	rec := testRecipe(t, "inn")
	sawStair := false
	for _, seed := range seeds(20) {
		list := Assemble(rec, rng.New("stairs"+seed))
		if list.Stair == nil {
			if list.Floors != 1 {
				t.Fatalf("seed %s: %d floors without a stair", seed, list.Floors)
			}
			continue
		}
		sawStair = true
		if list.Floors != 2 {
			t.Fatalf("seed %s: stair on a %d-floor building", seed, list.Floors)
		}
		st := list.Stair
		lower, upper := list.Plans[0].Grid, list.Plans[1].Grid
		if !lower.At(st.Anchor) || !upper.At(st.Landing) {
			t.Fatalf("seed %s: stair cells unoccupied: %+v", seed, st)
		}
		if st.Anchor.Step(st.Dir) != st.Landing {
			t.Fatalf("seed %s: landing not one step from anchor: %+v", seed, st)
		}
		if lower.OccupiedNeighbors(st.Anchor) < 2 || upper.OccupiedNeighbors(st.Landing) < 2 {
			t.Fatalf("seed %s: stair in a dead-end corridor: %+v", seed, st)
		}
		key := PairOf(st.Anchor, st.Landing)
		for floor, plan := range list.Plans {
			if plan.Internal[key] != Arch {
				t.Fatalf("seed %s: floor %d missing stair arch opening", seed, floor)
			}
		}
	}
	if !sawStair {
		t.Fatal("no seed produced a two-floor inn")
	}
}

func TestGenerateUpperKeepsProtectedCells(t *testing.T) {
	rec := *testRecipe(t, "inn")
	rec.UpperCarveChance = 1.0
	base := NewFootprint(9, 8)
	for i := range base.Cells {
		base.Cells[i] = true
	}
	protected := mapset.New[Cell]()
	protected.Put(Cell{4, 4})
	protected.Put(Cell{4, 3})
	for _, seed := range seeds(20) {
		upper, ok := GenerateUpper(base, &rec, rng.New("protect"+seed), protected, false)
		if !ok {
			continue
		}
		protected.Each(func(c Cell) {
			if !upper.At(c) {
				t.Fatalf("seed %s: protected cell %v carved away", seed, c)
			}
		})
	}
}

func TestGenerateUpperInfeasibleOnTinyBase(t *testing.T) {
	rec := *testRecipe(t, "inn")
	base := NewFootprint(2, 2)
	for i := range base.Cells {
		base.Cells[i] = true
	}
	if _, ok := GenerateUpper(base, &rec, rng.New("tiny"), mapset.New[Cell](), true); ok {
		t.Fatal("2x2 base should not support an inn upper floor")
	}
}

func TestFindStairRejectsCorridors(t *testing.T) {
	// only the middle cell of a 3x1 strip has two neighbors, and both of
	// its landing options are dead ends
	lower := NewFootprint(3, 1)
	for i := range lower.Cells {
		lower.Cells[i] = true
	}
	upper := lower.Clone()
	if FindStair(lower, upper, rng.New("strip")) != nil {
		t.Fatal("stair placed in a dead-end corridor")
	}
}

func TestFindStairPrefersCenter(t *testing.T) {
	lower := NewFootprint(7, 7)
	for i := range lower.Cells {
		lower.Cells[i] = true
	}
	upper := lower.Clone()
	st := FindStair(lower, upper, rng.New("center"))
	if st == nil {
		t.Fatal("no stair found on a full 7x7 grid")
	}
	if st.Anchor.X < 2 || st.Anchor.X > 4 || st.Anchor.Y < 2 || st.Anchor.Y > 4 {
		t.Fatalf("stair anchor %v far from center", st.Anchor)
	}
}

func TestEntrancePlacedOnGroundFloor(t *testing.T) {
	rec := testRecipe(t, "simple-house")
	for _, seed := range seeds(15) {
		list := Assemble(rec, rng.New("door"+seed))
		doors := 0
		for _, kind := range list.Plans[0].External {
			if kind == Door || kind == Arch {
				doors++
			}
		}
		if doors < rec.Entrances {
			t.Fatalf("seed %s: %d entrances placed, want >= %d", seed, doors, rec.Entrances)
		}
	}
}

func TestEntrancePrefersFrontSide(t *testing.T) {
	rec := *testRecipe(t, "simple-house")
	rec.CarveChance = 0
	rec.WindowChance = 0
	rec.EntranceArchChance = 0
	// force a single room so the entrance room touches every side
	rec.MinRoomArea = 99
	list := Assemble(&rec, rng.New("front-door"))
	found := false
	for edge, kind := range list.Plans[0].External {
		if kind != Door {
			continue
		}
		found = true
		if edge.Side != rec.FrontSide {
			t.Fatalf("entrance on %s, want front side %s", edge.Side, rec.FrontSide)
		}
	}
	if !found {
		t.Fatal("no entrance door placed")
	}
}

func TestAssembleDeterministic(t *testing.T) {
	for _, key := range []string{"simple-house", "inn", "church"} {
		rec := testRecipe(t, key)
		a := Assemble(rec, rng.New(key+"-det"))
		b := Assemble(rec, rng.New(key+"-det"))
		if a.Floors != b.Floors || a.Width != b.Width || a.Height != b.Height {
			t.Fatalf("%s: shape diverged", key)
		}
		for f := range a.Plans {
			pa, pb := a.Plans[f], b.Plans[f]
			for i, occ := range pa.Grid.Cells {
				if occ != pb.Grid.Cells[i] {
					t.Fatalf("%s floor %d: footprint diverged at %d", key, f, i)
				}
			}
			if len(pa.Internal) != len(pb.Internal) || len(pa.External) != len(pb.External) {
				t.Fatalf("%s floor %d: opening counts diverged", key, f)
			}
			for k, v := range pa.Internal {
				if pb.Internal[k] != v {
					t.Fatalf("%s floor %d: internal opening %v diverged", key, f, k)
				}
			}
			for k, v := range pa.External {
				if pb.External[k] != v {
					t.Fatalf("%s floor %d: external opening %v diverged", key, f, k)
				}
			}
			for c, id := range pa.RoomOf {
				if pb.RoomOf[c] != id {
					t.Fatalf("%s floor %d: room map diverged at %v", key, f, c)
				}
			}
		}
	}
}

func TestSimpleHouseScenario(t *testing.T) {
	rec := testRecipe(t, "simple-house")
	list := Assemble(rec, rng.New("house-1"))
	if list.Floors != 1 {
		t.Fatalf("simple-house should be single floor, got %d", list.Floors)
	}
	if len(list.Plans[0].Rooms) < 1 {
		t.Fatal("no rooms partitioned")
	}
	entrances := 0
	for _, kind := range list.Plans[0].External {
		if kind == Door || kind == Arch {
			entrances++
		}
	}
	if entrances < 1 {
		t.Fatal("no entrance placed")
	}
}

func TestPatioDoorsSitOnPatioEdges(t *testing.T) {
	rec := *testRecipe(t, "house")
	rec.Floors = recipe.IntRange{Min: 2, Max: 2}
	rec.PatioDoorChance = 1.0

	placed := 0
	for _, seed := range seeds(60) {
		list := Assemble(&rec, rng.New("patio"+seed))
		if list.Floors < 2 {
			continue
		}
		upper := list.Plans[1]
		below := list.Plans[0].Grid
		for edge, kind := range upper.External {
			if kind != Door {
				continue
			}
			placed++
			outside := edge.Cell.Step(edge.Side)
			if !below.At(outside) {
				t.Fatalf("seed %s: door %v opens over nothing", seed, edge)
			}
			if upper.Grid.At(outside) {
				t.Fatalf("seed %s: door %v opens into covered cell", seed, edge)
			}
		}
	}
	if placed == 0 {
		t.Fatal("patio pass never placed a door")
	}
}
