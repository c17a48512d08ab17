package layout

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

// Assemble runs the full layout pipeline for one building: ground
// footprint, floor count, upper footprint with stair feasibility, room
// partitions and opening selection per floor. Infeasible upper floors or
// stair searches degrade the building to a single floor; they are never
// surfaced as errors.
func Assemble(rec *recipe.Recipe, stream *rng.Stream) *BuildingLayout {
	ground := GenerateFootprint(rec, stream)

	floorCount := stream.Int(rec.Floors.Min, rec.Floors.Max)
	// a building carries at most one stair, so anything above two floors
	// would be unreachable
	if floorCount > 2 {
		floorCount = 2
	}

	groundPlan := &FloorPlan{Grid: ground.Grid}
	groundPlan.Rooms, groundPlan.RoomOf = PartitionRooms(ground.Grid, rec, stream)

	plans := []*FloorPlan{groundPlan}
	var stair *StairPlacement

	if floorCount > 1 {
		upperGrid, ok := GenerateUpper(ground.Grid, rec, stream, mapset.New[Cell](), true)
		if ok {
			stair = FindStair(ground.Grid, upperGrid, stream)
		}
		if stair == nil {
			floorCount = 1
		} else {
			upperPlan := &FloorPlan{Grid: upperGrid}
			upperPlan.Rooms, upperPlan.RoomOf = PartitionRooms(upperGrid, rec, stream)
			plans = append(plans, upperPlan)
		}
	}

	for floor, plan := range plans {
		SelectInternalOpenings(plan, rec, floor, stream)
		SelectExternalOpenings(plan, rec, floor, ground.Front, ground.FoyerCells, stair, stream)
		if floor > 0 {
			SelectPatioDoors(plan, plans[floor-1].Grid, rec, stream)
		}
	}

	// patch the stair corridor into both floors so the step run never
	// reads as a sealed-off shaft
	if stair != nil {
		key := PairOf(stair.Anchor, stair.Landing)
		for _, plan := range plans {
			plan.Internal[key] = Arch
		}
	}

	return &BuildingLayout{
		Width:  ground.Grid.Width,
		Height: ground.Grid.Height,
		Floors: len(plans),
		Front:  ground.Front,
		Plans:  plans,
		Stair:  stair,
	}
}
