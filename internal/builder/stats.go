package builder

import "github.com/nirholas/hyperscape-sub002/internal/layout"

// Stats are derived counters for one generated building. They are computed
// from the layout and emitted geometry, never authoritative.
type Stats struct {
	WallSegments   int   `json:"wallSegments"`
	Doorways       int   `json:"doorways"`
	Archways       int   `json:"archways"`
	Windows        int   `json:"windows"`
	RoofPieces     int   `json:"roofPieces"`
	FloorTiles     int   `json:"floorTiles"`
	StairSteps     int   `json:"stairSteps"`
	Props          int   `json:"props"`
	Rooms          int   `json:"rooms"`
	FootprintCells []int `json:"footprintCells"`
}

// countOpenings tallies doors, arches and windows across all opening maps.
func (s *Stats) countOpenings(list *layout.BuildingLayout) {
	tally := func(kind layout.OpeningKind) {
		switch kind {
		case layout.Door:
			s.Doorways++
		case layout.Arch:
			s.Archways++
		case layout.Window:
			s.Windows++
		}
	}
	for _, plan := range list.Plans {
		for _, kind := range plan.Internal {
			tally(kind)
		}
		for _, kind := range plan.External {
			tally(kind)
		}
	}
}
