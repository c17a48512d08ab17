package builder

import (
	"math"
	"sort"

	"github.com/nirholas/hyperscape-sub002/internal/layout"
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
)

type PropKind string

const (
	PropCounter   PropKind = "counter"
	PropAttendant PropKind = "attendant"
	PropForge     PropKind = "forge"
	PropAnvil     PropKind = "anvil"
)

// Prop is one reserved furniture placement on the ground floor. Edge is the
// exterior wall edge the prop backs onto, nil for free-standing placements.
type Prop struct {
	Kind PropKind            `json:"kind"`
	Cell layout.Cell         `json:"cell"`
	Edge *layout.EdgeAddress `json:"edge,omitempty"`
}

// PlaceProps reserves the special furniture placements for building types
// that need them, removing the chosen exterior edges from the ground
// floor's external-openings map so no window or door is cut there later.
func PlaceProps(list *layout.BuildingLayout, rec *recipe.Recipe) []Prop {
	if len(list.Plans) == 0 {
		return nil
	}
	plan := list.Plans[0]
	switch rec.Props {
	case recipe.PropCounter:
		return placeCounter(plan, rec, list.Front)
	case recipe.PropForge:
		return placeForge(plan, list.Front)
	default:
		return nil
	}
}

// roomsByArea returns room ids largest first, lower id on ties.
func roomsByArea(plan *layout.FloorPlan) []int {
	ids := make([]int, len(plan.Rooms))
	for i, r := range plan.Rooms {
		ids[i] = r.ID
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return plan.Rooms[ids[i]].Area() > plan.Rooms[ids[j]].Area()
	})
	return ids
}

// sidePreference orders the compass sides a counter should back onto. A
// bank fronts its service wall; an inn tucks the counter away from the
// entrance side.
func sidePreference(rec *recipe.Recipe, front recipe.Side) []recipe.Side {
	var first recipe.Side
	if rec.Type == "inn" {
		first = recipe.Opposite(front)
	} else {
		first = front
	}
	order := []recipe.Side{first, recipe.Opposite(first)}
	for _, s := range recipe.Sides {
		if s != order[0] && s != order[1] {
			order = append(order, s)
		}
	}
	return order
}

// exteriorEdgeOn reports whether cell c has an exterior edge on side.
func exteriorEdgeOn(plan *layout.FloorPlan, c layout.Cell, side recipe.Side) bool {
	return plan.Grid.At(c) && !plan.Grid.At(c.Step(side))
}

// findBackedCell scans a room for a cell with an exterior edge on one of
// the preferred sides, demanding a solid (opening-free) edge first and
// falling back to any edge on the side.
func findBackedCell(plan *layout.FloorPlan, roomID int, sides []recipe.Side) (layout.Cell, *layout.EdgeAddress) {
	room := &plan.Rooms[roomID]
	for _, requireSolid := range []bool{true, false} {
		for _, side := range sides {
			for _, c := range room.Cells {
				if !exteriorEdgeOn(plan, c, side) {
					continue
				}
				edge := layout.EdgeAddress{Cell: c, Side: side}
				if requireSolid {
					if _, open := plan.External[edge]; open {
						continue
					}
				}
				return c, &edge
			}
		}
	}
	return layout.Cell{}, nil
}

func placeCounter(plan *layout.FloorPlan, rec *recipe.Recipe, front recipe.Side) []Prop {
	if len(plan.Rooms) == 0 {
		return nil
	}
	sides := sidePreference(rec, front)

	for _, roomID := range roomsByArea(plan) {
		cell, edge := findBackedCell(plan, roomID, sides)
		if edge == nil {
			continue
		}
		delete(plan.External, *edge)
		return []Prop{
			{Kind: PropCounter, Cell: cell, Edge: edge},
			{Kind: PropAttendant, Cell: cell, Edge: edge},
		}
	}

	// no wall-backed slot anywhere: free-standing counter in the largest room
	roomID := roomsByArea(plan)[0]
	cell := plan.Rooms[roomID].Cells[0]
	return []Prop{
		{Kind: PropCounter, Cell: cell},
		{Kind: PropAttendant, Cell: cell},
	}
}

func placeForge(plan *layout.FloorPlan, front recipe.Side) []Prop {
	if len(plan.Rooms) == 0 {
		return nil
	}
	back := recipe.Opposite(front)
	sides := []recipe.Side{back, recipe.Opposite(back)}
	for _, s := range recipe.Sides {
		if s != sides[0] && s != sides[1] {
			sides = append(sides, s)
		}
	}

	for _, roomID := range roomsByArea(plan) {
		forgeCell, edge := findBackedCell(plan, roomID, sides)
		if edge == nil {
			continue
		}
		delete(plan.External, *edge)
		props := []Prop{{Kind: PropForge, Cell: forgeCell, Edge: edge}}
		if anvil, ok := nearestOtherCell(&plan.Rooms[roomID], forgeCell); ok {
			props = append(props, Prop{Kind: PropAnvil, Cell: anvil})
		}
		return props
	}
	return nil
}

// nearestOtherCell picks the room cell closest to from, row-major first on
// ties.
func nearestOtherCell(room *layout.Room, from layout.Cell) (layout.Cell, bool) {
	best := layout.Cell{}
	bestDist := math.Inf(1)
	found := false
	for _, c := range room.Cells {
		if c == from {
			continue
		}
		dx := float64(c.X - from.X)
		dy := float64(c.Y - from.Y)
		d := dx*dx + dy*dy
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}
