// Package protocol defines the JSON message types exchanged with viewer
// clients. Envelopes wrap typed payloads; snapshots are flat, render-ready
// projections of a generated building.
package protocol

import (
	"encoding/json"

	"github.com/nirholas/hyperscape-sub002/internal/builder"
	"github.com/nirholas/hyperscape-sub002/internal/layout"
	"github.com/nirholas/hyperscape-sub002/internal/mesh"
)

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RequestGenerate asks the server to generate and broadcast a building.
type RequestGenerate struct {
	TypeKey     string `json:"typeKey"`
	Seed        string `json:"seed"`
	IncludeRoof bool   `json:"includeRoof"`
}

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// MeshLite is a flat triangle list: positions and colors as x,y,z / r,g,b
// triples, indices in groups of three.
type MeshLite struct {
	Positions []float64 `json:"positions"`
	Colors    []float64 `json:"colors"`
	Indices   []int     `json:"indices"`
}

// OpeningLite is one opening flattened for display. For internal openings
// both cells are set; for external ones Side is set instead.
type OpeningLite struct {
	Floor int          `json:"floor"`
	A     layout.Cell  `json:"a"`
	B     *layout.Cell `json:"b,omitempty"`
	Side  string       `json:"side,omitempty"`
	Kind  string       `json:"kind"`
}

type FloorPlanLite struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []bool `json:"cells"`
	// RoomIDs is row-major, -1 for unoccupied cells.
	RoomIDs   []int `json:"roomIds"`
	RoomCount int   `json:"roomCount"`
}

// BuildingSnapshot is the full response for one generated building.
type BuildingSnapshot struct {
	BuildID         string                 `json:"buildId"`
	TypeKey         string                 `json:"typeKey"`
	Seed            string                 `json:"seed"`
	Width           int                    `json:"width"`
	Height          int                    `json:"height"`
	Floors          int                    `json:"floors"`
	Front           string                 `json:"front"`
	Plans           []FloorPlanLite        `json:"plans"`
	Openings        []OpeningLite          `json:"openings"`
	Stair           *layout.StairPlacement `json:"stair,omitempty"`
	Props           []builder.Prop         `json:"props"`
	Stats           builder.Stats          `json:"stats"`
	Mesh            MeshLite               `json:"mesh"`
	ProtocolVersion string                 `json:"protocolVersion"`
}

// FlattenMesh projects mesh nodes into one MeshLite.
func FlattenMesh(nodes []*mesh.Node) MeshLite {
	out := MeshLite{}
	for _, node := range nodes {
		offset := len(out.Positions) / 3
		for i, v := range node.Vertices {
			out.Positions = append(out.Positions, v.X, v.Y, v.Z)
			c := node.Colors[i]
			out.Colors = append(out.Colors, c.R, c.G, c.B)
		}
		for _, idx := range node.Indices {
			out.Indices = append(out.Indices, idx+offset)
		}
	}
	return out
}

// SnapshotOf flattens a generation result for the wire.
func SnapshotOf(buildID, typeKey, seed string, res *builder.Result) BuildingSnapshot {
	snap := BuildingSnapshot{
		BuildID:         buildID,
		TypeKey:         typeKey,
		Seed:            seed,
		Width:           res.Layout.Width,
		Height:          res.Layout.Height,
		Floors:          res.Layout.Floors,
		Front:           string(res.Layout.Front),
		Stair:           res.Layout.Stair,
		Props:           res.Props,
		Stats:           res.Stats,
		Mesh:            FlattenMesh(res.Nodes),
		ProtocolVersion: "v0",
	}
	for floor, plan := range res.Layout.Plans {
		lite := FloorPlanLite{
			Width:     plan.Grid.Width,
			Height:    plan.Grid.Height,
			Cells:     plan.Grid.Cells,
			RoomIDs:   make([]int, len(plan.Grid.Cells)),
			RoomCount: len(plan.Rooms),
		}
		for i := range lite.RoomIDs {
			lite.RoomIDs[i] = -1
		}
		for cell, id := range plan.RoomOf {
			lite.RoomIDs[cell.Y*plan.Grid.Width+cell.X] = id
		}
		snap.Plans = append(snap.Plans, lite)

		for pair, kind := range plan.Internal {
			b := pair.B
			snap.Openings = append(snap.Openings, OpeningLite{
				Floor: floor, A: pair.A, B: &b, Kind: string(kind),
			})
		}
		for edge, kind := range plan.External {
			snap.Openings = append(snap.Openings, OpeningLite{
				Floor: floor, A: edge.Cell, Side: string(edge.Side), Kind: string(kind),
			})
		}
	}
	return snap
}
