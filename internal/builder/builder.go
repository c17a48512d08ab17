// Package builder is the top-level generation entry point: it resolves a
// building type key to a recipe, assembles the layout, reserves prop
// placements, synthesizes geometry and produces stats. One call, one seed,
// one building; calls are independent and safe to run in parallel.
package builder

import (
	"fmt"

	"github.com/nirholas/hyperscape-sub002/internal/layout"
	"github.com/nirholas/hyperscape-sub002/internal/mesh"
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

// Request describes one building to generate.
type Request struct {
	TypeKey     string `json:"typeKey"`
	Seed        string `json:"seed"`
	IncludeRoof bool   `json:"includeRoof"`
	// Materials overrides the shading descriptor; nil uses the default.
	Materials *mesh.MaterialScheme `json:"-"`
}

// Result is the full output of one generation call. Nodes holds a single
// merged, deduplicated mesh in the normal case; when merging fails on
// degenerate input it holds one node per primitive instead.
type Result struct {
	Nodes  []*mesh.Node           `json:"nodes"`
	Layout *layout.BuildingLayout `json:"layout"`
	Props  []Prop                 `json:"props"`
	Stats  Stats                  `json:"stats"`
}

// Generate runs the full pipeline for one request. The only error is an
// unknown type key; every downstream constraint failure degrades inside
// the pipeline instead of failing the call.
func Generate(reg *recipe.Registry, req Request) (*Result, error) {
	rec, err := reg.Get(req.TypeKey)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	scheme := req.Materials
	if scheme == nil {
		scheme = mesh.DefaultMaterials()
	}

	stream := rng.New(req.Seed)
	list := layout.Assemble(rec, stream)
	props := PlaceProps(list, rec)

	stats := Stats{Rooms: roomCount(list)}
	stats.FootprintCells = make([]int, 0, len(list.Plans))
	for _, plan := range list.Plans {
		stats.FootprintCells = append(stats.FootprintCells, plan.Grid.Count())
	}

	synth := &synthesizer{
		list:   list,
		scheme: scheme,
		roof:   req.IncludeRoof,
		props:  props,
		stats:  &stats,
	}
	nodes := synth.run()
	stats.countOpenings(list)

	result := &Result{Layout: list, Props: props, Stats: stats}
	merged, err := mesh.Merge(req.TypeKey+"/"+req.Seed, nodes)
	if err != nil {
		// degenerate geometry: ship the raw primitives instead of failing
		result.Nodes = nodes
		return result, nil
	}
	result.Nodes = []*mesh.Node{mesh.DropInternalFaces(merged)}
	return result, nil
}

func roomCount(list *layout.BuildingLayout) int {
	n := 0
	for _, plan := range list.Plans {
		n += len(plan.Rooms)
	}
	return n
}
