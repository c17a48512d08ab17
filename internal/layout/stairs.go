package layout

import (
	"math"

	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

// stairCandidate is one feasible (anchor, landing) pair with its score.
type stairCandidate struct {
	placement StairPlacement
	score     float64
}

// stairCandidates enumerates every feasible stair placement between two
// floors. The anchor and landing must be occupied on both floors, the anchor
// needs >=2 occupied neighbors on the lower floor and the landing >=2 on the
// upper floor (no stairs in 1-wide corridors), and the landing may face
// outside on at most 2 sides.
func stairCandidates(lower, upper *Footprint) []stairCandidate {
	minX, minY, maxX, maxY, ok := upper.Bounds()
	if !ok {
		return nil
	}
	centerX := float64(minX+maxX) / 2
	centerY := float64(minY+maxY) / 2

	var out []stairCandidate
	for y := 0; y < lower.Height; y++ {
		for x := 0; x < lower.Width; x++ {
			anchor := Cell{x, y}
			if !lower.At(anchor) || !upper.At(anchor) {
				continue
			}
			if lower.OccupiedNeighbors(anchor) < 2 {
				continue
			}
			for _, dir := range recipe.Sides {
				landing := anchor.Step(dir)
				if !lower.At(landing) || !upper.At(landing) {
					continue
				}
				if upper.OccupiedNeighbors(landing) < 2 {
					continue
				}
				exposed := upper.ExternalSides(landing)
				if exposed > 2 {
					continue
				}
				score := -(dist(anchor, centerX, centerY) + dist(landing, centerX, centerY)) -
					0.5*float64(exposed)
				out = append(out, stairCandidate{
					placement: StairPlacement{Anchor: anchor, Dir: dir, Landing: landing},
					score:     score,
				})
			}
		}
	}
	return out
}

func dist(c Cell, cx, cy float64) float64 {
	dx := float64(c.X) - cx
	dy := float64(c.Y) - cy
	return math.Sqrt(dx*dx + dy*dy)
}

// HasStairOption reports whether any feasible stair placement exists
// between the two floors. Consumes no randomness.
func HasStairOption(lower, upper *Footprint) bool {
	return len(stairCandidates(lower, upper)) > 0
}

// FindStair picks the best-scoring stair placement, breaking score ties by
// uniform random pick. Returns nil if no placement is feasible; the caller
// must then force the building down to one floor.
func FindStair(lower, upper *Footprint, stream *rng.Stream) *StairPlacement {
	candidates := stairCandidates(lower, upper)
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0].score
	for _, c := range candidates[1:] {
		if c.score > best {
			best = c.score
		}
	}
	var top []StairPlacement
	for _, c := range candidates {
		if c.score == best {
			top = append(top, c.placement)
		}
	}
	pick, _ := rng.Pick(stream, top)
	return &pick
}
