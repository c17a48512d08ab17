package layout

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/rng"
)

// GenerateUpper derives the footprint for the floor above base. Candidate
// footprints shrink the occupied bounding box by an inset drawn from the
// recipe, retried at smaller insets down to zero. Protected cells are kept
// occupied in every candidate. Returns ok=false when no inset satisfies the
// minimum-area, forced-shrink and (optional) stair-feasibility constraints;
// the caller then drops to a single floor.
func GenerateUpper(base *Footprint, rec *recipe.Recipe, stream *rng.Stream, protected mapset.Set[Cell], needStair bool) (*Footprint, bool) {
	minX, minY, maxX, maxY, ok := base.Bounds()
	if !ok {
		return nil, false
	}

	baseCount := base.Count()
	startInset := stream.Int(rec.UpperInset.Min, rec.UpperInset.Max)

	for inset := startInset; inset >= 0; inset-- {
		candidate := shrunkCandidate(base, minX, minY, maxX, maxY, inset, protected)

		if rec.UpperCarveChance > 0 && stream.Chance(rec.UpperCarveChance) {
			carved := candidate.Clone()
			cMinX, cMinY, cMaxX, cMaxY, cok := carved.Bounds()
			if cok && carveCorner(carved, cMinX, cMinY, cMaxX, cMaxY, rec.CarveSize, 0.5, stream, protected) {
				if validUpper(base, carved, baseCount, rec, needStair) {
					return carved, true
				}
			}
		}

		if validUpper(base, candidate, baseCount, rec, needStair) {
			return candidate, true
		}
	}
	return nil, false
}

func shrunkCandidate(base *Footprint, minX, minY, maxX, maxY, inset int, protected mapset.Set[Cell]) *Footprint {
	out := NewFootprint(base.Width, base.Height)
	for y := minY + inset; y <= maxY-inset; y++ {
		for x := minX + inset; x <= maxX-inset; x++ {
			c := Cell{x, y}
			if base.At(c) {
				out.Set(c, true)
			}
		}
	}
	protected.Each(func(c Cell) {
		if base.At(c) {
			out.Set(c, true)
		}
	})
	return out
}

func validUpper(base, upper *Footprint, baseCount int, rec *recipe.Recipe, needStair bool) bool {
	upperCount := upper.Count()
	if upperCount < rec.MinUpperArea {
		return false
	}
	if rec.RequireShrink && baseCount-upperCount < rec.MinShrink {
		return false
	}
	if needStair && !HasStairOption(base, upper) {
		return false
	}
	return true
}
