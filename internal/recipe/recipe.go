// Package recipe defines the per-building-type shape rules that drive
// generation. Recipes are closed structs validated at construction; a
// missing or nonsense field is a load-time error, never a runtime surprise.
package recipe

import "fmt"

type Side string

const (
	North Side = "north"
	East  Side = "east"
	South Side = "south"
	West  Side = "west"
)

// Sides lists the four compass sides in a fixed scan order.
var Sides = []Side{North, East, South, West}

// Opposite returns the facing side.
func Opposite(s Side) Side {
	switch s {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

type PropRole string

const (
	PropNone    PropRole = ""
	PropCounter PropRole = "counter"
	PropForge   PropRole = "forge"
)

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FoyerSpec sizes the optional entrance block appended behind the main
// footprint rectangle.
type FoyerSpec struct {
	Width IntRange `json:"width"`
	Depth IntRange `json:"depth"`
}

// Recipe holds the full shape rule set for one building type.
type Recipe struct {
	Type                  string     `json:"type"`
	Width                 IntRange   `json:"width"`
	Depth                 IntRange   `json:"depth"`
	Floors                IntRange   `json:"floors"`
	Entrances             int        `json:"entrances"`
	ArchBias              float64    `json:"archBias"`
	ExtraConnectionChance float64    `json:"extraConnectionChance"`
	EntranceArchChance    float64    `json:"entranceArchChance"`
	RoomSpan              IntRange   `json:"roomSpan"`
	MinRoomArea           int        `json:"minRoomArea"`
	WindowChance          float64    `json:"windowChance"`
	CarveChance           float64    `json:"carveChance"`
	CarveSize             IntRange   `json:"carveSize"`
	FrontSide             Side       `json:"frontSide"`
	UpperInset            IntRange   `json:"upperInset"`
	UpperCarveChance      float64    `json:"upperCarveChance"`
	MinUpperArea          int        `json:"minUpperArea"`
	RequireShrink         bool       `json:"requireShrink"`
	MinShrink             int        `json:"minShrink"`
	Foyer                 *FoyerSpec `json:"foyer,omitempty"`
	PatioDoorChance       float64    `json:"patioDoorChance"`
	PatioDoorCount        IntRange   `json:"patioDoorCount"`
	Props                 PropRole   `json:"props,omitempty"`
}

func validRange(r IntRange) bool {
	return r.Min >= 0 && r.Max >= r.Min
}

func validChance(p float64) bool {
	return p >= 0 && p <= 1
}

// Validate checks a recipe for internal consistency.
func (r *Recipe) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("recipe has no type key")
	}
	if !validRange(r.Width) || r.Width.Min < 1 {
		return fmt.Errorf("recipe %q: bad width range %+v", r.Type, r.Width)
	}
	if !validRange(r.Depth) || r.Depth.Min < 1 {
		return fmt.Errorf("recipe %q: bad depth range %+v", r.Type, r.Depth)
	}
	if !validRange(r.Floors) || r.Floors.Min < 1 {
		return fmt.Errorf("recipe %q: bad floor range %+v", r.Type, r.Floors)
	}
	if r.Entrances < 1 {
		return fmt.Errorf("recipe %q: needs at least one entrance", r.Type)
	}
	if !validRange(r.RoomSpan) || r.RoomSpan.Min < 1 {
		return fmt.Errorf("recipe %q: bad room span %+v", r.Type, r.RoomSpan)
	}
	if r.MinRoomArea < 1 {
		return fmt.Errorf("recipe %q: bad minimum room area %d", r.Type, r.MinRoomArea)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"archBias", r.ArchBias},
		{"extraConnectionChance", r.ExtraConnectionChance},
		{"entranceArchChance", r.EntranceArchChance},
		{"windowChance", r.WindowChance},
		{"carveChance", r.CarveChance},
		{"upperCarveChance", r.UpperCarveChance},
		{"patioDoorChance", r.PatioDoorChance},
	} {
		if !validChance(p.value) {
			return fmt.Errorf("recipe %q: %s=%v outside [0,1]", r.Type, p.name, p.value)
		}
	}
	if r.CarveChance > 0 && (!validRange(r.CarveSize) || r.CarveSize.Min < 1) {
		return fmt.Errorf("recipe %q: carve enabled with bad carve size %+v", r.Type, r.CarveSize)
	}
	switch r.FrontSide {
	case North, East, South, West:
	default:
		return fmt.Errorf("recipe %q: unknown front side %q", r.Type, r.FrontSide)
	}
	if !validRange(r.UpperInset) {
		return fmt.Errorf("recipe %q: bad upper inset %+v", r.Type, r.UpperInset)
	}
	if r.Foyer != nil {
		if !validRange(r.Foyer.Width) || r.Foyer.Width.Min < 1 ||
			!validRange(r.Foyer.Depth) || r.Foyer.Depth.Min < 1 {
			return fmt.Errorf("recipe %q: bad foyer spec %+v", r.Type, *r.Foyer)
		}
	}
	if r.PatioDoorChance > 0 && !validRange(r.PatioDoorCount) {
		return fmt.Errorf("recipe %q: bad patio door count %+v", r.Type, r.PatioDoorCount)
	}
	switch r.Props {
	case PropNone, PropCounter, PropForge:
	default:
		return fmt.Errorf("recipe %q: unknown prop role %q", r.Type, r.Props)
	}
	return nil
}
