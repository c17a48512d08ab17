package recipe

import "fmt"

// Registry maps building type keys to validated recipes. Immutable once
// built; lookups are safe from any goroutine.
type Registry struct {
	recipes map[string]*Recipe
}

// Builtin returns the registry of standard building types.
func Builtin() *Registry {
	reg := &Registry{recipes: make(map[string]*Recipe)}
	for _, r := range builtinRecipes() {
		// builtin records are fixed; a validation failure here is a
		// programming error
		if err := r.Validate(); err != nil {
			panic(err)
		}
		reg.recipes[r.Type] = r
	}
	return reg
}

// Get returns the recipe for a type key.
func (reg *Registry) Get(typeKey string) (*Recipe, error) {
	r, ok := reg.recipes[typeKey]
	if !ok {
		return nil, fmt.Errorf("no recipe for building type %q", typeKey)
	}
	return r, nil
}

// Types lists all registered type keys.
func (reg *Registry) Types() []string {
	keys := make([]string, 0, len(reg.recipes))
	for k := range reg.recipes {
		keys = append(keys, k)
	}
	return keys
}

func builtinRecipes() []*Recipe {
	return []*Recipe{
		{
			Type:                  "simple-house",
			Width:                 IntRange{4, 6},
			Depth:                 IntRange{4, 6},
			Floors:                IntRange{1, 1},
			Entrances:             1,
			ArchBias:              0.25,
			ExtraConnectionChance: 0.3,
			EntranceArchChance:    0.1,
			RoomSpan:              IntRange{2, 4},
			MinRoomArea:           3,
			WindowChance:          0.45,
			CarveChance:           0.3,
			CarveSize:             IntRange{1, 2},
			FrontSide:             South,
			UpperInset:            IntRange{0, 1},
			MinUpperArea:          6,
		},
		{
			Type:                  "house",
			Width:                 IntRange{5, 8},
			Depth:                 IntRange{5, 8},
			Floors:                IntRange{1, 2},
			Entrances:             1,
			ArchBias:              0.3,
			ExtraConnectionChance: 0.35,
			EntranceArchChance:    0.1,
			RoomSpan:              IntRange{2, 4},
			MinRoomArea:           4,
			WindowChance:          0.5,
			CarveChance:           0.4,
			CarveSize:             IntRange{1, 3},
			FrontSide:             South,
			UpperInset:            IntRange{0, 2},
			UpperCarveChance:      0.3,
			MinUpperArea:          8,
			RequireShrink:         true,
			MinShrink:             4,
			PatioDoorChance:       0.5,
			PatioDoorCount:        IntRange{1, 2},
		},
		{
			Type:                  "inn",
			Width:                 IntRange{7, 10},
			Depth:                 IntRange{6, 9},
			Floors:                IntRange{1, 2},
			Entrances:             2,
			ArchBias:              0.5,
			ExtraConnectionChance: 0.45,
			EntranceArchChance:    0.4,
			RoomSpan:              IntRange{2, 5},
			MinRoomArea:           4,
			WindowChance:          0.55,
			CarveChance:           0.25,
			CarveSize:             IntRange{1, 2},
			FrontSide:             South,
			UpperInset:            IntRange{0, 2},
			UpperCarveChance:      0.25,
			MinUpperArea:          12,
			RequireShrink:         true,
			MinShrink:             6,
			PatioDoorChance:       0.6,
			PatioDoorCount:        IntRange{1, 3},
			Props:                 PropCounter,
		},
		{
			Type:                  "bank",
			Width:                 IntRange{6, 9},
			Depth:                 IntRange{6, 8},
			Floors:                IntRange{1, 1},
			Entrances:             1,
			ArchBias:              0.6,
			ExtraConnectionChance: 0.25,
			EntranceArchChance:    0.7,
			RoomSpan:              IntRange{3, 6},
			MinRoomArea:           6,
			WindowChance:          0.35,
			FrontSide:             South,
			UpperInset:            IntRange{0, 1},
			MinUpperArea:          10,
			Props:                 PropCounter,
		},
		{
			Type:                  "smithy",
			Width:                 IntRange{5, 7},
			Depth:                 IntRange{5, 7},
			Floors:                IntRange{1, 1},
			Entrances:             1,
			ArchBias:              0.4,
			ExtraConnectionChance: 0.2,
			EntranceArchChance:    0.5,
			RoomSpan:              IntRange{3, 5},
			MinRoomArea:           5,
			WindowChance:          0.3,
			CarveChance:           0.2,
			CarveSize:             IntRange{1, 2},
			FrontSide:             South,
			UpperInset:            IntRange{0, 1},
			MinUpperArea:          8,
			Props:                 PropForge,
		},
		{
			Type:                  "church",
			Width:                 IntRange{5, 7},
			Depth:                 IntRange{7, 10},
			Floors:                IntRange{1, 1},
			Entrances:             1,
			ArchBias:              0.8,
			ExtraConnectionChance: 0.2,
			EntranceArchChance:    0.9,
			RoomSpan:              IntRange{3, 6},
			MinRoomArea:           6,
			WindowChance:          0.6,
			FrontSide:             South,
			UpperInset:            IntRange{0, 1},
			MinUpperArea:          10,
			Foyer: &FoyerSpec{
				Width: IntRange{3, 3},
				Depth: IntRange{2, 3},
			},
		},
	}
}
