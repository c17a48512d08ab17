package recipe

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinRecipesValidate(t *testing.T) {
	reg := Builtin()
	for _, key := range reg.Types() {
		r, err := reg.Get(key)
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("builtin recipe %q invalid: %v", key, err)
		}
	}
}

func TestGetUnknownType(t *testing.T) {
	if _, err := Builtin().Get("castle"); err == nil {
		t.Fatal("expected error for unknown building type")
	}
}

func TestValidateRejectsBadRecords(t *testing.T) {
	base := func() Recipe {
		return Recipe{
			Type:        "test",
			Width:       IntRange{4, 6},
			Depth:       IntRange{4, 6},
			Floors:      IntRange{1, 2},
			Entrances:   1,
			RoomSpan:    IntRange{2, 4},
			MinRoomArea: 3,
			FrontSide:   South,
			UpperInset:  IntRange{0, 1},
		}
	}

	cases := []struct {
		name   string
		mutate func(*Recipe)
	}{
		{"no type", func(r *Recipe) { r.Type = "" }},
		{"zero width", func(r *Recipe) { r.Width = IntRange{0, 3} }},
		{"inverted depth", func(r *Recipe) { r.Depth = IntRange{5, 2} }},
		{"zero floors", func(r *Recipe) { r.Floors = IntRange{0, 1} }},
		{"no entrances", func(r *Recipe) { r.Entrances = 0 }},
		{"bad chance", func(r *Recipe) { r.WindowChance = 1.5 }},
		{"bad side", func(r *Recipe) { r.FrontSide = "up" }},
		{"carve without size", func(r *Recipe) { r.CarveChance = 0.5 }},
		{"bad foyer", func(r *Recipe) { r.Foyer = &FoyerSpec{} }},
		{"bad prop role", func(r *Recipe) { r.Props = "altar" }},
	}
	for _, tc := range cases {
		r := base()
		tc.mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	good := base()
	if err := good.Validate(); err != nil {
		t.Fatalf("base recipe should validate: %v", err)
	}
}

func TestLoadDirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	override := Recipe{
		Type:        "bank",
		Width:       IntRange{10, 12},
		Depth:       IntRange{10, 12},
		Floors:      IntRange{1, 1},
		Entrances:   2,
		RoomSpan:    IntRange{3, 6},
		MinRoomArea: 6,
		FrontSide:   North,
		UpperInset:  IntRange{0, 1},
	}
	data, err := json.Marshal(&override)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bank.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	r, err := reg.Get("bank")
	if err != nil {
		t.Fatal(err)
	}
	if r.Width.Min != 10 || r.FrontSide != North {
		t.Fatalf("override not applied: %+v", r)
	}
	// untouched builtins survive
	if _, err := reg.Get("inn"); err != nil {
		t.Fatalf("builtin lost after LoadDir: %v", err)
	}
}

func TestLoadDirRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"type":"bad"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected error for invalid recipe file")
	}
}
