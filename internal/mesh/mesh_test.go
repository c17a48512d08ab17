package mesh

import (
	"math"
	"testing"
)

func TestBoxHasTwelveTriangles(t *testing.T) {
	box := NewBox("box", Vec3{0, 0, 0}, Vec3{1, 2, 3}, RoleWall, DefaultMaterials())
	if got := box.TriangleCount(); got != 12 {
		t.Fatalf("box has %d triangles, want 12", got)
	}
	if len(box.Vertices) != 8 || len(box.Colors) != 8 {
		t.Fatalf("box has %d vertices / %d colors, want 8/8", len(box.Vertices), len(box.Colors))
	}
}

func TestShadeStaysAboveMinimum(t *testing.T) {
	scheme := DefaultMaterials()
	for x := 0; x < 10; x++ {
		for z := 0; z < 10; z++ {
			p := Vec3{float64(x) * 0.7, 1.3, float64(z) * 0.7}
			s := scheme.Shade(p)
			if s < scheme.MinShade || s > 1 {
				t.Fatalf("shade %v at %v outside [%v, 1]", s, p, scheme.MinShade)
			}
		}
	}
}

func TestShadeDeterministicAndVarying(t *testing.T) {
	scheme := DefaultMaterials()
	a := scheme.Shade(Vec3{1.5, 0, 2.5})
	b := scheme.Shade(Vec3{1.5, 0, 2.5})
	if a != b {
		t.Fatal("shading not deterministic")
	}
	varied := false
	prev := scheme.Shade(Vec3{0, 0, 0})
	for i := 1; i < 50; i++ {
		cur := scheme.Shade(Vec3{float64(i) * 1.1, 0, float64(i) * 0.6})
		if cur != prev {
			varied = true
		}
		prev = cur
	}
	if !varied {
		t.Fatal("shading is flat across positions")
	}
}

func TestArchCapClosed(t *testing.T) {
	arch := NewArchCap("arch", 2, 1.6, 3, 1.2, 0.2, true, RoleWall, DefaultMaterials())
	if arch.TriangleCount() == 0 {
		t.Fatal("arch cap empty")
	}
	if len(arch.Indices)%3 != 0 {
		t.Fatalf("arch has a partial triangle: %d indices", len(arch.Indices))
	}
	for _, idx := range arch.Indices {
		if idx < 0 || idx >= len(arch.Vertices) {
			t.Fatalf("dangling index %d", idx)
		}
	}
	for _, v := range arch.Vertices {
		if v.Y < 1.6-1e-9 || v.Y > 1.6+0.6+1e-9 {
			t.Fatalf("arch vertex %v outside the cap band", v)
		}
	}
}

func TestMergeOffsetsIndices(t *testing.T) {
	a := NewBox("a", Vec3{0, 0, 0}, Vec3{1, 1, 1}, RoleWall, DefaultMaterials())
	b := NewBox("b", Vec3{5, 0, 0}, Vec3{6, 1, 1}, RoleFloor, DefaultMaterials())
	merged, err := Merge("building", []*Node{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if merged.TriangleCount() != 24 {
		t.Fatalf("merged has %d triangles, want 24", merged.TriangleCount())
	}
	if len(merged.Vertices) != 16 {
		t.Fatalf("merged has %d vertices, want 16", len(merged.Vertices))
	}
	for _, idx := range merged.Indices {
		if idx < 0 || idx >= 16 {
			t.Fatalf("dangling merged index %d", idx)
		}
	}
}

func TestMergeRejectsDegenerateNode(t *testing.T) {
	bad := &Node{Name: "bad", Vertices: []Vec3{{}}, Colors: []RGB{{}}, Indices: []int{0, 0}}
	if _, err := Merge("m", []*Node{bad}); err == nil {
		t.Fatal("expected error for partial triangle")
	}
	dangling := &Node{Name: "dangling", Vertices: []Vec3{{}}, Colors: []RGB{{}}, Indices: []int{0, 0, 7}}
	if _, err := Merge("m", []*Node{dangling}); err == nil {
		t.Fatal("expected error for dangling index")
	}
}

func TestDropInternalFacesKeepsLoneBox(t *testing.T) {
	box := NewBox("solo", Vec3{0, 0, 0}, Vec3{1, 1, 1}, RoleWall, DefaultMaterials())
	merged, err := Merge("m", []*Node{box})
	if err != nil {
		t.Fatal(err)
	}
	slim := DropInternalFaces(merged)
	if slim.TriangleCount() != 12 {
		t.Fatalf("lone box reduced to %d triangles", slim.TriangleCount())
	}
}

func TestDropInternalFacesRemovesSharedFace(t *testing.T) {
	// unit box pairs sharing one full face, one pair per axis; facing
	// faces must triangulate on the same diagonal for the dedup to land
	cases := []struct {
		name     string
		min, max Vec3
	}{
		{"east-west", Vec3{1, 0, 0}, Vec3{2, 1, 1}},
		{"south-north", Vec3{0, 0, 1}, Vec3{1, 1, 2}},
		{"top-bottom", Vec3{0, 1, 0}, Vec3{1, 2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewBox("a", Vec3{0, 0, 0}, Vec3{1, 1, 1}, RoleWall, DefaultMaterials())
			b := NewBox("b", tc.min, tc.max, RoleWall, DefaultMaterials())
			merged, err := Merge("m", []*Node{a, b})
			if err != nil {
				t.Fatal(err)
			}
			slim := DropInternalFaces(merged)
			// 24 triangles minus the 2+2 coincident ones on the shared face
			if slim.TriangleCount() != 20 {
				t.Fatalf("pair kept %d triangles, want 20", slim.TriangleCount())
			}
			for _, idx := range slim.Indices {
				if idx < 0 || idx >= len(slim.Vertices) {
					t.Fatalf("dangling index %d after compaction", idx)
				}
			}
		})
	}
}

func TestDropInternalFacesToleratesRoundingJitter(t *testing.T) {
	eps := 1e-7 // far below the rounding precision
	a := NewBox("a", Vec3{0, 0, 0}, Vec3{1, 1, 1}, RoleWall, DefaultMaterials())
	b := NewBox("b", Vec3{1 + eps, 0, -eps}, Vec3{2, 1, 1}, RoleWall, DefaultMaterials())
	merged, err := Merge("m", []*Node{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if got := DropInternalFaces(merged).TriangleCount(); got != 20 {
		t.Fatalf("jittered pair kept %d triangles, want 20", got)
	}
}

func TestVertexKeyRounding(t *testing.T) {
	a := keyOf(Vec3{1.00004, 2, 3})
	b := keyOf(Vec3{1.00001, 2, 3})
	if a != b {
		t.Fatal("keys within rounding precision should collide")
	}
	c := keyOf(Vec3{1.2, 2, 3})
	if a == c {
		t.Fatal("distinct positions should not collide")
	}
	if math.Abs(float64(a.X)-10000) > 0.5 {
		t.Fatalf("unexpected key scale: %d", a.X)
	}
}
