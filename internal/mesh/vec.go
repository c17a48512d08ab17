// Package mesh provides the triangle-mesh substrate for building geometry:
// box and arch primitives, deterministic per-vertex shading, and the merge
// plus duplicate-face removal pass that strips coincident internal faces.
package mesh

// Vec3 is a float64 3D point/vector. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
