package mesh

import "math"

// Node is one triangle-list primitive (or the whole merged building).
// Indices address Vertices in groups of three; Colors parallels Vertices.
type Node struct {
	Name     string `json:"name"`
	Vertices []Vec3 `json:"vertices"`
	Colors   []RGB  `json:"colors"`
	Indices  []int  `json:"indices"`
}

// TriangleCount returns the number of triangles in the node.
func (n *Node) TriangleCount() int {
	return len(n.Indices) / 3
}

func (n *Node) addVertex(p Vec3, c RGB) int {
	n.Vertices = append(n.Vertices, p)
	n.Colors = append(n.Colors, c)
	return len(n.Vertices) - 1
}

func (n *Node) addQuad(a, b, c, d int) {
	n.Indices = append(n.Indices, a, b, c, a, c, d)
}

// NewBox builds an axis-aligned box between min and max, shaded per vertex
// from the scheme's role hue.
func NewBox(name string, min, max Vec3, role Role, scheme *MaterialScheme) *Node {
	n := &Node{Name: name}
	base := scheme.BaseColor(role)

	corner := func(x, y, z float64) int {
		p := Vec3{x, y, z}
		return n.addVertex(p, base.Scaled(scheme.Shade(p)))
	}

	// corner order: binary xyz
	v := [8]int{
		corner(min.X, min.Y, min.Z),
		corner(max.X, min.Y, min.Z),
		corner(min.X, max.Y, min.Z),
		corner(max.X, max.Y, min.Z),
		corner(min.X, min.Y, max.Z),
		corner(max.X, min.Y, max.Z),
		corner(min.X, max.Y, max.Z),
		corner(max.X, max.Y, max.Z),
	}

	// opposite faces start on the same diagonal so coincident faces of
	// touching boxes triangulate identically
	n.addQuad(v[5], v[7], v[6], v[4]) // south (+z)
	n.addQuad(v[1], v[0], v[2], v[3]) // north (-z)
	n.addQuad(v[1], v[3], v[7], v[5]) // east (+x)
	n.addQuad(v[0], v[4], v[6], v[2]) // west (-x)
	n.addQuad(v[2], v[6], v[7], v[3]) // top (+y)
	n.addQuad(v[0], v[1], v[5], v[4]) // bottom (-y)
	return n
}

// NewArchCap builds an extruded half-disc spanning gap width w, sitting on
// springY, centered at (cx, cz) and extruded thickness t along the axis
// perpendicular to the wall run. alongX says whether the wall runs along X.
func NewArchCap(name string, cx, springY, cz, w, t float64, alongX bool, role Role, scheme *MaterialScheme) *Node {
	const segments = 8
	n := &Node{Name: name}
	base := scheme.BaseColor(role)
	radius := w / 2

	point := func(along, up, across float64) Vec3 {
		if alongX {
			return Vec3{cx + along, springY + up, cz + across}
		}
		return Vec3{cx + across, springY + up, cz + along}
	}
	add := func(p Vec3) int {
		return n.addVertex(p, base.Scaled(scheme.Shade(p)))
	}

	// rim vertices on both extrusion faces, fanned from the corners of the
	// flat base edge
	var front, back []int
	for i := 0; i <= segments; i++ {
		angle := math.Pi * float64(i) / segments
		along := radius * math.Cos(angle)
		up := radius * math.Sin(angle)
		front = append(front, add(point(along, up, -t/2)))
		back = append(back, add(point(along, up, t/2)))
	}
	frontCenter := add(point(0, 0, -t/2))
	backCenter := add(point(0, 0, t/2))

	for i := 0; i < segments; i++ {
		// flat faces
		n.Indices = append(n.Indices, frontCenter, front[i], front[i+1])
		n.Indices = append(n.Indices, backCenter, back[i+1], back[i])
		// curved rim
		n.addQuad(front[i], back[i], back[i+1], front[i+1])
	}
	// flat underside closing the half disc
	n.addQuad(front[0], front[segments], back[segments], back[0])
	return n
}
