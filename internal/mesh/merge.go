package mesh

import (
	"fmt"
	"math"
	"sort"
)

// Merge concatenates primitives into a single node. Returns an error if any
// input node is degenerate (dangling indices or a partial triangle); the
// caller is expected to fall back to per-node output rather than fail the
// build.
func Merge(name string, nodes []*Node) (*Node, error) {
	out := &Node{Name: name}
	for _, node := range nodes {
		if len(node.Indices)%3 != 0 {
			return nil, fmt.Errorf("node %q has a partial triangle (%d indices)", node.Name, len(node.Indices))
		}
		if len(node.Colors) != len(node.Vertices) {
			return nil, fmt.Errorf("node %q has %d colors for %d vertices", node.Name, len(node.Colors), len(node.Vertices))
		}
		offset := len(out.Vertices)
		for _, idx := range node.Indices {
			if idx < 0 || idx >= len(node.Vertices) {
				return nil, fmt.Errorf("node %q has dangling index %d", node.Name, idx)
			}
			out.Indices = append(out.Indices, idx+offset)
		}
		out.Vertices = append(out.Vertices, node.Vertices...)
		out.Colors = append(out.Colors, node.Colors...)
	}
	return out, nil
}

// vertexKey is a vertex position rounded to fixed decimal precision.
type vertexKey struct {
	X, Y, Z int64
}

// triangleKey is the canonical identity of a triangle: its three rounded
// vertices in sorted order, so coincident faces match regardless of winding.
type triangleKey struct {
	A, B, C vertexKey
}

const dedupPrecision = 1e4

func keyOf(v Vec3) vertexKey {
	return vertexKey{
		X: int64(math.Round(v.X * dedupPrecision)),
		Y: int64(math.Round(v.Y * dedupPrecision)),
		Z: int64(math.Round(v.Z * dedupPrecision)),
	}
}

func keyLess(a, b vertexKey) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func canonical(a, b, c vertexKey) triangleKey {
	ks := []vertexKey{a, b, c}
	sort.Slice(ks, func(i, j int) bool { return keyLess(ks[i], ks[j]) })
	return triangleKey{ks[0], ks[1], ks[2]}
}

// DropInternalFaces removes every triangle whose canonical key occurs more
// than once in the mesh: two adjacent box primitives produce coincident,
// oppositely wound faces there, so nothing visible is lost. Triangles whose
// key is unique always survive. Unreferenced vertices are compacted away.
func DropInternalFaces(m *Node) *Node {
	counts := make(map[triangleKey]int, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		key := canonical(
			keyOf(m.Vertices[m.Indices[i]]),
			keyOf(m.Vertices[m.Indices[i+1]]),
			keyOf(m.Vertices[m.Indices[i+2]]),
		)
		counts[key]++
	}

	out := &Node{Name: m.Name}
	remap := make(map[int]int)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		key := canonical(
			keyOf(m.Vertices[m.Indices[i]]),
			keyOf(m.Vertices[m.Indices[i+1]]),
			keyOf(m.Vertices[m.Indices[i+2]]),
		)
		if counts[key] > 1 {
			continue
		}
		for _, idx := range m.Indices[i : i+3] {
			mapped, ok := remap[idx]
			if !ok {
				mapped = out.addVertex(m.Vertices[idx], m.Colors[idx])
				remap[idx] = mapped
			}
			out.Indices = append(out.Indices, mapped)
		}
	}
	return out
}
