// Package mesh holds a simple indexed triangle soup, suitable as the
// sink for the stl reader.
package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Mesh is an append-only collection of nodes and triangles. Node indices
// are assigned in first-seen order and never change. The zero value is
// ready to use.
type Mesh struct {
	Nodes     []r3.Vec
	Triangles [][3]int

	min, max r3.Vec
}

func New() *Mesh {
	return &Mesh{}
}

// AddNode appends a node and returns its index.
func (m *Mesh) AddNode(p r3.Vec) int {
	if len(m.Nodes) == 0 {
		m.min, m.max = p, p
	} else {
		m.min = r3.Vec{X: min(m.min.X, p.X), Y: min(m.min.Y, p.Y), Z: min(m.min.Z, p.Z)}
		m.max = r3.Vec{X: max(m.max.X, p.X), Y: max(m.max.Y, p.Y), Z: max(m.max.Z, p.Z)}
	}
	m.Nodes = append(m.Nodes, p)
	return len(m.Nodes) - 1
}

// AddTriangle appends a triangle referencing three node indices.
func (m *Mesh) AddTriangle(n1, n2, n3 int) {
	m.Triangles = append(m.Triangles, [3]int{n1, n2, n3})
}

// Bounds returns the axis-aligned bounding box of all nodes. ok is false
// while the mesh is empty.
func (m *Mesh) Bounds() (lo, hi r3.Vec, ok bool) {
	if len(m.Nodes) == 0 {
		return r3.Vec{}, r3.Vec{}, false
	}
	return m.min, m.max, true
}
