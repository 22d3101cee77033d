package stl

import "gonum.org/v1/gonum/spatial/r3"

// recorder captures every call made to the builder sink.
type recorder struct {
	nodes     []r3.Vec
	triangles [][3]int
}

func (r *recorder) AddNode(p r3.Vec) int {
	r.nodes = append(r.nodes, p)
	return len(r.nodes) - 1
}

func (r *recorder) AddTriangle(n1, n2, n3 int) {
	r.triangles = append(r.triangles, [3]int{n1, n2, n3})
}
