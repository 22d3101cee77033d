package stl

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Two points are considered the same vertex when the squared distance
// between them is below squareConfusion. This absorbs the floating-point
// round-off between duplicate vertices computed independently in adjacent
// facets.
const (
	confusion       = 1e-7
	squareConfusion = confusion * confusion

	// Grid cell edge for the spatial index. Merged clusters are much
	// smaller than a cell, so a lookup rarely probes more than one.
	mergeCell = 8 * confusion
)

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// mergeIndex deduplicates vertices for the duration of one block parse.
// It is a uniform spatial grid: points are bucketed by quantized cell
// coordinates, and equality within a bucket is the tolerant distance
// check, never bit-exact comparison.
type mergeIndex struct {
	sink    Builder
	buckets map[uint64][]mergeEntry
}

type mergeEntry struct {
	point r3.Vec
	index int
}

func newMergeIndex(sink Builder) *mergeIndex {
	return &mergeIndex{
		sink:    sink,
		buckets: make(map[uint64][]mergeEntry, 1024),
	}
}

func cellOf(c float64) int64 {
	return int64(math.Floor(c / mergeCell))
}

func cellHash(x, y, z int64) uint64 {
	h := uint64(fnvOffset)
	for _, c := range [3]int64{x, y, z} {
		v := uint64(c)
		for i := 0; i < 8; i++ {
			h ^= v & 0xff
			h *= fnvPrime
			v >>= 8
		}
	}
	return h
}

// AddOrReuse returns the vertex index previously assigned to a point
// within tolerance of p, or forwards p to the builder's AddNode and
// records the new index. Candidate cells are derived from p offset by the
// tolerance on each axis, so matches straddling a cell boundary are found.
func (m *mergeIndex) AddOrReuse(p r3.Vec) int {
	xlo, xhi := cellOf(p.X-confusion), cellOf(p.X+confusion)
	ylo, yhi := cellOf(p.Y-confusion), cellOf(p.Y+confusion)
	zlo, zhi := cellOf(p.Z-confusion), cellOf(p.Z+confusion)
	for x := xlo; x <= xhi; x++ {
		for y := ylo; y <= yhi; y++ {
			for z := zlo; z <= zhi; z++ {
				for _, e := range m.buckets[cellHash(x, y, z)] {
					if r3.Norm2(r3.Sub(p, e.point)) < squareConfusion {
						return e.index
					}
				}
			}
		}
	}

	index := m.sink.AddNode(p)
	key := cellHash(cellOf(p.X), cellOf(p.Y), cellOf(p.Z))
	m.buckets[key] = append(m.buckets[key], mergeEntry{point: p, index: index})
	return index
}
