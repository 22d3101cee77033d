package stl

import (
	"encoding/binary"
	"io"

	"github.com/dhamidi/trimesh/progress"
)

// Facet records are read up to 80 at a time into a reusable buffer, so
// decoding stays linear in time and constant in extra memory.
const binaryChunkFacets = 80

// readBinary parses one binary STL block: an 80-byte opaque header, a
// 4-byte little-endian facet count, then 50-byte facet records. The count
// is advisory only; it sizes the progress scope and bounds the read loop,
// never guarantees available bytes. A short read on the header or on a
// chunk is a truncation error, but complete records that did arrive are
// decoded and forwarded first; nothing is rolled back.
func (r *Reader) readBinary(stream io.Reader, ps *progress.Scope) error {
	var header [binaryHeaderSize + binaryCountSize]byte
	if _, err := io.ReadFull(stream, header[:]); err != nil {
		return &TruncationError{Context: "header", Err: err}
	}
	facetCount := int(binary.LittleEndian.Uint32(header[binaryHeaderSize:]))

	merge := newMergeIndex(r.builder)
	ps.Start("reading binary STL", float64(facetCount))

	buf := make([]byte, facetSize*binaryChunkFacets)
	buffered := 0
	off := 0
	for done := 0; done < facetCount && ps.More(); done++ {
		if buffered == 0 {
			want := min(binaryChunkFacets, facetCount-done)
			n, err := io.ReadFull(stream, buf[:want*facetSize])
			if err != nil {
				// Salvage the complete records of the short
				// chunk before reporting the truncation.
				for off = 0; off+facetSize <= n; off += facetSize {
					r.decodeFacet(merge, buf[off:off+facetSize])
					ps.Next()
				}
				return &TruncationError{Context: "facet data", Err: err}
			}
			buffered = want
			off = 0
		}

		r.decodeFacet(merge, buf[off:off+facetSize])
		off += facetSize
		buffered--
		ps.Next()
	}

	return ps.Err()
}

// decodeFacet forwards one 50-byte facet record through the merge index.
// The 12-byte normal at offset 0 is not needed for mesh construction and
// is skipped; triangles degenerating under vertex merge are dropped.
func (r *Reader) decodeFacet(merge *mergeIndex, rec []byte) {
	n1 := merge.AddOrReuse(vec3At(rec, 12))
	n2 := merge.AddOrReuse(vec3At(rec, 24))
	n3 := merge.AddOrReuse(vec3At(rec, 36))
	if n1 != n2 && n2 != n3 && n3 != n1 {
		r.builder.AddTriangle(n1, n2, n3)
	}
}
