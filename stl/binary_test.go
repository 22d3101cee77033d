package stl

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func putVec(buf *bytes.Buffer, v r3.Vec) {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(c)))
		buf.Write(b[:])
	}
}

// binarySTL assembles a binary STL block. The declared facet count may
// differ from the number of records actually appended.
func binarySTL(header string, declared int, facets ...[3]r3.Vec) []byte {
	var buf bytes.Buffer
	var head [binaryHeaderSize]byte
	copy(head[:], header)
	buf.Write(head[:])

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(declared))
	buf.Write(count[:])

	for _, f := range facets {
		putVec(&buf, r3.Vec{Z: 1}) // normal, ignored by the reader
		for _, v := range f {
			putVec(&buf, v)
		}
		buf.Write([]byte{0, 0}) // reserved
	}
	return buf.Bytes()
}

func readBytes(t *testing.T, input []byte) (*recorder, error) {
	t.Helper()
	rec := &recorder{}
	err := NewReader(rec).Read(context.Background(), bytes.NewReader(input))
	return rec, err
}

func TestReadBinaryMinimal(t *testing.T) {
	input := binarySTL("exported part", 1,
		[3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}})

	rec, err := readBytes(t, input)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(rec.nodes) != 3 {
		t.Errorf("AddNode calls = %d, want 3", len(rec.nodes))
	}
	if len(rec.triangles) != 1 || rec.triangles[0] != [3]int{0, 1, 2} {
		t.Errorf("triangles = %v, want [[0 1 2]]", rec.triangles)
	}
}

func TestReadBinaryHeaderStartingWithSolid(t *testing.T) {
	// A binary header may legally begin with "solid "; the byte-range
	// sniff must still pick the binary path.
	input := binarySTL("solid exported from somewhere", 1,
		[3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}})

	rec, err := readBytes(t, input)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(rec.triangles) != 1 {
		t.Errorf("triangles = %d, want 1", len(rec.triangles))
	}
}

func TestReadBinarySharedVertices(t *testing.T) {
	// Two facets sharing an edge: 4 distinct nodes, not 6.
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 1, Y: 1, Z: 0}
	input := binarySTL("", 2, [3]r3.Vec{a, b, c}, [3]r3.Vec{b, d, c})

	rec, err := readBytes(t, input)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(rec.nodes) != 4 {
		t.Errorf("AddNode calls = %d, want 4", len(rec.nodes))
	}
	if len(rec.triangles) != 2 {
		t.Errorf("triangles = %d, want 2", len(rec.triangles))
	}
}

func TestReadBinaryTruncated(t *testing.T) {
	// Declared count 5 with only 3 complete records: the 3 decoded
	// triangles stay delivered, then the read fails.
	tri := func(i float64) [3]r3.Vec {
		return [3]r3.Vec{{X: i, Y: 0, Z: 0}, {X: i + 1, Y: 0, Z: 0}, {X: i, Y: 1, Z: 0}}
	}
	input := binarySTL("", 5, tri(0), tri(10), tri(20))

	rec, err := readBytes(t, input)
	var terr *TruncationError
	if !errors.As(err, &terr) {
		t.Fatalf("Read error = %v, want *TruncationError", err)
	}
	if len(rec.triangles) != 3 {
		t.Errorf("triangles delivered before truncation = %d, want 3", len(rec.triangles))
	}
}

func TestReadBinaryTruncatedMidRecord(t *testing.T) {
	tri := [3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	input := binarySTL("", 2, tri)
	input = append(input, make([]byte, 20)...) // 20 of 50 bytes of record 2

	rec, err := readBytes(t, input)
	var terr *TruncationError
	if !errors.As(err, &terr) {
		t.Fatalf("Read error = %v, want *TruncationError", err)
	}
	if len(rec.triangles) != 1 {
		t.Errorf("triangles delivered = %d, want 1", len(rec.triangles))
	}
}

func TestReadBinaryTruncatedHeader(t *testing.T) {
	// 134+ bytes with a non-ASCII byte classify as binary, but the
	// stream ends inside the second block's header.
	tri := [3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	input := binarySTL("", 1, tri)
	input = append(input, []byte{0xFF, 0x01, 0x02}...)

	rec, err := readBytes(t, input)
	var terr *TruncationError
	if !errors.As(err, &terr) {
		t.Fatalf("Read error = %v, want *TruncationError", err)
	}
	if terr.Context != "header" {
		t.Errorf("truncation context = %q, want %q", terr.Context, "header")
	}
	if len(rec.triangles) != 1 {
		t.Errorf("triangles delivered = %d, want 1", len(rec.triangles))
	}
}

func TestReadBinaryZeroCountBlock(t *testing.T) {
	// A lone zero-count file is 84 bytes and sniffs as text, but a
	// zero-count block concatenated after a real one is parsed as
	// binary and yields nothing.
	tri := [3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	input := append(binarySTL("", 1, tri), binarySTL("\x80empty", 0)...)

	rec, err := readBytes(t, input)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(rec.nodes) != 3 || len(rec.triangles) != 1 {
		t.Errorf("nodes = %d, triangles = %d, want 3, 1", len(rec.nodes), len(rec.triangles))
	}
}

func TestReadBinaryDegenerateDropped(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	q := r3.Vec{X: 4, Y: 5, Z: 6}
	input := binarySTL("", 2,
		[3]r3.Vec{p, p, q},
		[3]r3.Vec{p, q, p})

	rec, err := readBytes(t, input)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(rec.nodes) != 2 {
		t.Errorf("AddNode calls = %d, want 2", len(rec.nodes))
	}
	if len(rec.triangles) != 0 {
		t.Errorf("triangles = %v, want none", rec.triangles)
	}
}

func TestReadBinaryManyChunks(t *testing.T) {
	// More facets than one 80-record chunk holds.
	const n = 205
	facets := make([][3]r3.Vec, n)
	for i := range facets {
		f := float64(i)
		facets[i] = [3]r3.Vec{{X: f, Y: 0, Z: 0}, {X: f + 0.5, Y: 1, Z: 0}, {X: f, Y: 0, Z: 1}}
	}
	rec, err := readBytes(t, binarySTL("big", n, facets...))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(rec.triangles) != n {
		t.Errorf("triangles = %d, want %d", len(rec.triangles), n)
	}
}

func TestReadBinaryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tri := [3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	rec := &recorder{}
	err := NewReader(rec).Read(ctx, bytes.NewReader(binarySTL("", 1, tri)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Read error = %v, want context.Canceled", err)
	}
	if len(rec.triangles) != 0 {
		t.Errorf("triangles = %d, want 0", len(rec.triangles))
	}
}
