// Package stl provides a streaming reader for the STL triangle-mesh
// exchange format, covering both the textual and the binary encoding,
// with integrated duplicate-vertex elimination.
//
// # Overview
//
// The reader classifies the stream once, then decodes as many
// concatenated STL blocks as the stream yields:
//
//	┌──────────┐    ┌──────────┐    ┌───────────────┐    ┌─────────┐
//	│  Stream  │───▶│ Sniffer  │───▶│ Text / Binary │───▶│ Builder │
//	│ (bytes)  │    │ (format) │    │    parser     │    │ (sink)  │
//	└──────────┘    └──────────┘    └───────────────┘    └─────────┘
//	                                       │
//	                                       ▼
//	                                ┌───────────────┐
//	                                │  merge index  │
//	                                │ (per block)   │
//	                                └───────────────┘
//
// Decoded geometry is forwarded to a caller-supplied Builder; the package
// stores nothing itself. Vertices closer than a fixed tolerance are merged
// and reuse the index first assigned to them. Triangles whose three
// indices are not pairwise distinct after merging are dropped silently.
// Merging is scoped to a single block: concatenated blocks never share
// vertex indices, even for coincident geometry.
//
// # Format detection
//
// A stream shorter than the smallest possible binary file (134 bytes) is
// always text. Otherwise the first 134 bytes decide: any byte outside the
// printable ASCII range means binary. Keyword sniffing is deliberately not
// used, because a binary header may begin with "solid ".
//
// # Errors
//
// Malformed text input produces a *ParseError carrying the offending line
// number; a short read in binary input produces a *TruncationError.
// Failures are additionally reported once to the reader's logger. Work
// already forwarded to the Builder is never rolled back.
//
// # Example
//
//	m := mesh.New()
//	r := stl.NewReader(m)
//	f, _ := os.Open("part.stl")
//	defer f.Close()
//	if err := r.Read(ctx, f); err != nil {
//	    // m still holds everything decoded before the failure
//	}
//
// A Reader is not safe for concurrent use, and the stream must not be
// read by anyone else during a Read call.
package stl
