package stl

import "io"

// Format identifies one of the two STL encodings.
type Format int

const (
	FormatText Format = iota
	FormatBinary
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "text"
}

// Binary STL layout constants.
const (
	binaryHeaderSize = 80
	binaryCountSize  = 4
	facetSize        = 50 // 12-byte normal + 3 vertices + 2 reserved bytes

	// A binary file can never be shorter than its header, count and a
	// single facet record. Anything shorter must be text.
	minBinarySize = binaryHeaderSize + binaryCountSize + facetSize
)

// DetectFormat classifies the stream as text or binary STL, leaving the
// stream position unchanged. A binary file may legally begin with the
// bytes "solid " inside its opaque header, so classification inspects the
// byte range of the whole minimal prefix instead of sniffing keywords: any
// byte above '~' in the first 134 bytes forces binary.
//
// On a read or seek failure the stream is classified as text anyway; the
// error is returned so the caller can report it. The more permissive text
// path produces a clearer diagnostic than misreading garbage as binary.
func DetectFormat(stream io.ReadSeeker) (Format, error) {
	start, err := stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return FormatText, &DetectError{Err: err}
	}

	var prefix [minBinarySize]byte
	n, err := io.ReadFull(stream, prefix[:])
	if _, seekErr := stream.Seek(start, io.SeekStart); seekErr != nil {
		return FormatText, &DetectError{Err: seekErr}
	}
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return FormatText, &DetectError{Err: err}
	}

	if n < minBinarySize {
		return FormatText, nil
	}
	for _, b := range prefix[:n] {
		if b > '~' {
			return FormatBinary, nil
		}
	}
	return FormatText, nil
}
