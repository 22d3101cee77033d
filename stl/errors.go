package stl

import "fmt"

// ParseError reports a violation of the ASCII STL grammar. Line is the
// 1-based number of the offending line, or 0 when the stream ended before
// any line could be blamed.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// TruncationError reports a short read inside a binary STL stream. Facets
// decoded before the truncation point remain delivered to the builder.
type TruncationError struct {
	Context string
	Err     error
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("truncated binary STL %s: %s", e.Context, e.Err)
}

func (e *TruncationError) Unwrap() error { return e.Err }

// DetectError reports an I/O failure while sniffing the stream format.
// Detection falls back to the text format on such failures, so the parse
// still proceeds and fails with a better diagnostic if the content is
// actually garbage.
type DetectError struct {
	Err error
}

func (e *DetectError) Error() string {
	return fmt.Sprintf("format detection failed: %s", e.Err)
}

func (e *DetectError) Unwrap() error { return e.Err }
