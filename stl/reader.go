package stl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tliron/commonlog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dhamidi/trimesh/progress"
)

// Builder receives the decoded mesh. AddNode assigns monotonically
// increasing indices in first-seen order; AddTriangle receives three
// pairwise-distinct indices previously returned by AddNode. The reader
// never stores geometry itself, it only forwards.
type Builder interface {
	AddNode(p r3.Vec) int
	AddTriangle(n1, n2, n3 int)
}

// Reader decodes STL streams, text or binary, into a Builder, merging
// vertices that coincide within tolerance. A Reader is not safe for
// concurrent use; it owns the stream for the duration of one Read call.
type Reader struct {
	builder Builder
	log     commonlog.Logger
	report  progress.Reporter
}

type Option func(*Reader)

// WithLogger sets the diagnostics sink. Structural, truncation and
// detection failures are each reported there exactly once.
func WithLogger(log commonlog.Logger) Option {
	return func(r *Reader) {
		r.log = log
	}
}

// WithProgress sets a progress reporter for Read calls.
func WithProgress(report progress.Reporter) Option {
	return func(r *Reader) {
		r.report = report
	}
}

func NewReader(builder Builder, opts ...Option) *Reader {
	r := &Reader{
		builder: builder,
		log:     commonlog.GetLogger("stl"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read detects the stream format once, then decodes as many concatenated
// STL blocks as the stream yields, skipping whitespace between them. It
// stops on the first structural or truncation error, or when ctx is
// cancelled. A nil return means the whole stream was consumed without a
// failure; cancellation surfaces as the context's error, with everything
// forwarded so far left intact in the builder.
func (r *Reader) Read(ctx context.Context, stream io.ReadSeeker) error {
	size, err := streamSize(stream)
	if err != nil {
		err = fmt.Errorf("cannot measure stream: %w", err)
		r.log.Errorf("%s", err)
		return err
	}

	format, err := DetectFormat(stream)
	if err != nil {
		// Fall through on the text path, which fails with a clearer
		// diagnostic if the content really is unreadable.
		r.log.Errorf("%s", err)
	}

	top := progress.Infinite(ctx, r.report)

	if format == FormatBinary {
		err = r.readAllBinary(stream, top)
	} else {
		err = r.readAllText(stream, size, top)
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		r.log.Errorf("%s", err)
	}
	return err
}

// readAllText parses text blocks until the stream runs out. The line
// reader is shared across blocks so buffered bytes are never lost at a
// block boundary.
func (r *Reader) readAllText(stream io.ReadSeeker, size int64, top *progress.Scope) error {
	lr := newLineReader(stream)
	for {
		if err := r.readText(lr, size-lr.consumed, top.Sub(2)); err != nil {
			return err
		}
		if !lr.skipBlankLines() {
			return nil
		}
	}
}

func (r *Reader) readAllBinary(stream io.ReadSeeker, top *progress.Scope) error {
	for {
		if err := r.readBinary(stream, top.Sub(2)); err != nil {
			return err
		}
		more, err := skipWhitespace(stream)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func streamSize(stream io.ReadSeeker) (int64, error) {
	pos, err := stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := stream.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	return end - pos, nil
}

// skipWhitespace consumes whitespace bytes and reports whether any data
// remains. The first non-whitespace byte is pushed back with a seek.
func skipWhitespace(stream io.ReadSeeker) (bool, error) {
	var b [1]byte
	for {
		n, err := stream.Read(b[:])
		if n == 0 {
			if err == nil || err == io.EOF {
				return false, nil
			}
			return false, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			_, err := stream.Seek(-1, io.SeekCurrent)
			return true, err
		}
	}
}
