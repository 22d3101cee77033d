package stl

import (
	"bytes"
	"io"
)

const lineBufferSize = 4096

// lineReader yields one line at a time from a stream through a fixed
// internal buffer. Lines crossing a buffer refill are accumulated in a
// spill buffer; everything else is served as a slice into the buffer
// without copying. Consumed byte counts use int64 so multi-gigabyte
// streams need no special casing.
type lineReader struct {
	r          io.Reader
	buf        []byte
	start, end int
	spill      []byte
	err        error

	pending    []byte
	hasPending bool

	// consumed is the stream offset of the read cursor, counting
	// terminators of lines already returned.
	consumed int64
	// line is the 1-based number of the most recently returned line.
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: r, buf: make([]byte, lineBufferSize)}
}

// readLine returns the next line without its terminator, or nil at end of
// stream. The returned slice is only valid until the next call.
func (lr *lineReader) readLine() []byte {
	if lr.hasPending {
		lr.hasPending = false
		return lr.pending
	}
	line := lr.nextLine()
	if line != nil {
		lr.line++
	}
	return line
}

// peekLine returns the next line without consuming it.
func (lr *lineReader) peekLine() []byte {
	if !lr.hasPending {
		lr.pending = lr.readLine()
		lr.hasPending = lr.pending != nil
	}
	return lr.pending
}

func (lr *lineReader) nextLine() []byte {
	lr.spill = lr.spill[:0]
	for {
		if i := bytes.IndexByte(lr.buf[lr.start:lr.end], '\n'); i >= 0 {
			line := lr.buf[lr.start : lr.start+i]
			lr.consumed += int64(i) + 1
			lr.start += i + 1
			if len(lr.spill) > 0 {
				line = append(lr.spill, line...)
				lr.spill = line
			}
			return trimCR(line)
		}

		// No terminator in the window; stash it and refill.
		lr.spill = append(lr.spill, lr.buf[lr.start:lr.end]...)
		lr.consumed += int64(lr.end - lr.start)
		lr.start, lr.end = 0, 0

		if lr.err != nil {
			if len(lr.spill) > 0 {
				return trimCR(lr.spill)
			}
			return nil
		}
		n, err := lr.r.Read(lr.buf)
		lr.end = n
		if err != nil {
			lr.err = err
		}
	}
}

// skipBlankLines consumes empty and whitespace-only lines and reports
// whether a non-blank line remains in the stream.
func (lr *lineReader) skipBlankLines() bool {
	for {
		line := lr.peekLine()
		if line == nil {
			return false
		}
		if len(bytes.TrimSpace(line)) > 0 {
			return true
		}
		lr.readLine()
	}
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}
