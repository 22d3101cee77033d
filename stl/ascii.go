package stl

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dhamidi/trimesh/progress"
)

// Progress is reported roughly once per this many bytes of text consumed.
const textProgressStep = 1 << 20

// hasKeyword reports whether line starts with the given keyword after any
// leading blanks, compared case-insensitively. Only the keyword prefix is
// checked; trailing content is free-form.
func hasKeyword(line []byte, keyword string) bool {
	pos := 0
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	if len(line)-pos < len(keyword) {
		return false
	}
	for i := 0; i < len(keyword); i++ {
		ch := line[pos+i]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		if ch != keyword[i] {
			return false
		}
	}
	return true
}

// readText parses one "solid ... endsolid" block from the line reader.
// remaining is the byte count left in the stream, used only to size the
// progress scope. A stream ending at the start of a vertex triple is an
// informally terminated but valid block; files that omit "endsolid" at a
// facet boundary are common enough to tolerate.
func (r *Reader) readText(lr *lineReader, remaining int64, ps *progress.Scope) error {
	// The "solid ..." header: only its presence matters.
	if lr.readLine() == nil {
		return &ParseError{Msg: "premature end of file"}
	}

	merge := newMergeIndex(r.builder)

	ps.Start("reading text STL", float64(1+remaining/textProgressStep))
	nextTick := lr.consumed + textProgressStep

	for ps.More() {
		if lr.consumed > nextTick {
			ps.Next()
			nextTick += textProgressStep
		}

		line := lr.readLine() // "facet normal nx ny nz"
		if line == nil {
			return &ParseError{Msg: "premature end of file"}
		}
		if hasKeyword(line, "endsolid") {
			return nil
		}
		if !hasKeyword(line, "facet") {
			return &ParseError{Line: lr.line, Msg: "unexpected format of facet"}
		}

		line = lr.readLine() // "outer loop"
		if line == nil || !hasKeyword(line, "outer") {
			return &ParseError{Line: lr.line, Msg: "unexpected format of facet"}
		}

		var tri [3]r3.Vec
		informalEnd := false
		for i := range tri {
			line = lr.readLine()
			if line == nil {
				if i > 0 {
					return &ParseError{Msg: "premature end of file"}
				}
				informalEnd = true
				break
			}
			v, ok := readVertex(line)
			if !ok {
				return &ParseError{Line: lr.line, Msg: "cannot read vertex coordinates"}
			}
			tri[i] = v
		}
		if informalEnd {
			return nil
		}

		n1 := merge.AddOrReuse(tri[0])
		n2 := merge.AddOrReuse(tri[1])
		n3 := merge.AddOrReuse(tri[2])
		if n1 != n2 && n2 != n3 && n3 != n1 {
			r.builder.AddTriangle(n1, n2, n3)
		}

		// "endloop" and "endfacet" carry no data. Their absence
		// desynchronizes the next iteration's keyword checks, which
		// is where it gets diagnosed.
		lr.readLine()
		lr.readLine()
	}

	return ps.Err()
}
