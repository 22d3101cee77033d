package stl

import (
	"encoding/binary"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

// scanFloat parses one decimal floating-point token from line starting at
// pos, skipping leading blanks. It returns the value, the cursor position
// after the token, and whether any digits were consumed. The decimal
// separator is always '.', independent of the process locale.
func scanFloat(line []byte, pos int) (float64, int, bool) {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	start := pos

	if pos < len(line) && (line[pos] == '+' || line[pos] == '-') {
		pos++
	}
	digits := 0
	for pos < len(line) && isDigit(line[pos]) {
		pos++
		digits++
	}
	if pos < len(line) && line[pos] == '.' {
		pos++
		for pos < len(line) && isDigit(line[pos]) {
			pos++
			digits++
		}
	}
	if digits == 0 {
		return 0, start, false
	}

	// Consume an exponent only if at least one digit follows it.
	if pos < len(line) && (line[pos] == 'e' || line[pos] == 'E') {
		mark := pos
		pos++
		if pos < len(line) && (line[pos] == '+' || line[pos] == '-') {
			pos++
		}
		expDigits := 0
		for pos < len(line) && isDigit(line[pos]) {
			pos++
			expDigits++
		}
		if expDigits == 0 {
			pos = mark
		}
	}

	v, err := strconv.ParseFloat(string(line[start:pos]), 64)
	if err != nil {
		return 0, start, false
	}
	return v, pos, true
}

// readVertex parses a "vertex x y z" line. The leading keyword is skipped
// without validation, matching the tolerance of the original format: any
// mix of letters and blanks may precede the coordinates.
func readVertex(line []byte) (r3.Vec, bool) {
	pos := 0
	for pos < len(line) && (isSpace(line[pos]) || isAlpha(line[pos])) {
		pos++
	}

	var v r3.Vec
	var ok bool
	if v.X, pos, ok = scanFloat(line, pos); !ok {
		return r3.Vec{}, false
	}
	if v.Y, pos, ok = scanFloat(line, pos); !ok {
		return r3.Vec{}, false
	}
	if v.Z, _, ok = scanFloat(line, pos); !ok {
		return r3.Vec{}, false
	}
	return v, true
}

// float32At decodes a little-endian IEEE-754 single-precision value at the
// given offset. binary.LittleEndian reassembles the bytes explicitly, so
// the result is byte-exact regardless of host endianness.
func float32At(b []byte, off int) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:])))
}

// vec3At decodes three consecutive little-endian singles at the given offset.
func vec3At(b []byte, off int) r3.Vec {
	return r3.Vec{
		X: float32At(b, off),
		Y: float32At(b, off+4),
		Z: float32At(b, off+8),
	}
}
