// Package progress provides hierarchical, cancellable progress accounting
// for work whose total extent may be unknown in advance.
//
// A Scope covers a slice of the overall [0, 1] range. Child scopes carved
// out with Sub subdivide their parent's slice, so deeply nested work still
// reports a single monotonic fraction at the top. An infinite root scope
// maps consumed steps logarithmically, which makes it usable for loops
// whose iteration count is unknown: every iteration is given a fixed share
// of whatever range remains.
//
// Cancellation is cooperative. More reports whether further work is
// permitted; callers poll it between units of work and stop when it
// returns false.
package progress

import (
	"context"
	"math"
)

// Reporter receives the overall completed fraction, in [0, 1].
type Reporter func(name string, fraction float64)

type state struct {
	ctx    context.Context
	report Reporter
}

// Scope is one level of a progress hierarchy. The zero value is unusable;
// create scopes with Root or Infinite and subdivide them with Sub.
type Scope struct {
	st       *state
	name     string
	from, to float64
	total    float64
	pos      float64
	infinite bool
}

// Root returns a top-level scope covering the whole [0, 1] range with the
// given number of steps. report may be nil.
func Root(ctx context.Context, total float64, report Reporter) *Scope {
	return &Scope{
		st:    &state{ctx: ctx, report: report},
		to:    1,
		total: total,
	}
}

// Infinite returns a top-level scope for an unknown number of steps.
// Consuming p steps completes the fraction 1-0.5^p of the range, so each
// successive step takes half of what remains and the sum never exceeds 1.
func Infinite(ctx context.Context, report Reporter) *Scope {
	return &Scope{
		st:       &state{ctx: ctx, report: report},
		to:       1,
		total:    1,
		infinite: true,
	}
}

// value maps a step position inside this scope to the overall scale.
func (s *Scope) value(pos float64) float64 {
	if s.total <= 0 {
		return s.from
	}
	f := pos / s.total
	if s.infinite {
		f = 1 - math.Pow(0.5, f)
	} else if f > 1 {
		f = 1
	}
	return s.from + (s.to-s.from)*f
}

// Sub carves a child scope out of the next steps of s and advances s past
// them. The child spans that portion of the overall range; give it its own
// step count with Start before advancing it.
func (s *Scope) Sub(steps float64) *Scope {
	if s == nil {
		return nil
	}
	child := &Scope{
		st:    s.st,
		from:  s.value(s.pos),
		to:    s.value(s.pos + steps),
		total: 1,
	}
	s.pos += steps
	return child
}

// Start names the scope and sets how many steps it contains.
func (s *Scope) Start(name string, total float64) {
	if s == nil {
		return
	}
	s.name = name
	s.total = total
	s.pos = 0
}

// More reports whether further work is permitted. It returns false once
// the scope's context is cancelled.
func (s *Scope) More() bool {
	if s == nil {
		return true
	}
	return s.st.ctx.Err() == nil
}

// Err returns the cancellation cause, or nil while work is permitted.
func (s *Scope) Err() error {
	if s == nil {
		return nil
	}
	return s.st.ctx.Err()
}

// Next advances the scope by one step and reports the new overall fraction.
func (s *Scope) Next() {
	s.NextN(1)
}

// NextN advances the scope by steps steps.
func (s *Scope) NextN(steps float64) {
	if s == nil {
		return
	}
	s.pos += steps
	if s.st.report != nil {
		s.st.report(s.name, s.value(s.pos))
	}
}

// Fraction returns the scope's current position on the overall [0, 1] scale.
func (s *Scope) Fraction() float64 {
	if s == nil {
		return 0
	}
	return s.value(s.pos)
}
