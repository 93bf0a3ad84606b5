package locomotion

import (
	"slices"

	"github.com/oomph-ac/locomotion/game"
)

// CurveKey is a single point on a Curve.
type CurveKey struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
}

// Curve is a piecewise linear response curve. Evaluating outside of the key range clamps to the first or
// last key.
type Curve struct {
	keys []CurveKey
}

// NewCurve returns a curve through the given keys, which may be passed in any order.
func NewCurve(keys ...CurveKey) *Curve {
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, func(a, b CurveKey) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})
	return &Curve{keys: sorted}
}

// DefaultStrafeCurve maps 0 degrees to forward speed, 90 degrees to strafe speed and 180 degrees to
// backward speed.
func DefaultStrafeCurve() *Curve {
	return NewCurve(
		CurveKey{Time: 0, Value: 0},
		CurveKey{Time: 90, Value: 1},
		CurveKey{Time: 180, Value: 2},
	)
}

// Keys returns a copy of the keys of the curve, ordered by time.
func (c *Curve) Keys() []CurveKey {
	if c == nil {
		return nil
	}
	return slices.Clone(c.keys)
}

// Eval returns the value of the curve at t. An empty curve always evaluates to zero.
func (c *Curve) Eval(t float32) float32 {
	if c == nil || len(c.keys) == 0 {
		return 0
	}
	if t <= c.keys[0].Time {
		return c.keys[0].Value
	}
	last := c.keys[len(c.keys)-1]
	if t >= last.Time {
		return last.Value
	}
	for i := 1; i < len(c.keys); i++ {
		hi := c.keys[i]
		if t > hi.Time {
			continue
		}
		lo := c.keys[i-1]
		if hi.Time == lo.Time {
			return hi.Value
		}
		return game.Lerp(lo.Value, hi.Value, (t-lo.Time)/(hi.Time-lo.Time))
	}
	return last.Value
}
