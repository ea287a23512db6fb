// Package blend provides the stateless depth-comparison and color-blending
// operators used by the fragment stage. Every function is pure: the
// configured equation is evaluated against its two operands with no stored
// state.
package blend

import "github.com/gogpu/gputypes"

// depthEpsilon is the tolerance for the equality-based comparisons.
// Depth values arrive through interpolation, so exact float equality would
// make Equal and NotEqual useless in practice.
const depthEpsilon = 1e-6

// Compare evaluates the depth comparison fn with the incoming fragment
// depth against the stored buffer depth. Equality is approximate within
// depthEpsilon.
func Compare(fn gputypes.CompareFunction, incoming, stored float32) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return incoming < stored
	case gputypes.CompareFunctionEqual:
		return approxEqual(incoming, stored)
	case gputypes.CompareFunctionLessEqual:
		return incoming < stored || approxEqual(incoming, stored)
	case gputypes.CompareFunctionGreater:
		return incoming > stored
	case gputypes.CompareFunctionNotEqual:
		return !approxEqual(incoming, stored)
	case gputypes.CompareFunctionGreaterEqual:
		return incoming > stored || approxEqual(incoming, stored)
	case gputypes.CompareFunctionAlways:
		return true
	default:
		return true
	}
}

func approxEqual(a, b float32) bool {
	d := a - b
	return d < depthEpsilon && d > -depthEpsilon
}
