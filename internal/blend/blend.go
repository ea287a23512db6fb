package blend

import (
	"github.com/gogpu/gputypes"

	"golang.org/x/image/math/f32"
)

// Blend combines a source fragment color with the destination pixel color
// under the given blend state. RGB and alpha are evaluated independently:
// each computes factor(src)*src OP factor(dst)*dst under the component's
// operation. Channels are clamped to [0, 1] before storage.
//
// Colors are straight (non-premultiplied) RGBA in [0, 1].
func Blend(state gputypes.BlendState, src, dst f32.Vec4) f32.Vec4 {
	sf := factor(state.Color.SrcFactor, src, dst)
	df := factor(state.Color.DstFactor, src, dst)
	sfa := alphaFactor(state.Alpha.SrcFactor, src, dst)
	dfa := alphaFactor(state.Alpha.DstFactor, src, dst)

	var out f32.Vec4
	for i := 0; i < 3; i++ {
		out[i] = combine(state.Color.Operation, src[i]*sf[i], dst[i]*df[i])
	}
	out[3] = combine(state.Alpha.Operation, src[3]*sfa, dst[3]*dfa)

	for i := range out {
		out[i] = clamp01(out[i])
	}
	return out
}

// factor expands a blend factor into per-channel RGB multipliers.
func factor(f gputypes.BlendFactor, src, dst f32.Vec4) f32.Vec3 {
	switch f {
	case gputypes.BlendFactorZero:
		return f32.Vec3{0, 0, 0}
	case gputypes.BlendFactorOne:
		return f32.Vec3{1, 1, 1}
	case gputypes.BlendFactorSrc:
		return f32.Vec3{src[0], src[1], src[2]}
	case gputypes.BlendFactorOneMinusSrc:
		return f32.Vec3{1 - src[0], 1 - src[1], 1 - src[2]}
	case gputypes.BlendFactorSrcAlpha:
		return f32.Vec3{src[3], src[3], src[3]}
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return f32.Vec3{1 - src[3], 1 - src[3], 1 - src[3]}
	case gputypes.BlendFactorDst:
		return f32.Vec3{dst[0], dst[1], dst[2]}
	case gputypes.BlendFactorOneMinusDst:
		return f32.Vec3{1 - dst[0], 1 - dst[1], 1 - dst[2]}
	case gputypes.BlendFactorDstAlpha:
		return f32.Vec3{dst[3], dst[3], dst[3]}
	case gputypes.BlendFactorOneMinusDstAlpha:
		return f32.Vec3{1 - dst[3], 1 - dst[3], 1 - dst[3]}
	default:
		return f32.Vec3{1, 1, 1}
	}
}

// alphaFactor expands a blend factor into the alpha-channel multiplier.
// Color factors degenerate to their alpha components here, matching GPU
// semantics.
func alphaFactor(f gputypes.BlendFactor, src, dst f32.Vec4) float32 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc, gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrc, gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorDst, gputypes.BlendFactorDstAlpha:
		return dst[3]
	case gputypes.BlendFactorOneMinusDst, gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dst[3]
	default:
		return 1
	}
}

func combine(op gputypes.BlendOperation, s, d float32) float32 {
	switch op {
	case gputypes.BlendOperationAdd:
		return s + d
	case gputypes.BlendOperationSubtract:
		return s - d
	case gputypes.BlendOperationReverseSubtract:
		return d - s
	case gputypes.BlendOperationMin:
		return min(s, d)
	case gputypes.BlendOperationMax:
		return max(s, d)
	default:
		return s + d
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
