package smath

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Identity returns the 4x4 identity matrix.
func Identity() f32.Mat4 {
	var m f32.Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// MulMat4 multiplies two column-major 4x4 matrices: result = a * b.
func MulMat4(a, b f32.Mat4) f32.Mat4 {
	var out f32.Mat4
	for i := 0; i < 4; i++ { // column of b
		for j := 0; j < 4; j++ { // row of a
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// MulMat4Vec4 transforms v by the column-major matrix m.
func MulMat4Vec4(m f32.Mat4, v f32.Vec4) f32.Vec4 {
	return f32.Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// Perspective builds a right-handed perspective projection matrix mapping
// depth to [-1, 1] clip space (OpenGL convention). fovY is the vertical
// field of view in radians; near and far must be positive with far > near.
func Perspective(fovY, aspect, near, far float32) f32.Mat4 {
	f := 1 / float32(math.Tan(float64(fovY)/2))
	var m f32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = (2 * near * far) / (near - far)
	return m
}

// Translate builds a translation matrix.
func Translate(x, y, z float32) f32.Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// RotateY builds a rotation matrix around the Y axis. Angle is in radians.
func RotateY(angle float32) f32.Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	m := Identity()
	m[0], m[8] = c, s
	m[2], m[10] = -s, c
	return m
}

// RotateX builds a rotation matrix around the X axis. Angle is in radians.
func RotateX(angle float32) f32.Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	m := Identity()
	m[5], m[9] = c, -s
	m[6], m[10] = s, c
	return m
}

// LookAt builds a right-handed view matrix positioned at eye, looking at
// center, with the given up direction.
func LookAt(eye, center, up f32.Vec3) f32.Mat4 {
	f := Normalize3(Sub3(center, eye))
	s := Normalize3(Cross3(f, up))
	u := Cross3(s, f)

	var m f32.Mat4
	m[0], m[4], m[8] = s[0], s[1], s[2]
	m[1], m[5], m[9] = u[0], u[1], u[2]
	m[2], m[6], m[10] = -f[0], -f[1], -f[2]
	m[12] = -Dot3(s, eye)
	m[13] = -Dot3(u, eye)
	m[14] = Dot3(f, eye)
	m[15] = 1
	return m
}
