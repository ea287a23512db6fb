package smath

import (
	"testing"

	"golang.org/x/image/math/f32"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func TestScalarOps(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp")
	}
	if !near(Lerp(2, 4, 0.25), 2.5) {
		t.Error("Lerp")
	}
	if !near(Fract(2.75), 0.75) || !near(Fract(-0.25), 0.75) {
		t.Errorf("Fract: %v %v", Fract(2.75), Fract(-0.25))
	}
	if !near(Log2(8), 3) {
		t.Error("Log2")
	}
}

func TestVectorOps(t *testing.T) {
	c := Cross3(f32.Vec3{1, 0, 0}, f32.Vec3{0, 1, 0})
	if c != (f32.Vec3{0, 0, 1}) {
		t.Errorf("Cross3 = %v", c)
	}
	n := Normalize3(f32.Vec3{3, 0, 4})
	if !near(n[0], 0.6) || !near(n[2], 0.8) {
		t.Errorf("Normalize3 = %v", n)
	}
	if Normalize3(f32.Vec3{}) != (f32.Vec3{}) {
		t.Error("Normalize3 of zero vector")
	}
}

func TestMulMat4Identity(t *testing.T) {
	id := Identity()
	v := f32.Vec4{1, 2, 3, 1}
	if MulMat4Vec4(id, v) != v {
		t.Error("identity transform changed the vector")
	}
	m := Translate(5, 6, 7)
	if MulMat4(id, m) != m || MulMat4(m, id) != m {
		t.Error("identity multiply changed the matrix")
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(1, 2, 3)
	got := MulMat4Vec4(m, f32.Vec4{0, 0, 0, 1})
	if got != (f32.Vec4{1, 2, 3, 1}) {
		t.Errorf("translated origin = %v", got)
	}
	// Direction vectors (w=0) are unaffected.
	dir := MulMat4Vec4(m, f32.Vec4{0, 1, 0, 0})
	if dir != (f32.Vec4{0, 1, 0, 0}) {
		t.Errorf("translated direction = %v", dir)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	m := Perspective(1, 1, 1, 100)

	// A point on the near plane maps to z/w = -1.
	nearPt := MulMat4Vec4(m, f32.Vec4{0, 0, -1, 1})
	if !near(nearPt[2]/nearPt[3], -1) {
		t.Errorf("near-plane depth = %v, want -1", nearPt[2]/nearPt[3])
	}
	// A point on the far plane maps to z/w = 1.
	farPt := MulMat4Vec4(m, f32.Vec4{0, 0, -100, 1})
	if !near(farPt[2]/farPt[3], 1) {
		t.Errorf("far-plane depth = %v, want 1", farPt[2]/farPt[3])
	}
}

func TestLookAtEye(t *testing.T) {
	m := LookAt(f32.Vec3{0, 0, 5}, f32.Vec3{0, 0, 0}, f32.Vec3{0, 1, 0})
	// The eye maps to the view-space origin.
	got := MulMat4Vec4(m, f32.Vec4{0, 0, 5, 1})
	for i := 0; i < 3; i++ {
		if !near(got[i], 0) {
			t.Fatalf("eye in view space = %v, want origin", got)
		}
	}
	// A point in front of the eye lands on the negative z axis.
	front := MulMat4Vec4(m, f32.Vec4{0, 0, 0, 1})
	if !near(front[2], -5) {
		t.Errorf("front point z = %v, want -5", front[2])
	}
}
