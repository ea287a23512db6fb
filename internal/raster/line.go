package raster

// WalkLine traces the integer Bresenham walk from (x0, y0) to (x1, y1),
// calling emit for every pixel with the normalized walk parameter t in
// [0, 1]. t is linear in steps along the major axis, which is what the
// line stage's non-perspective attribute interpolation wants.
//
// Both endpoints are emitted. Bounds clipping is the caller's concern.
func WalkLine(x0, y0, x1, y1 int, emit func(x, y int, t float32)) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	steps := max(dx, dy)
	if steps == 0 {
		emit(x0, y0, 0)
		return
	}
	invSteps := 1 / float32(steps)

	err := dx - dy
	x, y := x0, y0
	for i := 0; ; i++ {
		emit(x, y, float32(i)*invSteps)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
