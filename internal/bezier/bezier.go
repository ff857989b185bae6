// Package bezier implements the cubic-bezier easing curves used by the
// device firmware's layer animation code.
package bezier

// Solve evaluates the cubic bezier defined by control points
// P0=(0,0), P1=(p1x,p1y), P2=(p2x,p2y), P3=(1,1) at horizontal position t.
//
// Newton-Raphson iteration inverts x(s)=t, then y(s) is evaluated.
// The iteration count is fixed so results are bit-stable across runs.
func Solve(t, p1x, p1y, p2x, p2y float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	s := t // initial guess
	for i := 0; i < 8; i++ {
		s2 := s * s
		s3 := s2 * s
		oms := 1 - s
		oms2 := oms * oms

		x := 3*oms2*s*p1x + 3*oms*s2*p2x + s3
		dx := 3*oms2*p1x + 6*oms*s*(p2x-p1x) + 3*s2*(1-p2x)

		if abs32(dx) < 1e-10 {
			break
		}
		s = clamp01(s - (x-t)/dx)
	}

	s2 := s * s
	s3 := s2 * s
	oms := 1 - s
	oms2 := oms * oms

	y := 3*oms2*s*p1y + 3*oms*s2*p2y + s3
	return clamp01(y)
}

// EaseOut is the (0, 0, 0.58, 1) preset. Fast start, slow end.
// Used by the move transition's entry phase.
func EaseOut(t float32) float32 {
	return Solve(t, 0, 0, 0.58, 1)
}

// EaseIn is the (0.42, 0, 1, 1) preset. Slow start, fast end.
// Used by the move transition's exit phase.
func EaseIn(t float32) float32 {
	return Solve(t, 0.42, 0, 1, 1)
}

// EaseInOut is the (0.42, 0, 0.58, 1) preset.
// Used by the swipe transition, bar sweeps and the entry slide-in.
func EaseInOut(t float32) float32 {
	return Solve(t, 0.42, 0, 0.58, 1)
}

// SwipeTable precomputes the per-scanline x-offset curve for the swipe
// effect: one eased value per row, scaled back to the overlay height.
func SwipeTable(height int) []int32 {
	vals := make([]int32, 0, height)
	for y := 0; y < height; y++ {
		p := float32(y) / float32(height)
		vals = append(vals, int32(EaseInOut(p)*float32(height)))
	}
	return vals
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
