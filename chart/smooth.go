package chart

import "gonum.org/v1/gonum/interp"

// minSplinePoints is the minimum series length for spline smoothing.
const minSplinePoints = 4

// SmoothFactor is the density multiplier for the smoothed curve.
const SmoothFactor = 3

// Smooth fits a natural cubic spline over (xs, ys) and evaluates it at
// factor times the input density. With fewer than four points, or when the
// fit fails (duplicate or non-increasing x values), the input is returned
// unchanged and ok is false. Smooth never panics and surfaces no error;
// callers fall back to the raw series.
func Smooth(xs, ys []float64, factor int) (sx, sy []float64, ok bool) {
	if len(xs) < minSplinePoints || len(xs) != len(ys) || factor < 1 {
		return xs, ys, false
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return xs, ys, false
		}
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(xs, ys); err != nil {
		return xs, ys, false
	}

	n := len(xs) * factor
	sx = make([]float64, n)
	sy = make([]float64, n)
	step := (xs[len(xs)-1] - xs[0]) / float64(n-1)
	for i := range sx {
		x := xs[0] + float64(i)*step
		sx[i] = x
		sy[i] = spline.Predict(x)
	}

	return sx, sy, true
}
