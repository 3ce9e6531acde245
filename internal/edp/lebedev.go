package edp

import (
	"fmt"
	"math"
)

// LebedevPoint is a unit direction with its quadrature weight. Weights of a
// rule sum to one, so a weighted sum is a mean over the sphere.
type LebedevPoint struct {
	Dir    Vec3
	Weight float64
}

// Lebedev returns the rule with n points. Supported sizes are 6, 14, 26,
// 38 and 50, exact for polynomials of degree 3, 5, 7, 9 and 11.
func Lebedev(n int) ([]LebedevPoint, error) {
	var pts []LebedevPoint
	switch n {
	case 6:
		pts = genA1(1.0 / 6)
	case 14:
		pts = append(genA1(1.0/15), genA3(3.0/40)...)
	case 26:
		pts = append(genA1(1.0/21), genA2(4.0/105)...)
		pts = append(pts, genA3(27.0/840)...)
	case 38:
		pts = append(genA1(1.0/105), genA3(9.0/280)...)
		pts = append(pts, genC1(0.4597008433809831, 0.8880738339771153, 1.0/35)...)
	case 50:
		pts = append(genA1(0.0126984126984127), genA2(0.02257495590828924)...)
		pts = append(pts, genA3(0.02109375)...)
		pts = append(pts, genB1(0.3015113445777636, 0.9045340337332909, 0.02017333553791887)...)
	default:
		return nil, fmt.Errorf("lebedev rule with %d points: %w", n, ErrOutOfRange)
	}
	return pts, nil
}

// ±axes, 6 points.
func genA1(w float64) []LebedevPoint {
	var out []LebedevPoint
	for _, s := range []float64{1, -1} {
		out = append(out,
			LebedevPoint{Vec3{s, 0, 0}, w},
			LebedevPoint{Vec3{0, s, 0}, w},
			LebedevPoint{Vec3{0, 0, s}, w},
		)
	}
	return out
}

// Edge midpoints (0, ±a, ±a) and permutations, 12 points.
func genA2(w float64) []LebedevPoint {
	a := 1 / math.Sqrt2
	var out []LebedevPoint
	for _, s := range []float64{a, -a} {
		for _, t := range []float64{a, -a} {
			out = append(out,
				LebedevPoint{Vec3{0, s, t}, w},
				LebedevPoint{Vec3{s, 0, t}, w},
				LebedevPoint{Vec3{s, t, 0}, w},
			)
		}
	}
	return out
}

// Cube corners (±b, ±b, ±b), 8 points.
func genA3(w float64) []LebedevPoint {
	b := 1 / math.Sqrt(3)
	var out []LebedevPoint
	for _, x := range []float64{b, -b} {
		for _, y := range []float64{b, -b} {
			for _, z := range []float64{b, -b} {
				out = append(out, LebedevPoint{Vec3{x, y, z}, w})
			}
		}
	}
	return out
}

// (±l, ±l, ±m) and its 3 placements of m, 24 points.
func genB1(l, m, w float64) []LebedevPoint {
	var out []LebedevPoint
	for _, x := range []float64{l, -l} {
		for _, y := range []float64{l, -l} {
			for _, z := range []float64{m, -m} {
				out = append(out,
					LebedevPoint{Vec3{x, y, z}, w},
					LebedevPoint{Vec3{x, z, y}, w},
					LebedevPoint{Vec3{z, x, y}, w},
				)
			}
		}
	}
	return out
}

// (±p, ±q, 0) and its 6 permutations, 24 points.
func genC1(p, q, w float64) []LebedevPoint {
	var out []LebedevPoint
	for _, x := range []float64{p, -p} {
		for _, y := range []float64{q, -q} {
			out = append(out,
				LebedevPoint{Vec3{x, y, 0}, w},
				LebedevPoint{Vec3{y, x, 0}, w},
				LebedevPoint{Vec3{x, 0, y}, w},
				LebedevPoint{Vec3{y, 0, x}, w},
				LebedevPoint{Vec3{0, x, y}, w},
				LebedevPoint{Vec3{0, y, x}, w},
			)
		}
	}
	return out
}
