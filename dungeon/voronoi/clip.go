package voronoi

import "math"

// clipEpsilon is the minimum surviving clipped-segment length; anything
// shorter is discarded as numerically insignificant per the spec's edge
// construction rule.
const clipEpsilon = 0.5

// liangBarsky clips the segment from `from` to `to` against the canvas
// rectangle [0, size.X] x [0, size.Y]. It reports ok=false if no part of
// the segment survives.
func liangBarsky(from, to Point, size Size) (Point, Point, bool) {
	dx := to.X() - from.X()
	dy := to.Y() - from.Y()

	t0, t1 := 0.0, 1.0
	maxX, maxY := float64(size.X), float64(size.Y)

	clip := func(p, q float64) bool {
		if p == 0 {
			if q < 0 {
				return false
			}
			return true
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}

	if !clip(-dx, from.X()) {
		return Point{}, Point{}, false
	}
	if !clip(dx, maxX-from.X()) {
		return Point{}, Point{}, false
	}
	if !clip(-dy, from.Y()) {
		return Point{}, Point{}, false
	}
	if !clip(dy, maxY-from.Y()) {
		return Point{}, Point{}, false
	}
	if t0 > t1 {
		return Point{}, Point{}, false
	}

	clippedFrom := Point{from.X() + t0*dx, from.Y() + t0*dy}
	clippedTo := Point{from.X() + t1*dx, from.Y() + t1*dy}
	if clippedFrom.Sub(clippedTo).Len() < clipEpsilon {
		return Point{}, Point{}, false
	}
	return clippedFrom, clippedTo, true
}

// onBoundary reports whether p lies on the edge of the canvas rectangle,
// within a small numeric tolerance.
func onBoundary(p Point, size Size) bool {
	const eps = 1e-6
	return math.Abs(p.X()) < eps || math.Abs(p.X()-float64(size.X)) < eps ||
		math.Abs(p.Y()) < eps || math.Abs(p.Y()-float64(size.Y)) < eps
}

// circumcenter returns the circumcenter of the triangle (a, b, c). If the
// triangle is numerically degenerate (near-zero determinant), it falls
// back to the triangle's centroid, per the spec's stated fallback.
func circumcenter(a, b, c Point) Point {
	ax, ay := a.X(), a.Y()
	bx, by := b.X(), b.Y()
	cx, cy := c.X(), c.Y()

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < 1e-9 {
		return Point{(ax + bx + cx) / 3, (ay + by + cy) / 3}
	}

	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy

	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	return Point{ux, uy}
}
