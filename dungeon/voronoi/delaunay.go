package voronoi

import "math"

// rawTriangle references points by index into the working point list,
// which is seeds followed by three synthetic super-triangle vertices.
type rawTriangle struct {
	a, b, c int
}

func (t rawTriangle) indices() [3]int { return [3]int{t.a, t.b, t.c} }

func (t rawTriangle) hasVertex(i int) bool {
	return t.a == i || t.b == i || t.c == i
}

type rawEdge struct{ u, v int }

func (e rawEdge) normalized() rawEdge {
	if e.u > e.v {
		return rawEdge{e.v, e.u}
	}
	return e
}

// triangulate runs Bowyer-Watson Delaunay triangulation over seeds, using
// seeds' slice order as the fixed, deterministic point-insertion order.
// The returned triangles reference only real seed indices (0..len(seeds)-1);
// the synthetic super-triangle used to bootstrap the algorithm never leaks
// into the result.
func triangulate(seeds []Point) []Triangle {
	n := len(seeds)
	pts := make([]Point, n, n+3)
	copy(pts, seeds)

	minX, minY := seeds[0].X(), seeds[0].Y()
	maxX, maxY := minX, minY
	for _, s := range seeds {
		minX = math.Min(minX, s.X())
		minY = math.Min(minY, s.Y())
		maxX = math.Max(maxX, s.X())
		maxY = math.Max(maxY, s.Y())
	}
	dx, dy := maxX-minX, maxY-minY
	span := math.Max(dx, dy)
	if span < 1 {
		span = 1
	}
	mid := Point{(minX + maxX) / 2, (minY + maxY) / 2}

	// A triangle comfortably larger than the bounding box of all seeds,
	// guaranteed to contain every seed's circumcircle during insertion.
	superA := len(pts)
	pts = append(pts, Point{mid.X() - 20*span, mid.Y() - 10*span})
	superB := len(pts)
	pts = append(pts, Point{mid.X() + 20*span, mid.Y() - 10*span})
	superC := len(pts)
	pts = append(pts, Point{mid.X(), mid.Y() + 20*span})

	triangles := []rawTriangle{{superA, superB, superC}}

	for i := 0; i < n; i++ {
		p := pts[i]

		var bad []int
		for ti, tri := range triangles {
			if inCircumcircle(p, pts[tri.a], pts[tri.b], pts[tri.c]) {
				bad = append(bad, ti)
			}
		}

		edgeCount := make(map[rawEdge]int)
		edgeOrder := make([]rawEdge, 0)
		addEdge := func(u, v int) {
			e := rawEdge{u, v}.normalized()
			if _, seen := edgeCount[e]; !seen {
				edgeOrder = append(edgeOrder, e)
			}
			edgeCount[e]++
		}
		for _, bi := range bad {
			tri := triangles[bi]
			addEdge(tri.a, tri.b)
			addEdge(tri.b, tri.c)
			addEdge(tri.c, tri.a)
		}

		kept := triangles[:0:0]
		badSet := make(map[int]bool, len(bad))
		for _, bi := range bad {
			badSet[bi] = true
		}
		for ti, tri := range triangles {
			if !badSet[ti] {
				kept = append(kept, tri)
			}
		}
		triangles = kept

		for _, e := range edgeOrder {
			if edgeCount[e] == 1 {
				triangles = append(triangles, rawTriangle{e.u, e.v, i})
			}
		}
	}

	out := make([]Triangle, 0, len(triangles))
	for _, tri := range triangles {
		if tri.hasVertex(superA) || tri.hasVertex(superB) || tri.hasVertex(superC) {
			continue
		}
		out = append(out, Triangle{
			Vertices:     tri.indices(),
			Circumcenter: circumcenter(pts[tri.a], pts[tri.b], pts[tri.c]),
		})
	}
	return out
}

// inCircumcircle reports whether p lies strictly inside the circumcircle
// of triangle (a, b, c).
func inCircumcircle(p, a, b, c Point) bool {
	center := circumcenter(a, b, c)
	r2 := center.Sub(a).Dot(center.Sub(a))
	d2 := center.Sub(p).Dot(center.Sub(p))
	return d2 < r2-1e-9
}
