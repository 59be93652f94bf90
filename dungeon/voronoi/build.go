package voronoi

import (
	"math"

	"github.com/brentp/intintmap"
)

// farRayLength is a distance comfortably larger than any canvas diagonal,
// used to turn a border cell's circumcenter into a ray before clipping.
func farRayLength(size Size) float64 {
	return 4*(float64(size.X)+float64(size.Y)) + 10
}

// edgeAccum accumulates up to two incident triangles (and each one's
// vertex opposite the shared edge) for one unordered seed pair, mirroring
// the undirected edge map the spec describes.
type edgeAccum struct {
	seedA, seedB int
	tri          [2]int
	opp          [2]int
	count        int
}

// Build constructs the Voronoi diagram for seeds over a canvas of the
// given size. It handles the 0/1/2-seed degenerate cases directly per the
// spec; three or more seeds go through Delaunay triangulation.
func Build(seeds []Point, size Size) *Diagram {
	switch len(seeds) {
	case 0:
		grid := make([]int32, size.X*size.Y)
		for i := range grid {
			grid[i] = -1
		}
		return &Diagram{Size: size, OwnershipGrid: grid}
	case 1:
		grid, bounds := computeOwnership(seeds, size)
		return &Diagram{
			Size:          size,
			Seeds:         seeds,
			Cells:         []Cell{{SeedIndex: 0, Seed: seeds[0], Bounds: bounds[0]}},
			OwnershipGrid: grid,
		}
	case 2:
		return buildPair(seeds, size)
	default:
		return buildTriangulated(seeds, size)
	}
}

func buildPair(seeds []Point, size Size) *Diagram {
	grid, bounds := computeOwnership(seeds, size)

	mid := seeds[0].Add(seeds[1]).Mul(0.5)
	dir := seeds[1].Sub(seeds[0])
	perp := Point{-dir.Y(), dir.X()}
	if perp.Len() == 0 {
		perp = Point{1, 0}
	}
	perp = perp.Normalize()
	far := farRayLength(size)
	from, to, ok := liangBarsky(mid.Sub(perp.Mul(far)), mid.Add(perp.Mul(far)), size)

	cells := []Cell{
		{SeedIndex: 0, Seed: seeds[0], Neighbors: []int{1}, Bounds: bounds[0]},
		{SeedIndex: 1, Seed: seeds[1], Neighbors: []int{0}, Bounds: bounds[1]},
	}

	var edges []Edge
	if ok {
		cells[0].EdgeIndices = []int{0}
		cells[1].EdgeIndices = []int{0}
		edges = []Edge{{From: from, To: to, SeedA: 0, SeedB: 1, IsBorder: true}}
	}

	return &Diagram{
		Size:          size,
		Seeds:         seeds,
		Cells:         cells,
		Edges:         edges,
		OwnershipGrid: grid,
	}
}

func buildTriangulated(seeds []Point, size Size) *Diagram {
	triangles := triangulate(seeds)

	cells := make([]Cell, len(seeds))
	for i, s := range seeds {
		cells[i] = Cell{SeedIndex: i, Seed: s}
	}

	var accums []edgeAccum
	index := intintmap.New(len(triangles)*3+1, 0.75)

	encodeKey := func(a, b int) int64 {
		if a > b {
			a, b = b, a
		}
		return int64(a)<<32 | int64(b)
	}

	registerEdge := func(u, v, opposite, triIdx int) {
		k := encodeKey(u, v)
		if raw, ok := index.Get(k); ok {
			ac := &accums[int(raw)]
			if ac.count < 2 {
				ac.tri[ac.count] = triIdx
				ac.opp[ac.count] = opposite
				ac.count++
			}
			return
		}
		a, b := u, v
		if a > b {
			a, b = b, a
		}
		ac := edgeAccum{seedA: a, seedB: b}
		ac.tri[0] = triIdx
		ac.opp[0] = opposite
		ac.count = 1
		accums = append(accums, ac)
		index.Put(k, int64(len(accums)-1))

		cells[a].Neighbors = append(cells[a].Neighbors, b)
		cells[b].Neighbors = append(cells[b].Neighbors, a)
	}

	for ti, tri := range triangles {
		v := tri.Vertices
		registerEdge(v[0], v[1], v[2], ti)
		registerEdge(v[1], v[2], v[0], ti)
		registerEdge(v[2], v[0], v[1], ti)
	}

	var edges []Edge
	for _, ac := range accums {
		var from, to Point
		var ok bool
		if ac.count == 2 {
			from, to, ok = liangBarsky(triangles[ac.tri[0]].Circumcenter, triangles[ac.tri[1]].Circumcenter, size)
		} else {
			c := triangles[ac.tri[0]].Circumcenter
			edgeDir := seeds[ac.seedB].Sub(seeds[ac.seedA])
			perp := Point{-edgeDir.Y(), edgeDir.X()}
			if perp.Len() == 0 {
				perp = Point{1, 0}
			}
			perp = perp.Normalize()
			if perp.Dot(seeds[ac.opp[0]].Sub(c)) > 0 {
				perp = perp.Mul(-1)
			}
			from, to, ok = liangBarsky(c, c.Add(perp.Mul(farRayLength(size))), size)
		}
		if !ok {
			continue
		}

		isBorder := onBoundary(from, size) || onBoundary(to, size)
		edgeIdx := len(edges)
		edges = append(edges, Edge{From: from, To: to, SeedA: ac.seedA, SeedB: ac.seedB, IsBorder: isBorder})
		cells[ac.seedA].EdgeIndices = append(cells[ac.seedA].EdgeIndices, edgeIdx)
		cells[ac.seedB].EdgeIndices = append(cells[ac.seedB].EdgeIndices, edgeIdx)
	}

	grid, bounds := computeOwnership(seeds, size)
	for i := range cells {
		cells[i].Bounds = bounds[i]
	}

	return &Diagram{
		Size:          size,
		Seeds:         seeds,
		Cells:         cells,
		Edges:         edges,
		Triangles:     triangles,
		OwnershipGrid: grid,
	}
}

// computeOwnership brute-force labels every pixel centre with its nearest
// seed (ties broken by the smaller index) and, in the same pass, derives
// each cell's tight bounding box directly from the pixels it owns. This
// guarantees the bounding-box-coverage invariant by construction,
// including at canvas corners a pure edge-endpoint envelope can miss — see
// DESIGN.md for the rationale.
func computeOwnership(seeds []Point, size Size) ([]int32, []Box) {
	n := len(seeds)
	grid := make([]int32, size.X*size.Y)

	minX := make([]int, n)
	minY := make([]int, n)
	maxX := make([]int, n)
	maxY := make([]int, n)
	has := make([]bool, n)
	for i := 0; i < n; i++ {
		minX[i], minY[i] = size.X, size.Y
		maxX[i], maxY[i] = -1, -1
	}

	for y := 0; y < size.Y; y++ {
		cy := float64(y) + 0.5
		for x := 0; x < size.X; x++ {
			cx := float64(x) + 0.5
			best := 0
			bestDist := math.Inf(1)
			for i, s := range seeds {
				dx, dy := cx-s.X(), cy-s.Y()
				d := dx*dx + dy*dy
				if d < bestDist {
					bestDist, best = d, i
				}
			}
			grid[y*size.X+x] = int32(best)

			has[best] = true
			if x < minX[best] {
				minX[best] = x
			}
			if x+1 > maxX[best] {
				maxX[best] = x + 1
			}
			if y < minY[best] {
				minY[best] = y
			}
			if y+1 > maxY[best] {
				maxY[best] = y + 1
			}
		}
	}

	bounds := make([]Box, n)
	for i := 0; i < n; i++ {
		var b Box
		if has[i] {
			b = Box{minX[i], minY[i], maxX[i], maxY[i]}
		} else {
			sx, sy := int(math.Floor(seeds[i].X())), int(math.Floor(seeds[i].Y()))
			b = Box{sx, sy, sx + 1, sy + 1}
		}
		sx, sy := int(math.Floor(seeds[i].X())), int(math.Floor(seeds[i].Y()))
		if sx < b.MinX {
			b.MinX = sx
		}
		if sy < b.MinY {
			b.MinY = sy
		}
		if sx+1 > b.MaxX {
			b.MaxX = sx + 1
		}
		if sy+1 > b.MaxY {
			b.MaxY = sy + 1
		}
		bounds[i] = clampBox(b, size)
	}
	return grid, bounds
}

func clampBox(b Box, size Size) Box {
	if b.MinX < 0 {
		b.MinX = 0
	}
	if b.MinY < 0 {
		b.MinY = 0
	}
	if b.MaxX > size.X {
		b.MaxX = size.X
	}
	if b.MaxY > size.Y {
		b.MaxY = size.Y
	}
	if b.MaxX <= b.MinX {
		b.MaxX = b.MinX + 1
	}
	if b.MaxY <= b.MinY {
		b.MaxY = b.MinY + 1
	}
	return b
}
