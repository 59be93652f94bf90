// Package voronoi builds a Voronoi diagram over a seed point set via
// Delaunay triangulation, clips its edges to a canvas rectangle, and
// rasterizes a per-pixel ownership grid by brute-force nearest-seed
// labelling.
//
// The diagram is immutable once Build returns. All cross-references
// between cells, edges and triangles are plain integer indices into the
// Diagram's slices, never pointers — this is what lets the same Diagram
// be shared read-only across every cellular-automaton worker goroutine
// without synchronisation.
package voronoi

import "github.com/go-gl/mathgl/mgl64"

// Point is a 2D coordinate in canvas space: x increases right, y increases
// down. Integer pixel (i, j) has centre (i+0.5, j+0.5).
type Point = mgl64.Vec2

// Size is a canvas extent in integer pixels.
type Size struct {
	X, Y int
}

// Box is an axis-aligned integer bounding box, inclusive of Min and
// exclusive of Max (i.e. Width = Max.X - Min.X).
type Box struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the box's extent along X. Always >= 1 for any Box
// produced by this package.
func (b Box) Width() int { return b.MaxX - b.MinX }

// Height returns the box's extent along Y. Always >= 1 for any Box
// produced by this package.
func (b Box) Height() int { return b.MaxY - b.MinY }

// Edge is an undirected Voronoi edge in canvas space, clipped to the
// canvas rectangle. SeedA and SeedB are the indices of the two cells the
// edge separates; IsBorder is true when at least one endpoint lies on the
// canvas boundary (or when there are exactly two seeds, in which case the
// single bisector edge is always a border edge).
type Edge struct {
	From, To     Point
	SeedA, SeedB int
	IsBorder     bool
}

// Length returns the Euclidean length of the edge.
func (e Edge) Length() float64 {
	d := e.To.Sub(e.From)
	return d.Len()
}

// Triangle is a Delaunay triangle referencing three seed indices, plus its
// precomputed circumcenter.
type Triangle struct {
	Vertices    [3]int
	Circumcenter Point
}

// Cell is one Voronoi region: the set of pixels closer to Seed than to any
// other seed.
type Cell struct {
	SeedIndex   int
	Seed        Point
	Neighbors   []int
	EdgeIndices []int
	Bounds      Box
}

// Diagram is the immutable result of Build.
type Diagram struct {
	Size          Size
	Seeds         []Point
	Cells         []Cell
	Edges         []Edge
	Triangles     []Triangle
	OwnershipGrid []int32 // row-major, Size.X*Size.Y entries
}

// Owner returns the cell index owning pixel (x, y), or -1 if out of
// bounds.
func (d *Diagram) Owner(x, y int) int32 {
	if x < 0 || y < 0 || x >= d.Size.X || y >= d.Size.Y {
		return -1
	}
	return d.OwnershipGrid[y*d.Size.X+x]
}
