package traversal

import (
	"math"
	"testing"

	"github.com/voronoidungeon/dungeongen/dungeon/voronoi"
)

func grid(n int, cell float64) []voronoi.Point {
	pts := make([]voronoi.Point, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			pts = append(pts, voronoi.Point{float64(x)*cell + cell/2, float64(y)*cell + cell/2})
		}
	}
	return pts
}

func TestBuildConnectsAllCells(t *testing.T) {
	seeds := grid(4, 16)
	d := voronoi.Build(seeds, voronoi.Size{X: 64, Y: 64})
	g := Build(d, 1, Params{NeighborRatio: 0.3, IncludeBorderEdges: true, ConnectionDistributionScaling: 1})

	uf := newUnionFind(len(d.Cells))
	for _, c := range g.Connections {
		uf.union(c.CellA, c.CellB)
	}
	if uf.components() != 1 {
		t.Fatalf("traversal graph is not connected: %d components", uf.components())
	}
	if len(g.Connections) < len(d.Cells)-1 {
		t.Fatalf("fewer connections (%d) than a spanning tree requires (%d)", len(g.Connections), len(d.Cells)-1)
	}
}

func TestBuildFullCoverage(t *testing.T) {
	seeds := grid(4, 16)
	d := voronoi.Build(seeds, voronoi.Size{X: 64, Y: 64})
	g := Build(d, 1, Params{NeighborRatio: 1.0, IncludeBorderEdges: true, ConnectionDistributionScaling: 1})

	if len(g.Connections) != g.TotalNeighborPairs {
		t.Fatalf("neighbor_coverage=1.0 expected %d connections, got %d", g.TotalNeighborPairs, len(g.Connections))
	}
}

func TestBuildDeterministic(t *testing.T) {
	seeds := grid(5, 12)
	d := voronoi.Build(seeds, voronoi.Size{X: 60, Y: 60})

	a := Build(d, 99, Params{NeighborRatio: 0.5, ConnectionDistributionScaling: 0.7})
	b := Build(d, 99, Params{NeighborRatio: 0.5, ConnectionDistributionScaling: 0.7})

	if len(a.Connections) != len(b.Connections) {
		t.Fatalf("connection count diverged: %d vs %d", len(a.Connections), len(b.Connections))
	}
	for i := range a.Connections {
		if a.Connections[i] != b.Connections[i] {
			t.Fatalf("connection %d diverged: %+v vs %+v", i, a.Connections[i], b.Connections[i])
		}
	}
}

func TestBuildPointsLieOnConnectionEdges(t *testing.T) {
	seeds := grid(4, 16)
	d := voronoi.Build(seeds, voronoi.Size{X: 64, Y: 64})
	g := Build(d, 3, Params{NeighborRatio: 0.6, IncludeBorderEdges: true, ConnectionDistributionScaling: 1})

	for _, c := range g.Connections {
		e := d.Edges[c.EdgeIndex]
		if (e.SeedA != c.CellA || e.SeedB != c.CellB) && (e.SeedA != c.CellB || e.SeedB != c.CellA) {
			t.Fatalf("connection %+v does not reference its own edge's cells", c)
		}
		along := c.PointOnEdge.Sub(e.From)
		dir := e.To.Sub(e.From)
		cross := along.X()*dir.Y() - along.Y()*dir.X()
		tParam := along.Dot(dir) / dir.Dot(dir)
		if math.Abs(cross) > 1e-6*dir.Len() || tParam < -1e-9 || tParam > 1+1e-9 {
			t.Fatalf("connection %+v point does not lie on edge %+v", c, e)
		}
	}
}
