package caprep

import (
	"testing"

	"github.com/voronoidungeon/dungeongen/dungeon/traversal"
	"github.com/voronoidungeon/dungeongen/dungeon/voronoi"
)

func seededDiagram() *voronoi.Diagram {
	var seeds []voronoi.Point
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			seeds = append(seeds, voronoi.Point{float64(x)*16 + 8, float64(y)*16 + 8})
		}
	}
	return voronoi.Build(seeds, voronoi.Size{X: 64, Y: 64})
}

func TestBuildMaskFidelity(t *testing.T) {
	d := seededDiagram()
	g := traversal.Build(d, 11, traversal.Params{NeighborRatio: 0.5, IncludeBorderEdges: true, ConnectionDistributionScaling: 1})
	tasks := Build(d, g, 1, 2)

	owned := make([]int, len(d.Cells))
	for y := 0; y < d.Size.Y; y++ {
		for x := 0; x < d.Size.X; x++ {
			owned[d.Owner(x, y)]++
		}
	}

	for i, task := range tasks {
		sum := 0
		for _, v := range task.Mask {
			sum += int(v)
		}
		if sum < owned[i] {
			t.Fatalf("cell %d: mask covers %d pixels, fewer than the %d it owns", i, sum, owned[i])
		}
	}
}

func TestBuildConnectorLocalPointsInRegion(t *testing.T) {
	d := seededDiagram()
	g := traversal.Build(d, 11, traversal.Params{NeighborRatio: 0.5, IncludeBorderEdges: true, ConnectionDistributionScaling: 1})
	tasks := Build(d, g, 1, 2)

	for _, task := range tasks {
		for _, c := range task.Connectors {
			if c.LocalPoint[0] < 0 || c.LocalPoint[0] >= task.Region.Width() {
				t.Fatalf("cell %d connector local X out of region: %+v", task.CellIndex, c)
			}
			if c.LocalPoint[1] < 0 || c.LocalPoint[1] >= task.Region.Height() {
				t.Fatalf("cell %d connector local Y out of region: %+v", task.CellIndex, c)
			}
		}
	}
}

func TestBuildCASeedsDiffer(t *testing.T) {
	d := seededDiagram()
	tasks := Build(d, nil, 42, 2)

	seen := make(map[uint64]bool)
	for _, task := range tasks {
		if seen[task.CASeed] {
			t.Fatalf("duplicate CA seed %d for cell %d", task.CASeed, task.CellIndex)
		}
		seen[task.CASeed] = true
	}
}
