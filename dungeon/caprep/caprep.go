// Package caprep prepares the per-cell inputs the cellular-automaton stage
// consumes: a local region, an ownership mask cropped to that region, and
// the traversal connectors translated into the region's local coordinate
// space with an inward direction.
package caprep

import (
	"math"

	"github.com/voronoidungeon/dungeongen/dungeon/seedchain"
	"github.com/voronoidungeon/dungeongen/dungeon/traversal"
	"github.com/voronoidungeon/dungeongen/dungeon/voronoi"
)

// Connector is one traversal connection, translated into cell-local
// coordinates and carrying the direction a carve should travel to reach
// the cell's interior.
type Connector struct {
	OtherCell         int
	EdgeIndex         int
	WorldPoint        voronoi.Point
	LocalPoint        [2]int
	DirectionIntoCell voronoi.Point
}

// Task is the complete, immutable input to one cell's CA run. It is
// produced once and consumed by exactly one worker.
type Task struct {
	CellIndex    int
	Region       voronoi.Box
	Mask         []byte // Region.Width() * Region.Height(), row-major
	Connectors   []Connector
	CASeed       uint64
	SeedPosition voronoi.Point
}

// Build produces one Task per cell in d, padding each cell's bounding box
// by padding pixels (clamped to the canvas) and pulling in every
// traversal connection that touches the cell.
func Build(d *voronoi.Diagram, graph *traversal.Graph, baseSeed uint64, padding int) []Task {
	tasks := make([]Task, len(d.Cells))

	byCell := make(map[int][]traversal.Connection)
	if graph != nil {
		for _, c := range graph.Connections {
			byCell[c.CellA] = append(byCell[c.CellA], c)
			byCell[c.CellB] = append(byCell[c.CellB], c)
		}
	}

	for i, cell := range d.Cells {
		region := pad(cell.Bounds, padding, d.Size)
		mask := buildMask(d, i, region)
		connectors := buildConnectors(d, cell, region, byCell[i])

		tasks[i] = Task{
			CellIndex:    i,
			Region:       region,
			Mask:         mask,
			Connectors:   connectors,
			CASeed:       seedchain.Mix(seedchain.Mix(baseSeed, seedchain.SaltCA), uint64(i)),
			SeedPosition: cell.Seed,
		}
	}
	return tasks
}

func pad(b voronoi.Box, padding int, size voronoi.Size) voronoi.Box {
	padded := voronoi.Box{
		MinX: b.MinX - padding,
		MinY: b.MinY - padding,
		MaxX: b.MaxX + padding,
		MaxY: b.MaxY + padding,
	}
	if padded.MinX < 0 {
		padded.MinX = 0
	}
	if padded.MinY < 0 {
		padded.MinY = 0
	}
	if padded.MaxX > size.X {
		padded.MaxX = size.X
	}
	if padded.MaxY > size.Y {
		padded.MaxY = size.Y
	}
	if padded.MaxX <= padded.MinX {
		padded.MaxX = padded.MinX + 1
	}
	if padded.MaxY <= padded.MinY {
		padded.MaxY = padded.MinY + 1
	}
	return padded
}

func buildMask(d *voronoi.Diagram, cellIndex int, region voronoi.Box) []byte {
	w, h := region.Width(), region.Height()
	mask := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if int(d.Owner(region.MinX+x, region.MinY+y)) == cellIndex {
				mask[y*w+x] = 1
			}
		}
	}
	return mask
}

func buildConnectors(d *voronoi.Diagram, cell voronoi.Cell, region voronoi.Box, conns []traversal.Connection) []Connector {
	out := make([]Connector, 0, len(conns))
	for _, c := range conns {
		other := c.CellA
		if other == cell.SeedIndex {
			other = c.CellB
		}

		lx := clampInt(int(math.Floor(c.PointOnEdge.X()))-region.MinX, 0, region.Width()-1)
		ly := clampInt(int(math.Floor(c.PointOnEdge.Y()))-region.MinY, 0, region.Height()-1)

		dir := cell.Seed.Sub(c.PointOnEdge)
		if dir.Len() < 1e-9 {
			dir = voronoi.Point{1, 0}
		} else {
			dir = dir.Normalize()
		}

		out = append(out, Connector{
			OtherCell:         other,
			EdgeIndex:         c.EdgeIndex,
			WorldPoint:        c.PointOnEdge,
			LocalPoint:        [2]int{lx, ly},
			DirectionIntoCell: dir,
		})
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
