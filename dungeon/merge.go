package dungeon

import (
	"github.com/voronoidungeon/dungeongen/dungeon/ca"
	"github.com/voronoidungeon/dungeongen/dungeon/voronoi"
)

// MergedResult is the final output of one Generate call: a canvas-sized
// tile grid assembled from every cell's independently computed CA result,
// plus the diagram data a caller needs to interpret it.
type MergedResult struct {
	CanvasSize voronoi.Size
	// OwnershipGrid is the Voronoi diagram's per-pixel cell ownership,
	// row-major, CanvasSize.X*CanvasSize.Y entries. Shared verbatim from
	// the Diagram built internally.
	OwnershipGrid []int32
	// PerCellResults holds each cell's CA output, indexed by cell index.
	PerCellResults []ca.Result
	// Merged is the canvas-sized tile grid, row-major, with every pixel
	// taken from its owning cell's Result.Tiles. Pixels a cell's padded
	// Region did not cover are left as ca.Wall.
	Merged []byte
}

// mergeResults assembles results (already indexed by cell index; see
// runCAStage) into one canvas-sized tile grid. Merge order never depends
// on the order CA workers finished in: every source pixel is addressed by
// its owning cell index and its offset within that cell's Region, both of
// which are fixed by the Diagram and are independent of goroutine
// scheduling.
func mergeResults(size voronoi.Size, ownership []int32, results []ca.Result) []byte {
	merged := make([]byte, size.X*size.Y)
	for i := range merged {
		merged[i] = ca.Wall
	}

	for _, r := range results {
		w := r.Region.Width()
		for y := 0; y < r.Region.Height(); y++ {
			canvasY := r.Region.MinY + y
			if canvasY < 0 || canvasY >= size.Y {
				continue
			}
			for x := 0; x < w; x++ {
				canvasX := r.Region.MinX + x
				if canvasX < 0 || canvasX >= size.X {
					continue
				}
				if int(ownership[canvasY*size.X+canvasX]) != r.CellIndex {
					continue
				}
				merged[canvasY*size.X+canvasX] = r.Tiles[y*w+x]
			}
		}
	}
	return merged
}
