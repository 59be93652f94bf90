// Package ca runs a masked cellular automaton over one Voronoi cell's
// local region, producing a wall/floor tile grid that respects the cell's
// ownership mask and forcibly carves floor along every traversal
// connector that touches the cell.
package ca

import (
	"math"

	"github.com/voronoidungeon/dungeongen/dungeon/caprep"
	"github.com/voronoidungeon/dungeongen/dungeon/seedchain"
	"github.com/voronoidungeon/dungeongen/dungeon/voronoi"
)

// Tile values. Floor is the value carving forces; Wall is everything the
// rule leaves alone.
const (
	Floor byte = 0
	Wall  byte = 1
)

// Config is the cave CA's rule set.
type Config struct {
	// KernelSize is the side of the square neighbourhood window,
	// excluding the centre cell. Must be odd and >= 3; even values are
	// rounded up to the next odd number.
	KernelSize int
	// BirthLimit is the neighbour-wall count at or above which a floor
	// cell becomes wall.
	BirthLimit int
	// SurvivalLimit is the neighbour-wall count at or above which a wall
	// cell stays wall.
	SurvivalLimit int
	// Iterations is how many CA steps run after the initial fill.
	Iterations int
	// InitialWallProbability is the chance, in [0,1], that an
	// undetermined cell starts as wall.
	InitialWallProbability float64
	// ConnectorDepth is how many pixels each connector's carve line
	// extends into the cell.
	ConnectorDepth int
}

func (c Config) normalized() Config {
	if c.KernelSize < 3 {
		c.KernelSize = 3
	}
	if c.KernelSize%2 == 0 {
		c.KernelSize++
	}
	maxNeighbors := c.KernelSize*c.KernelSize - 1
	c.BirthLimit = clampInt(c.BirthLimit, 0, maxNeighbors)
	c.SurvivalLimit = clampInt(c.SurvivalLimit, 0, maxNeighbors)
	if c.Iterations < 0 {
		c.Iterations = 0
	}
	if c.InitialWallProbability < 0 {
		c.InitialWallProbability = 0
	} else if c.InitialWallProbability > 1 {
		c.InitialWallProbability = 1
	}
	if c.ConnectorDepth < 0 {
		c.ConnectorDepth = 0
	}
	return c
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

// Result is one cell's finished CA output.
type Result struct {
	CellIndex  int
	Region     voronoi.Box
	Tiles      []byte // Region.Width() * Region.Height(), row-major
	Connectors []caprep.Connector
}

// Run executes the CA for one cell task. It is safe to call concurrently
// for distinct tasks — each call only reads task and only allocates its
// own buffers.
func Run(task caprep.Task, cfg Config) Result {
	cfg = cfg.normalized()
	w, h := task.Region.Width(), task.Region.Height()

	carve := buildCarveMask(task, cfg, w, h)

	rng := seedchain.NewRNG(task.CASeed)
	tiles := make([]byte, w*h)
	for i := range tiles {
		switch {
		case carve[i] == 1:
			tiles[i] = Floor
		case task.Mask[i] == 0:
			tiles[i] = Wall
		case rng.NextFloat64() < cfg.InitialWallProbability:
			tiles[i] = Wall
		default:
			tiles[i] = Floor
		}
	}

	half := cfg.KernelSize / 2
	next := make([]byte, w*h)
	for iter := 0; iter < cfg.Iterations; iter++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := y*w + x
				switch {
				case carve[idx] == 1:
					next[idx] = Floor
				case task.Mask[idx] == 0:
					next[idx] = Wall
				default:
					n := wallNeighbors(tiles, carve, task.Mask, w, h, x, y, half)
					if tiles[idx] == Wall {
						next[idx] = boolTile(n >= cfg.SurvivalLimit)
					} else {
						next[idx] = boolTile(n >= cfg.BirthLimit)
					}
				}
			}
		}
		tiles, next = next, tiles
	}

	return Result{CellIndex: task.CellIndex, Region: task.Region, Tiles: tiles, Connectors: task.Connectors}
}

func boolTile(wall bool) byte {
	if wall {
		return Wall
	}
	return Floor
}

// wallNeighbors counts wall-contributing cells in the kernel window
// centred on (x, y), row-major over dy then dx so the count is identical
// across platforms and thread counts.
func wallNeighbors(tiles, carve, mask []byte, w, h, x, y, half int) int {
	count := 0
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				count++
				continue
			}
			nidx := ny*w + nx
			switch {
			case carve[nidx] == 1:
				// Carved neighbours never contribute.
			case mask[nidx] == 0:
				count++
			case tiles[nidx] == Wall:
				count++
			}
		}
	}
	return count
}

// buildCarveMask rasterizes, for every connector, a line of cfg.ConnectorDepth
// pixels starting at its local point and stepping by its inward direction.
// Steps outside the region or outside the cell's mask are skipped; every
// other stepped pixel is forced to floor for the lifetime of the CA run.
func buildCarveMask(task caprep.Task, cfg Config, w, h int) []byte {
	carve := make([]byte, w*h)
	for _, c := range task.Connectors {
		x := float64(c.LocalPoint[0])
		y := float64(c.LocalPoint[1])
		dx, dy := c.DirectionIntoCell.X(), c.DirectionIntoCell.Y()

		for step := 0; step < cfg.ConnectorDepth; step++ {
			ix, iy := int(math.Round(x)), int(math.Round(y))
			if ix >= 0 && iy >= 0 && ix < w && iy < h {
				idx := iy*w + ix
				if task.Mask[idx] == 1 {
					carve[idx] = 1
				}
			}
			x += dx
			y += dy
		}
	}
	return carve
}
