package poisson

import (
	"encoding/binary"

	"github.com/segmentio/fasthash/fnv1a"
	"github.com/go-gl/mathgl/mgl64"
)

// spatialGrid buckets accepted samples by cell so the 5x5-neighbourhood
// rejection test never has to scan the whole sample set. Cell side is
// radius/sqrt(2), guaranteeing at most one accepted sample per cell.
type spatialGrid struct {
	cellSide float64
	buckets  map[uint64][]int
	points   []mgl64.Vec2
}

func newSpatialGrid(cellSide float64) *spatialGrid {
	return &spatialGrid{
		cellSide: cellSide,
		buckets:  make(map[uint64][]int),
	}
}

func (g *spatialGrid) cellOf(p mgl64.Vec2) (int32, int32) {
	return int32(p.X() / g.cellSide), int32(p.Y() / g.cellSide)
}

// key folds a cell coordinate pair into a single map key via FNV-1a over
// the coordinates' raw bytes. The hash is purely a bucketing aid: it is a
// pure function of (cx, cy), so it never affects which points are
// accepted, only how fast the lookup is.
func key(cx, cy int32) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(cx))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(cy))
	return fnv1a.HashBytes64(buf[:])
}

func (g *spatialGrid) insert(p mgl64.Vec2) {
	idx := len(g.points)
	g.points = append(g.points, p)
	cx, cy := g.cellOf(p)
	k := key(cx, cy)
	g.buckets[k] = append(g.buckets[k], idx)
}

// tooClose reports whether any inserted point lies within radius of p,
// scanning only the 5x5 block of cells centred on p's cell.
func (g *spatialGrid) tooClose(p mgl64.Vec2, radius float64) bool {
	cx, cy := g.cellOf(p)
	r2 := radius * radius
	for dy := int32(-2); dy <= 2; dy++ {
		for dx := int32(-2); dx <= 2; dx++ {
			k := key(cx+dx, cy+dy)
			for _, idx := range g.buckets[k] {
				d := p.Sub(g.points[idx])
				if d.Dot(d) < r2 {
					return true
				}
			}
		}
	}
	return false
}
