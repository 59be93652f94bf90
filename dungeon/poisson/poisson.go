// Package poisson generates blue-noise point sets via Bridson's Poisson-disk
// algorithm: samples spread roughly radius apart, with no two closer than
// radius, and no visible grid artefacts the way plain jittered sampling
// produces.
package poisson

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/voronoidungeon/dungeongen/dungeon/seedchain"
)

// Params configures one sampling run.
type Params struct {
	// Region is the size of the rectangle samples are drawn within, before
	// Padding is applied.
	Region mgl64.Vec2
	// Radius is the minimum separation between any two accepted samples.
	// Radius <= 0 is invalid.
	Radius float64
	// Attempts is the number of annulus candidates drawn per active sample
	// before it is retired. Zero selects the default of 30.
	Attempts int
	// Padding offsets every accepted sample away from the region's origin,
	// keeping seeds clear of the canvas border.
	Padding mgl64.Vec2
}

const defaultAttempts = 30

// InvalidRadiusError is returned by Sample when Radius <= 0.
type InvalidRadiusError struct {
	Radius float64
}

func (e *InvalidRadiusError) Error() string {
	return fmt.Sprintf("poisson: radius must be > 0, got %v", e.Radius)
}

// Result is the outcome of one SampleStats call: the accepted points plus
// the number of candidates the algorithm drew and discarded along the
// way, for callers that want to log how hard the sampler had to work to
// fill the region at the given radius.
type Result struct {
	Points     []mgl64.Vec2
	Rejections int
}

// Sample draws a blue-noise point set from rng, deterministic for a given
// rng state and Params. It is a thin wrapper around SampleStats for
// callers that don't need the rejection count.
func Sample(rng *seedchain.RNG, p Params) ([]mgl64.Vec2, error) {
	result, err := SampleStats(rng, p)
	if err != nil {
		return nil, err
	}
	return result.Points, nil
}

// SampleStats draws a blue-noise point set from rng exactly as Sample
// does, additionally reporting how many annulus candidates were drawn
// and rejected (either out of region or too close to an existing point).
func SampleStats(rng *seedchain.RNG, p Params) (Result, error) {
	if p.Radius <= 0 {
		return Result{}, &InvalidRadiusError{Radius: p.Radius}
	}
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	cellSide := p.Radius / math.Sqrt2
	grid := newSpatialGrid(cellSide)

	first := mgl64.Vec2{
		rng.NextFloat64() * p.Region.X(),
		rng.NextFloat64() * p.Region.Y(),
	}
	grid.insert(first)
	active := []int{0}

	rejections := 0
	for len(active) > 0 {
		pick := rng.NextIntn(0, len(active)-1)
		sampleIdx := active[pick]
		base := grid.points[sampleIdx]

		found := false
		for attempt := 0; attempt < attempts; attempt++ {
			u := rng.NextFloat64()
			v := rng.NextFloat64()
			dist := p.Radius * (1 + math.Sqrt(u))
			angle := 2 * math.Pi * v

			candidate := mgl64.Vec2{
				base.X() + dist*math.Cos(angle),
				base.Y() + dist*math.Sin(angle),
			}

			if !inRegion(candidate, p.Region) {
				rejections++
				continue
			}
			if grid.tooClose(candidate, p.Radius) {
				rejections++
				continue
			}

			idx := len(grid.points)
			grid.insert(candidate)
			active = append(active, idx)
			found = true
			break
		}

		if !found {
			active[pick] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	out := make([]mgl64.Vec2, len(grid.points))
	for i, pt := range grid.points {
		out[i] = pt.Add(p.Padding)
	}
	return Result{Points: out, Rejections: rejections}, nil
}

func inRegion(p, region mgl64.Vec2) bool {
	return p.X() >= 0 && p.X() < region.X() && p.Y() >= 0 && p.Y() < region.Y()
}
