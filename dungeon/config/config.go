// Package config holds the typed parameter surface for one generation
// run: defaults, validation, and (purely as a convenience for tools and
// test fixtures, never touched by the generation pipeline itself) TOML
// loading of named presets.
package config

import "fmt"

// InvalidParameterError is returned synchronously when a parameter fails
// validation; generation is abandoned before any stage runs.
type InvalidParameterError struct {
	Parameter string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("dungeongen: invalid parameter %q: %s", e.Parameter, e.Reason)
}

// CanvasSize is the output extent in pixels.
type CanvasSize struct {
	X, Y int
}

// PoissonParams configures blue-noise seed sampling.
type PoissonParams struct {
	// Radius is the minimum separation between seeds. Must be > 0.
	Radius float64
	// Attempts is the rejection-sample count per active point. Zero
	// selects the sampler's own default (30).
	Attempts int
	// Padding keeps seeds clear of the canvas border by this many
	// pixels.
	Padding float64
}

// TraversalParams configures the spanning-tree-plus-coverage graph.
type TraversalParams struct {
	// NeighborCoverage is the target ratio, in [0,1], of neighbour pairs
	// connected after Phase B.
	NeighborCoverage float64
	// ConnectionDistributionScaling biases edge-point sampling: 0 pins
	// every connector to its edge's midpoint, 1 allows the full
	// smoothstep spread.
	ConnectionDistributionScaling float64
	// IncludeBorderEdges allows canvas-border edges to host connections.
	IncludeBorderEdges bool
}

// CAParams configures the per-cell cave cellular automaton.
type CAParams struct {
	KernelSize             int
	BirthLimit             int
	SurvivalLimit          int
	Iterations             int
	InitialWallProbability float64
	ConnectorDepth         int
}

// Params is the complete, typed parameter block for one Generate call.
type Params struct {
	BaseSeed uint64
	// PoissonSeedOverride and TraversalSeedOverride pin a derived seed
	// verbatim when non-zero, bypassing seedchain's default mixing.
	PoissonSeedOverride   uint64
	TraversalSeedOverride uint64

	Canvas    CanvasSize
	Poisson   PoissonParams
	Traversal TraversalParams

	// CellPadding is the extra border, in pixels, added around each
	// cell's CA region.
	CellPadding int
	CA          CAParams

	// Parallelism caps concurrent CA workers. <= 0 selects
	// runtime.GOMAXPROCS(0).
	Parallelism int
}

// Default returns a Params with the reference defaults for canvas at the
// given base seed: poisson_attempts=30, neighbor_coverage=0.3,
// connection_distribution_scaling=0.6, a 5x5 CA kernel with birth=5,
// survival=4, four iterations, and a two-pixel cell padding.
func Default(baseSeed uint64, canvas CanvasSize) Params {
	return Params{
		BaseSeed: baseSeed,
		Canvas:   canvas,
		Poisson: PoissonParams{
			Radius:   16,
			Attempts: 30,
			Padding:  8,
		},
		Traversal: TraversalParams{
			NeighborCoverage:              0.3,
			ConnectionDistributionScaling: 0.6,
			IncludeBorderEdges:            false,
		},
		CellPadding: 2,
		CA: CAParams{
			KernelSize:             5,
			BirthLimit:             5,
			SurvivalLimit:          4,
			Iterations:             4,
			InitialWallProbability: 0.45,
			ConnectorDepth:         3,
		},
	}
}

// Validate reports the first invalid-parameter condition found, per the
// error kinds this library reports synchronously. A nil result means
// generation may proceed.
func (p Params) Validate() error {
	if p.Canvas.X <= 0 || p.Canvas.Y <= 0 {
		return &InvalidParameterError{Parameter: "canvas_size", Reason: "both components must be > 0"}
	}
	if p.Poisson.Radius <= 0 {
		return &InvalidParameterError{Parameter: "poisson_radius", Reason: "must be > 0"}
	}
	if p.Traversal.NeighborCoverage < 0 || p.Traversal.NeighborCoverage > 1 {
		return &InvalidParameterError{Parameter: "neighbor_coverage", Reason: "must be in [0,1]"}
	}
	if p.Traversal.ConnectionDistributionScaling < 0 || p.Traversal.ConnectionDistributionScaling > 1 {
		return &InvalidParameterError{Parameter: "connection_distribution_scaling", Reason: "must be in [0,1]"}
	}
	if p.CA.KernelSize < 3 {
		return &InvalidParameterError{Parameter: "ca_kernel_size", Reason: "must be >= 3"}
	}
	return nil
}
