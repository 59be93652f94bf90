package dungeon

import (
	"time"

	"github.com/google/uuid"

	"github.com/voronoidungeon/dungeongen/dungeon/seedchain"
)

// StageDurations breaks down Generate's wall-clock time by stage, for
// callers that want to know where time went without instrumenting their
// own call site.
type StageDurations struct {
	Poisson   time.Duration
	Voronoi   time.Duration
	Traversal time.Duration
	CAPrep    time.Duration
	CA        time.Duration
	Total     time.Duration
}

// GenerationReport carries log-correlation and summary metadata about one
// Generate call. Nothing in it feeds back into the generated geometry:
// two calls with identical parameters produce byte-identical MergedResult
// values but distinct GenerationReport.RunID and StageDurations values.
type GenerationReport struct {
	// RunID correlates this call's log lines across a log stream. It is
	// freshly generated every call and never derived from SeedChain.
	RunID uuid.UUID
	// Fingerprint is a short, stable hash of SeedChain and CanvasSize,
	// useful for matching otherwise-identical runs across log streams
	// without printing every parameter.
	Fingerprint uint64

	SeedChain seedchain.Chain

	Durations StageDurations

	CellCount               int
	TotalNeighborPairs      int
	ConnectionCount         int
	PhaseBAttemptsExhausted bool

	// PoissonRejections is how many annulus candidates the Poisson
	// sampler drew and discarded (out of region, or too close to an
	// existing sample) while filling the canvas.
	PoissonRejections int
	// CoverageRatio is ConnectionCount / TotalNeighborPairs actually
	// achieved, as opposed to the Traversal.NeighborCoverage target — the
	// two can differ when Phase B runs out of candidates, or hits its
	// attempt bound (see PhaseBAttemptsExhausted), before reaching the
	// target.
	CoverageRatio float64
	// WorkerCount is the number of concurrent CA workers actually used,
	// after resolving a <= 0 Parallelism to runtime.GOMAXPROCS(0).
	WorkerCount int
}
