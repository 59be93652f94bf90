package dungeon

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/voronoidungeon/dungeongen/dungeon/ca"
	"github.com/voronoidungeon/dungeongen/dungeon/caprep"
	"github.com/voronoidungeon/dungeongen/dungeon/config"
	"github.com/voronoidungeon/dungeongen/dungeon/poisson"
	"github.com/voronoidungeon/dungeongen/dungeon/seedchain"
	"github.com/voronoidungeon/dungeongen/dungeon/telemetry"
	"github.com/voronoidungeon/dungeongen/dungeon/traversal"
	"github.com/voronoidungeon/dungeongen/dungeon/voronoi"
)

// Generate runs the full pipeline for params and returns the assembled
// tile grid alongside a report for logging and diagnostics. log may be
// nil, in which case slog.Default() is used.
//
// The two sequential stages (Poisson sampling, Voronoi/traversal
// construction) run on the calling goroutine; the cellular-automaton
// stage fans out across a pool of at most params.Parallelism workers (or
// runtime.GOMAXPROCS(0) workers if Parallelism <= 0).
//
// A cancelled ctx aborts outstanding CA work and returns ctx.Err(); a
// panic inside any CA worker is fatal to the call and is surfaced as an
// error rather than recovered and logged, since a partially computed
// MergedResult cannot be trusted to be deterministic.
func Generate(ctx context.Context, params config.Params, log *slog.Logger) (*MergedResult, *GenerationReport, error) {
	log = telemetry.Logger(log)
	total := startTimer()

	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	chain := seedchain.New(params.BaseSeed).WithOverrides(params.PoissonSeedOverride, params.TraversalSeedOverride)
	runID := telemetry.RunID()
	fingerprint := telemetry.Fingerprint(chain.BaseSeed, chain.PoissonSeed, chain.TraversalSeed, params.Canvas.X, params.Canvas.Y)
	fields := telemetry.StageFields(runID, fingerprint)

	log.Info("generation starting", append(fields, "canvas_x", params.Canvas.X, "canvas_y", params.Canvas.Y)...)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	poissonTimer := startTimer()
	poissonResult, err := runPoissonStage(chain, params)
	poissonDuration := poissonTimer()
	if err != nil {
		log.Error("poisson sampling failed", append(fields, "error", err.Error())...)
		return nil, nil, err
	}
	log.Info("poisson sampling complete", append(fields,
		"seed_count", len(poissonResult.Points),
		"rejections", poissonResult.Rejections)...)

	voronoiTimer := startTimer()
	diagram := voronoi.Build(poissonResult.Points, voronoi.Size{X: params.Canvas.X, Y: params.Canvas.Y})
	voronoiDuration := voronoiTimer()
	log.Info("voronoi diagram built", append(fields, "cell_count", len(diagram.Cells), "edge_count", len(diagram.Edges))...)

	traversalTimer := startTimer()
	graph := traversal.Build(diagram, chain.TraversalSeed, traversal.Params{
		NeighborRatio:                 params.Traversal.NeighborCoverage,
		IncludeBorderEdges:            params.Traversal.IncludeBorderEdges,
		ConnectionDistributionScaling: params.Traversal.ConnectionDistributionScaling,
	})
	traversalDuration := traversalTimer()
	log.Info("traversal graph built", append(fields,
		"connection_count", len(graph.Connections),
		"target_connections", graph.TargetConnections,
		"phase_b_exhausted", graph.PhaseBAttemptsExhausted)...)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	caprepTimer := startTimer()
	tasks := caprep.Build(diagram, graph, chain.BaseSeed, params.CellPadding)
	caprepDuration := caprepTimer()

	caTimer := startTimer()
	results, workerCount, err := runCAStage(ctx, tasks, ca.Config{
		KernelSize:             params.CA.KernelSize,
		BirthLimit:             params.CA.BirthLimit,
		SurvivalLimit:          params.CA.SurvivalLimit,
		Iterations:             params.CA.Iterations,
		InitialWallProbability: params.CA.InitialWallProbability,
		ConnectorDepth:         params.CA.ConnectorDepth,
	}, params.Parallelism)
	caDuration := caTimer()
	if err != nil {
		log.Error("cellular automaton stage failed", append(fields, "error", err.Error())...)
		return nil, nil, err
	}

	merged := mergeResults(diagram.Size, diagram.OwnershipGrid, results)

	coverageRatio := 0.0
	if graph.TotalNeighborPairs > 0 {
		coverageRatio = float64(len(graph.Connections)) / float64(graph.TotalNeighborPairs)
	}

	report := &GenerationReport{
		RunID:       runID,
		Fingerprint: fingerprint,
		SeedChain:   chain,
		Durations: StageDurations{
			Poisson:   poissonDuration,
			Voronoi:   voronoiDuration,
			Traversal: traversalDuration,
			CAPrep:    caprepDuration,
			CA:        caDuration,
			Total:     total(),
		},
		CellCount:               len(diagram.Cells),
		TotalNeighborPairs:      graph.TotalNeighborPairs,
		ConnectionCount:         len(graph.Connections),
		PhaseBAttemptsExhausted: graph.PhaseBAttemptsExhausted,
		PoissonRejections:       poissonResult.Rejections,
		CoverageRatio:           coverageRatio,
		WorkerCount:             workerCount,
	}

	log.Info("generation complete", append(fields, "total_duration", report.Durations.Total, "workers", workerCount)...)

	return &MergedResult{
		CanvasSize:     diagram.Size,
		OwnershipGrid:  diagram.OwnershipGrid,
		PerCellResults: results,
		Merged:         merged,
	}, report, nil
}

// startTimer returns a function that reports the elapsed time since
// startTimer was called.
func startTimer() func() time.Duration {
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}

// runPoissonStage derives the sample region from the canvas and the
// configured border padding, then draws the seed set.
func runPoissonStage(chain seedchain.Chain, params config.Params) (poisson.Result, error) {
	pad := params.Poisson.Padding
	regionX := float64(params.Canvas.X) - 2*pad
	regionY := float64(params.Canvas.Y) - 2*pad
	if regionX < 1 {
		regionX = 1
	}
	if regionY < 1 {
		regionY = 1
	}

	rng := seedchain.NewRNG(chain.PoissonSeed)
	return poisson.SampleStats(rng, poisson.Params{
		Region:   mgl64.Vec2{regionX, regionY},
		Radius:   params.Poisson.Radius,
		Attempts: params.Poisson.Attempts,
		Padding:  mgl64.Vec2{pad, pad},
	})
}

// runCAStage runs one ca.Run per task, bounded to parallelism concurrent
// workers, grounded on the teacher's channel-fed generator worker pool
// but built on errgroup and a weighted semaphore so a worker panic or a
// cancelled context aborts the whole call instead of being silently
// absorbed. It returns the resolved worker count alongside the results,
// since a <= 0 parallelism is resolved to runtime.GOMAXPROCS(0) here.
//
// Results are written into a slice pre-sized and indexed by task index,
// never appended, so the final order is identical regardless of which
// worker finishes first.
func runCAStage(ctx context.Context, tasks []caprep.Task, cfg ca.Config, parallelism int) ([]ca.Result, int, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]ca.Result, len(tasks))
	sem := semaphore.NewWeighted(int64(parallelism))
	g, gctx := errgroup.WithContext(ctx)

	var acquireErr error
	for i := range tasks {
		i := i
		if err := sem.Acquire(gctx, 1); err != nil {
			acquireErr = err
			break
		}
		g.Go(func() (err error) {
			defer sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("dungeongen: ca worker for cell %d panicked: %v", tasks[i].CellIndex, r)
				}
			}()
			results[i] = ca.Run(tasks[i], cfg)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, parallelism, err
	}
	if acquireErr != nil {
		return nil, parallelism, acquireErr
	}
	if err := ctx.Err(); err != nil {
		return nil, parallelism, err
	}
	return results, parallelism, nil
}
