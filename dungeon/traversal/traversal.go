// Package traversal builds a connectivity graph over a Voronoi diagram's
// cells: a biased minimum-weight-averse spanning tree (longer, more open
// edges preferred) topped up with extra connections until a target
// neighbour-coverage ratio is met.
package traversal

import (
	"math"
	"sort"

	"github.com/voronoidungeon/dungeongen/dungeon/seedchain"
	"github.com/voronoidungeon/dungeongen/dungeon/voronoi"
)

// Params configures one traversal build.
type Params struct {
	// NeighborRatio is the target fraction, in [0,1], of all neighbour
	// pairs that should end up connected after Phase B.
	NeighborRatio float64
	// IncludeBorderEdges allows canvas-border edges to host connections
	// when true.
	IncludeBorderEdges bool
	// ConnectionDistributionScaling biases where along an edge a
	// connection point is sampled: 0 pins it to the midpoint, 1 allows
	// the full smoothstep spread.
	ConnectionDistributionScaling float64
}

// Connection is one chosen crossing point between two adjacent cells.
type Connection struct {
	CellA, CellB int
	EdgeIndex    int
	PointOnEdge  voronoi.Point
	EdgeLength   float64
}

// Graph is the result of Build: a connected (when there are >= 2 seeds)
// graph over the diagram's cells.
type Graph struct {
	Diagram             *voronoi.Diagram
	TotalNeighborPairs  int
	TargetConnections   int
	Connections         []Connection
	ConnectedPairs      map[[2]int]bool
	// PhaseBAttemptsExhausted is true when Phase B stopped because it
	// hit its attempt bound rather than because it reached its target or
	// ran out of candidates. Connectivity is unaffected either way.
	PhaseBAttemptsExhausted bool
}

type candidate struct {
	edgeIndex int
	length    float64
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Build constructs the traversal graph over d using seed for every
// random draw (edge-point sampling, Phase B weighted picks).
func Build(d *voronoi.Diagram, seed uint64, p Params) *Graph {
	// Neighbour pairs are counted from the diagram's surviving edges: a
	// Delaunay neighbour whose Voronoi edge was clipped away entirely shares
	// no boundary on the canvas and can never host a connection.
	edgePairs := make(map[[2]int]bool)
	for _, e := range d.Edges {
		edgePairs[pairKey(e.SeedA, e.SeedB)] = true
	}
	totalPairs := len(edgePairs)

	var candidates []candidate
	for ei, e := range d.Edges {
		if !p.IncludeBorderEdges && e.IsBorder {
			continue
		}
		length := e.Length()
		if length <= 0 {
			continue
		}
		candidates = append(candidates, candidate{ei, length})
	}

	rng := seedchain.NewRNG(seed)

	sorted := make([]candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].length > sorted[j].length })

	uf := newUnionFind(len(d.Cells))
	connectedPairs := make(map[[2]int]bool)
	var connections []Connection

	samplePoint := func(e voronoi.Edge) voronoi.Point {
		t := rng.NextFloat64()
		s := 3*t*t - 2*t*t*t
		factor := (s-0.5)*p.ConnectionDistributionScaling + 0.5
		return e.From.Add(e.To.Sub(e.From).Mul(factor))
	}

	for _, c := range sorted {
		if len(d.Cells) < 2 {
			break
		}
		e := d.Edges[c.edgeIndex]
		if !uf.union(e.SeedA, e.SeedB) {
			continue
		}
		pt := samplePoint(e)
		connections = append(connections, Connection{
			CellA: e.SeedA, CellB: e.SeedB, EdgeIndex: c.edgeIndex,
			PointOnEdge: pt, EdgeLength: c.length,
		})
		connectedPairs[pairKey(e.SeedA, e.SeedB)] = true
		if uf.components() == 1 {
			break
		}
	}

	target := int(math.Ceil(p.NeighborRatio * float64(totalPairs)))
	if len(connections) > target {
		target = len(connections)
	}

	var remaining []candidate
	for _, c := range candidates {
		e := d.Edges[c.edgeIndex]
		if connectedPairs[pairKey(e.SeedA, e.SeedB)] {
			continue
		}
		remaining = append(remaining, c)
	}

	attemptBound := 5 * len(remaining)
	attempts := 0
	for len(connections) < target && len(remaining) > 0 && attempts < attemptBound {
		attempts++

		total := 0.0
		cumulative := make([]float64, len(remaining))
		for i, c := range remaining {
			total += c.length
			cumulative[i] = total
		}
		pick := rng.NextFloat64() * total
		idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] >= pick })
		if idx >= len(cumulative) {
			idx = len(cumulative) - 1
		}

		chosen := remaining[idx]
		remaining[idx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		e := d.Edges[chosen.edgeIndex]
		key := pairKey(e.SeedA, e.SeedB)
		if connectedPairs[key] {
			continue
		}

		pt := samplePoint(e)
		connections = append(connections, Connection{
			CellA: e.SeedA, CellB: e.SeedB, EdgeIndex: chosen.edgeIndex,
			PointOnEdge: pt, EdgeLength: chosen.length,
		})
		connectedPairs[key] = true
	}

	return &Graph{
		Diagram:                 d,
		TotalNeighborPairs:      totalPairs,
		TargetConnections:       target,
		Connections:             connections,
		ConnectedPairs:          connectedPairs,
		PhaseBAttemptsExhausted: len(connections) < target && len(remaining) > 0 && attempts >= attemptBound,
	}
}
