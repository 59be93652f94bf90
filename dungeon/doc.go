// Package dungeon orchestrates the full generation pipeline: Poisson-disk
// seed sampling, Voronoi/Delaunay diagram construction, biased spanning
// tree traversal, per-cell cellular automaton carving, and the final
// index-addressed merge into one canvas-sized tile grid.
//
// Generate is the single entry point. Every other exported type in this
// package describes its inputs or outputs; the actual stage logic lives
// in the dungeon/seedchain, dungeon/poisson, dungeon/voronoi,
// dungeon/traversal, dungeon/caprep and dungeon/ca packages, each usable
// standalone.
package dungeon
