// Package telemetry provides the structured logging and run-correlation
// helpers shared across the generation pipeline. Nothing here feeds back
// into a generated dungeon's geometry: a log line or a run identifier may
// be dropped, duplicated, or withheld entirely without changing a single
// output pixel.
package telemetry

import (
	"encoding/binary"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Logger returns log, or slog.Default() if log is nil. Every stage
// accepts a logger this way so callers that don't care about logging
// never have to construct one.
func Logger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

// RunID returns a fresh run identifier suitable for correlating log lines
// across one Generate call. It is log-only: no stage reads it back to
// influence a numeric result.
func RunID() uuid.UUID {
	return uuid.New()
}

// Fingerprint hashes a run's seed chain and canvas extent into a short,
// stable value for log correlation, so repeated runs with identical
// parameters can be matched across log streams without printing every
// field. It has no bearing on generation itself.
func Fingerprint(baseSeed, poissonSeed, traversalSeed uint64, canvasX, canvasY int) uint64 {
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:8], baseSeed)
	binary.LittleEndian.PutUint64(buf[8:16], poissonSeed)
	binary.LittleEndian.PutUint64(buf[16:24], traversalSeed)
	binary.LittleEndian.PutUint64(buf[24:32], uint64(uint32(canvasX)))
	binary.LittleEndian.PutUint64(buf[32:40], uint64(uint32(canvasY)))
	return xxhash.Sum64(buf[:])
}

// StageFields builds the common slog attribute set every stage log line
// carries: run identifier and fingerprint.
func StageFields(runID uuid.UUID, fingerprint uint64) []any {
	return []any{
		slog.String("run_id", runID.String()),
		slog.Uint64("fingerprint", fingerprint),
	}
}
