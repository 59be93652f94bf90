package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// ErrPresetPathEmpty is returned by LoadPreset when called with an empty
// path.
var ErrPresetPathEmpty = errors.New("dungeongen: preset path must not be empty")

// Preset is the on-disk TOML shape for a named parameter set, used by
// example tools and test fixtures. Fields are flat so a preset file reads
// as a single table; zero values fall back to Default's values at load
// time via ApplyTo.
type Preset struct {
	BaseSeed uint64 `toml:"base_seed"`

	CanvasX int `toml:"canvas_x"`
	CanvasY int `toml:"canvas_y"`

	PoissonRadius   float64 `toml:"poisson_radius"`
	PoissonAttempts int     `toml:"poisson_attempts"`
	PoissonPadding  float64 `toml:"poisson_padding"`

	NeighborCoverage               float64 `toml:"neighbor_coverage"`
	ConnectionDistributionScaling  float64 `toml:"connection_distribution_scaling"`
	IncludeBorderEdges             bool    `toml:"include_border_edges"`

	CellPadding int `toml:"cell_padding"`

	CAKernelSize             int     `toml:"ca_kernel_size"`
	CABirthLimit              int     `toml:"ca_birth_limit"`
	CASurvivalLimit           int     `toml:"ca_survival_limit"`
	CAIterations               int     `toml:"ca_iterations"`
	CAInitialWallProbability  float64 `toml:"ca_initial_wall_probability"`
	CAConnectorDepth          int     `toml:"ca_connector_depth"`

	Parallelism int `toml:"parallelism"`
}

// LoadPreset reads and decodes a TOML preset file at path.
func LoadPreset(path string) (Preset, error) {
	if path == "" {
		return Preset{}, ErrPresetPathEmpty
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("dungeongen: read preset: %w", err)
	}
	var p Preset
	if err := toml.Unmarshal(contents, &p); err != nil {
		return Preset{}, fmt.Errorf("dungeongen: decode preset: %w", err)
	}
	return p, nil
}

// SavePreset encodes p as TOML and writes it to path, overwriting any
// existing file.
func SavePreset(path string, p Preset) error {
	if path == "" {
		return ErrPresetPathEmpty
	}
	encoded, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("dungeongen: encode preset: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("dungeongen: write preset: %w", err)
	}
	return nil
}

// ApplyTo overlays non-zero preset fields onto base and returns the
// result; zero fields in p leave base's corresponding value untouched,
// so a preset only needs to specify the parameters it deviates on. The
// canvas and base seed are the exception: they are always taken from
// the preset when loaded via PresetToParams, since a preset with no
// canvas makes little sense on its own.
func (p Preset) ApplyTo(base Params) Params {
	out := base
	if p.BaseSeed != 0 {
		out.BaseSeed = p.BaseSeed
	}
	if p.CanvasX != 0 {
		out.Canvas.X = p.CanvasX
	}
	if p.CanvasY != 0 {
		out.Canvas.Y = p.CanvasY
	}
	if p.PoissonRadius != 0 {
		out.Poisson.Radius = p.PoissonRadius
	}
	if p.PoissonAttempts != 0 {
		out.Poisson.Attempts = p.PoissonAttempts
	}
	if p.PoissonPadding != 0 {
		out.Poisson.Padding = p.PoissonPadding
	}
	if p.NeighborCoverage != 0 {
		out.Traversal.NeighborCoverage = p.NeighborCoverage
	}
	if p.ConnectionDistributionScaling != 0 {
		out.Traversal.ConnectionDistributionScaling = p.ConnectionDistributionScaling
	}
	if p.IncludeBorderEdges {
		out.Traversal.IncludeBorderEdges = true
	}
	if p.CellPadding != 0 {
		out.CellPadding = p.CellPadding
	}
	if p.CAKernelSize != 0 {
		out.CA.KernelSize = p.CAKernelSize
	}
	if p.CABirthLimit != 0 {
		out.CA.BirthLimit = p.CABirthLimit
	}
	if p.CASurvivalLimit != 0 {
		out.CA.SurvivalLimit = p.CASurvivalLimit
	}
	if p.CAIterations != 0 {
		out.CA.Iterations = p.CAIterations
	}
	if p.CAInitialWallProbability != 0 {
		out.CA.InitialWallProbability = p.CAInitialWallProbability
	}
	if p.CAConnectorDepth != 0 {
		out.CA.ConnectorDepth = p.CAConnectorDepth
	}
	if p.Parallelism != 0 {
		out.Parallelism = p.Parallelism
	}
	return out
}

// PresetToParams loads a preset at path and overlays it onto Default for
// the preset's own canvas and base seed.
func PresetToParams(path string) (Params, error) {
	p, err := LoadPreset(path)
	if err != nil {
		return Params{}, err
	}
	base := Default(p.BaseSeed, CanvasSize{X: p.CanvasX, Y: p.CanvasY})
	return p.ApplyTo(base), nil
}
