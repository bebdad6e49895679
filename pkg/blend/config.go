package blend

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"scatterblend/pkg/scatter"
)

var (
	// ErrRadiusTooSmall reports a blend radius that cannot guarantee every cell
	// at least one contributing sample.
	ErrRadiusTooSmall = errors.New("blend: radius below minimum coverage radius")
	// ErrRegionNotAligned reports a region size that is not a multiple of the
	// grid interval.
	ErrRegionNotAligned = errors.New("blend: region size must be a multiple of the grid interval")
	// ErrInvalidValue reports an unparsable configuration value.
	ErrInvalidValue = errors.New("blend: invalid configuration value")
)

// Config controls the scattered blender.
type Config struct {
	// Frequency is the lattice frequency in cells per world unit.
	Frequency float64
	// BlendRadiusPadding is added on top of the minimum coverage radius.
	BlendRadiusPadding float64
	// BlendRadius, when positive, is used as-is instead of padding.
	BlendRadius float64
	// RegionSize is the side of a region in cells.
	RegionSize int
	// DisableFastPath forces the kernel loop even for single-label regions.
	DisableFastPath bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Frequency:          0.04,
		BlendRadiusPadding: 24,
		RegionSize:         64,
	}
}

// Radius returns the effective blend radius.
func (c Config) Radius() float64 {
	if c.BlendRadius > 0 {
		return c.BlendRadius
	}
	return c.BlendRadiusPadding + scatter.MinBlendRadius(c.Frequency)
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if !(c.Frequency > 0) || math.IsInf(c.Frequency, 0) {
		return fmt.Errorf("%w: got %v", scatter.ErrInvalidFrequency, c.Frequency)
	}
	if c.RegionSize <= 0 {
		return fmt.Errorf("%w: got %d", scatter.ErrInvalidRegionSize, c.RegionSize)
	}
	minRadius := scatter.MinBlendRadius(c.Frequency)
	if r := c.Radius(); !(r > minRadius) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: radius %.4f must exceed %.4f at frequency %v", ErrRadiusTooSmall, r, minRadius, c.Frequency)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
//
// Keys: frequency, grid_frequency (square-grid equivalent, converted to the
// lattice frequency), padding, radius, size, fast_path.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	var err error
	if v, ok := cfg["frequency"]; ok {
		if c.Frequency, err = parseFloat("frequency", v); err != nil {
			return c, err
		}
	}
	if v, ok := cfg["grid_frequency"]; ok {
		f, err := parseFloat("grid_frequency", v)
		if err != nil {
			return c, err
		}
		c.Frequency = scatter.GridEquivalentFrequency(f)
	}
	if v, ok := cfg["padding"]; ok {
		if c.BlendRadiusPadding, err = parseFloat("padding", v); err != nil {
			return c, err
		}
	}
	if v, ok := cfg["radius"]; ok {
		if c.BlendRadius, err = parseFloat("radius", v); err != nil {
			return c, err
		}
	}
	if v, ok := cfg["size"]; ok {
		if c.RegionSize, err = parseInt("size", v); err != nil {
			return c, err
		}
	}
	if v, ok := cfg["fast_path"]; ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%w: fast_path=%q", ErrInvalidValue, v)
		}
		c.DisableFastPath = !enabled
	}
	return c, nil
}

// GridConfig controls the grid-sampled strategies.
type GridConfig struct {
	// Radius is the kernel radius in cells; the kernel reaches zero at Radius+1.
	Radius int
	// GridIntervalExp sets the node spacing to 1<<GridIntervalExp cells.
	GridIntervalExp uint
	// RegionSize is the side of a region in cells.
	RegionSize int
}

// DefaultGridConfig returns the standard grid configuration.
func DefaultGridConfig() GridConfig {
	return GridConfig{Radius: 24, GridIntervalExp: 3, RegionSize: 16}
}

// Interval returns the grid node spacing in cells.
func (c GridConfig) Interval() int { return 1 << c.GridIntervalExp }

func (c GridConfig) validate(needsNodes bool) error {
	if c.RegionSize <= 0 {
		return fmt.Errorf("%w: got %d", scatter.ErrInvalidRegionSize, c.RegionSize)
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: got %d", ErrRadiusTooSmall, c.Radius)
	}
	if needsNodes && c.Radius < c.Interval() {
		return fmt.Errorf("%w: radius %d below grid interval %d", ErrRadiusTooSmall, c.Radius, c.Interval())
	}
	return nil
}

// GridFromMap populates a grid config from a string map. Keys: radius,
// grid_exp, size.
func GridFromMap(cfg map[string]string) (GridConfig, error) {
	c := DefaultGridConfig()
	if cfg == nil {
		return c, nil
	}
	var err error
	if v, ok := cfg["radius"]; ok {
		if c.Radius, err = parseInt("radius", v); err != nil {
			return c, err
		}
	}
	if v, ok := cfg["grid_exp"]; ok {
		exp, err := parseInt("grid_exp", v)
		if err != nil {
			return c, err
		}
		if exp < 0 || exp > 10 {
			return c, fmt.Errorf("%w: grid_exp=%d out of range [0,10]", ErrInvalidValue, exp)
		}
		c.GridIntervalExp = uint(exp)
	}
	if v, ok := cfg["size"]; ok {
		if c.RegionSize, err = parseInt("size", v); err != nil {
			return c, err
		}
	}
	return c, nil
}

// EffectivePadding derives the padding that reaches targetRadius at
// frequency. When that padding would drop below minPadding, minPadding is
// returned and clamped is true.
func EffectivePadding(targetRadius, frequency, minPadding float64) (padding float64, clamped bool) {
	padding = targetRadius - scatter.MinBlendRadius(frequency)
	if padding < minPadding {
		return minPadding, true
	}
	return padding, false
}

func parseFloat(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return f, nil
}

func parseInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return n, nil
}
