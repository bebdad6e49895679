package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Blender   string
	Mode      string
	Scale     int
	TPS       int
	Seed      int64
	NoiseSeed int64
	Width     int
	Height    int
	CacheSize int
	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Blender:   "scattered",
		Mode:      "blend",
		Scale:     1,
		TPS:       30,
		Seed:      1234,
		NoiseSeed: 2346864,
		Width:     768,
		Height:    768,
		CacheSize: 1 << 16,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Blender, "blender", c.Blender, "blend strategy to start with")
	fs.StringVar(&c.Mode, "mode", c.Mode, "render mode: blend, borders, height or points")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "jitter seed")
	fs.Int64Var(&c.NoiseSeed, "noise-seed", c.NoiseSeed, "biome noise seed")
	fs.IntVar(&c.Width, "width", c.Width, "view width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "view height in cells")
	fs.IntVar(&c.CacheSize, "cache", c.CacheSize, "classification cache entries")
	fs.Var(&c.Overrides, "set", "blender option in key=value form (repeatable)")
}

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map; later keys win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}
