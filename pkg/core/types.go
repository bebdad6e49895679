package core

import (
	"fmt"
	"sort"

	"scatterblend/pkg/weightmap"
)

// Label identifies a discrete classification value such as a biome id.
type Label = weightmap.Label

// Classifier maps a world coordinate to a label. It must return the same
// label for the same coordinate for the duration of one blend call.
type Classifier func(x, z float64) Label

// ClassifierE is a Classifier that can fail.
type ClassifierE func(x, z float64) (Label, error)

// Fallible adapts a Classifier to the ClassifierE shape.
func (c Classifier) Fallible() ClassifierE {
	return func(x, z float64) (Label, error) { return c(x, z), nil }
}

// Blender produces a normalized per-cell label weight map for one square
// region addressed by its minimum world corner.
type Blender interface {
	Name() string
	RegionSize() int
	Blend(seed int64, originX, originZ int32, classify Classifier) *weightmap.Map
	BlendE(seed int64, originX, originZ int32, classify ClassifierE) (*weightmap.Map, error)
}

// Factory constructs a Blender from an optional configuration map.
type Factory func(cfg map[string]string) (Blender, error)

var blenders = map[string]Factory{}

// Register adds a blender factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	blenders[name] = f
}

// Blenders exposes the registry of available blender factories.
func Blenders() map[string]Factory {
	return blenders
}

// BlenderNames returns the registered names in sorted order.
func BlenderNames() []string {
	names := make([]string, 0, len(blenders))
	for name := range blenders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBlender looks up name in the registry and builds it from cfg.
func NewBlender(name string, cfg map[string]string) (Blender, error) {
	f, ok := blenders[name]
	if !ok {
		return nil, fmt.Errorf("unknown blender %q", name)
	}
	return f(cfg)
}
