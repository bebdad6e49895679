package blend

import "scatterblend/pkg/core"

func init() {
	core.Register("scattered", func(cfg map[string]string) (core.Blender, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewScattered(c)
	})
	core.Register("convolved", func(cfg map[string]string) (core.Blender, error) {
		c, err := GridFromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewConvolvedGrid(c)
	})
	core.Register("lerped", func(cfg map[string]string) (core.Blender, error) {
		c, err := GridFromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewLerpedGrid(c)
	})
	core.Register("simple", func(cfg map[string]string) (core.Blender, error) {
		c, err := GridFromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewSimple(c)
	})
	core.Register("passthrough", func(cfg map[string]string) (core.Blender, error) {
		c, err := GridFromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewPassthrough(c.RegionSize)
	})
}
