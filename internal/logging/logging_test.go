package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"scatterblend/pkg/blend"
	"scatterblend/pkg/core"
)

func TestSetupRoutesBlendLogs(t *testing.T) {
	defer func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		blend.SetLogger(zerolog.Nop())
	}()

	var buf bytes.Buffer
	setup(&buf, true)
	b, err := blend.NewScattered(blend.DefaultConfig())
	assert.NoError(t, err)
	b.Blend(1, 0, 0, func(float64, float64) core.Label { return 1 })
	assert.Contains(t, buf.String(), "fast path")

	buf.Reset()
	setup(&buf, false)
	b.Blend(1, 0, 0, func(float64, float64) core.Label { return 1 })
	assert.Empty(t, buf.String(), "debug events are dropped at info level")
}
