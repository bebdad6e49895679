package app

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	err := fs.Parse([]string{"-blender", "lerped", "-seed", "7", "-set", "size=32", "-set", "grid_exp = 2", "-set", "size=64"})
	require.NoError(t, err)
	assert.Equal(t, "lerped", cfg.Blender)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, map[string]string{"size": "64", "grid_exp": "2"}, cfg.Overrides.Map())
	assert.Equal(t, "size=32,grid_exp = 2,size=64", cfg.Overrides.String())
}

func TestKVListRejectsBareValue(t *testing.T) {
	var l KVList
	assert.Error(t, l.Set("radius"))
	assert.Empty(t, l)
}
