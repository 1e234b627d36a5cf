package config

import (
	"flag"
	"runtime"
	"testing"

	"github.com/katalvlaran/randfuel/exrate"
	"github.com/katalvlaran/randfuel/fuel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"-fuel", "10:0.5", "-fuel", "20:0.5"})
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Samples)
	assert.Equal(t, 1, cfg.Depths)
	assert.Equal(t, 1.0, cfg.LengthToBreadth)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 0, cfg.Extensions)
	assert.Equal(t, 0, cfg.LessIgnitions)
	assert.Equal(t, exrate.DefaultMaxCells, cfg.MaxCells)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.ShowMetrics)
	assert.Equal(t, []fuel.Type{{Rate: 10, Fraction: 0.5}, {Rate: 20, Fraction: 0.5}}, cfg.Fuels)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("RANDFUEL_SAMPLES", "3")
	t.Setenv("RANDFUEL_DEPTHS", "2")
	t.Setenv("RANDFUEL_LB", "2.5")
	t.Setenv("RANDFUEL_WORKERS", "4")
	t.Setenv("RANDFUEL_EXTENSIONS", "1")
	t.Setenv("RANDFUEL_LESS_IGNITIONS", "1")
	t.Setenv("RANDFUEL_MAX_CELLS", "1000")
	t.Setenv("RANDFUEL_LOG_LEVEL", "debug")
	t.Setenv("RANDFUEL_LOG_FORMAT", "json")

	cfg, err := Load([]string{"-fuel", "5:1"})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Samples)
	assert.Equal(t, 2, cfg.Depths)
	assert.Equal(t, 2.5, cfg.LengthToBreadth)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 1, cfg.Extensions)
	assert.Equal(t, 1, cfg.LessIgnitions)
	assert.Equal(t, 1000, cfg.MaxCells)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	o := cfg.Options()
	assert.Equal(t, 3, o.Samples)
	assert.Equal(t, 1000, o.MaxCells)
	require.NoError(t, o.Validate())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("RANDFUEL_SAMPLES", "3")

	cfg, err := Load([]string{"-samples", "5", "-metrics", "-fuel", "1:1"})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Samples)
	assert.True(t, cfg.ShowMetrics)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		msg  string
	}{
		{"no fuel", nil, nil, "at least one -fuel"},
		{"bad fuel", nil, []string{"-fuel", "10"}, "rate:fraction"},
		{"bad fuel rate", nil, []string{"-fuel", "x:1"}, "rate"},
		{"bad env int", map[string]string{"RANDFUEL_SAMPLES": "many"}, []string{"-fuel", "1:1"}, "invalid RANDFUEL_SAMPLES"},
		{"bad env lb", map[string]string{"RANDFUEL_LB": "wide"}, []string{"-fuel", "1:1"}, "invalid RANDFUEL_LB"},
		{"bad format", nil, []string{"-fuel", "1:1", "-log-format", "xml"}, "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_Help(t *testing.T) {
	for _, arg := range []string{"-h", "-help"} {
		_, err := Load([]string{arg})
		assert.ErrorIs(t, err, flag.ErrHelp, arg)
	}
}

func TestFuelList_String(t *testing.T) {
	f := fuelList{{Rate: 10, Fraction: 0.5}, {Rate: 2, Fraction: 0.25}}
	assert.Equal(t, "10:0.5,2:0.25", f.String())
}
