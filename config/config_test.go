package config_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/narrowstack/c4w/config"
)

func TestDefaultsValidate(t *testing.T) {
	d := config.Defaults()
	require.NoError(t, d.Validate())
}

func TestLoadAppliesFlagOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.BindFlags(fs)
	require.NoError(t, fs.Set("preview", "4"))
	require.NoError(t, fs.Set("bag", "false"))

	cfg, err := config.Load(fs, "")
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Preview)
	require.False(t, cfg.Bag)
}

func TestValidateRejectsOutOfRangePreview(t *testing.T) {
	cfg := config.Defaults()
	cfg.Preview = 14
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownPosetBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.PosetBackend = "sparse"
	require.ErrorIs(t, cfg.Validate(), config.ErrBadPosetBackend)
}

func TestValidateRejectsNonPositiveEpsilon(t *testing.T) {
	cfg := config.Defaults()
	cfg.Epsilon = 0
	require.Error(t, cfg.Validate())
}
