package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woofdoggo/goxdo/internal/cfg"
	"github.com/woofdoggo/goxdo/xdo"
)

func TestParseWindow(t *testing.T) {
	tests := map[string]xdo.Window{
		"":          xdo.CurrentWindow,
		"current":   xdo.CurrentWindow,
		"0":         0,
		"12345":     12345,
		"0x1400003": 0x1400003,
	}
	for in, want := range tests {
		got, err := parseWindow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"focused", "-1", "0x100000000", "1.5"} {
		_, err := parseWindow(in)
		assert.Error(t, err, in)
	}
}

func TestInputFlagsResolve(t *testing.T) {
	profile = cfg.Default()
	profile.ClearModifiers = false

	var flags inputFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags(nil))

	win, delay, clearMods, err := flags.resolve(cmd)
	require.NoError(t, err)
	assert.Equal(t, xdo.CurrentWindow, win)
	assert.Equal(t, xdo.DefaultDelay, delay)
	assert.False(t, clearMods)

	flags = inputFlags{}
	cmd = &cobra.Command{Use: "test"}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--window", "0x20", "--delay", "3000", "--clearmodifiers"}))

	win, delay, clearMods, err = flags.resolve(cmd)
	require.NoError(t, err)
	assert.Equal(t, xdo.Window(0x20), win)
	assert.Equal(t, 3*time.Millisecond, delay)
	assert.True(t, clearMods)

	flags.delay = "soon"
	_, _, _, err = flags.resolve(cmd)
	assert.ErrorIs(t, err, xdo.ErrInvalidDelay)
}

func TestConfigInitAndShow(t *testing.T) {
	t.Setenv("GOXDO_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "goxdo.toml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"config", "init", path})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), path)

	out.Reset()
	rootCmd.SetArgs([]string{"--config", path, "--backend", "x11", "config", "show"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "x11")
	assert.Contains(t, out.String(), "12ms")

	rootCmd.SetArgs([]string{"config", "init", path})
	assert.Error(t, rootCmd.Execute())
}
