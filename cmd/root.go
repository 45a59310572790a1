package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/woofdoggo/goxdo/internal/cfg"
	"github.com/woofdoggo/goxdo/internal/log"
	"github.com/woofdoggo/goxdo/xdo"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	flagConfig   string
	flagDisplay  string
	flagBackend  string
	flagLogLevel string

	profile cfg.Profile
	logger  *log.Logger

	rootCmd = &cobra.Command{
		Use:   "goxdo",
		Short: "goxdo - fake keyboard input and window focus on X11",
		Long: `goxdo types text, sends key sequences and moves input focus between
windows on an X11 display, either through libxdo or by speaking the X11
protocol directly.`,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "configuration file (default $XDG_CONFIG_HOME/goxdo/goxdo.toml)")
	flags.StringVar(&flagDisplay, "display", "", "X display to connect to (default $DISPLAY)")
	flags.StringVar(&flagBackend, "backend", "", "backend to use: libxdo or x11")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
}

// setup loads the configuration, applies flag overrides and creates the
// logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	profile, err = cfg.GetProfile(flagConfig)
	if err != nil {
		return err
	}
	if flagDisplay != "" {
		profile.Display = flagDisplay
	}
	if flagBackend != "" {
		profile.Backend = flagBackend
	}
	if flagLogLevel != "" {
		profile.Log.Level = flagLogLevel
	}
	logger, err = log.New(profile.Log.Level, profile.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	logger.Debug("Loaded configuration", "display", profile.Display, "backend", profile.Backend)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logger == nil {
		return nil
	}
	return logger.Close()
}

// openContext connects to the configured display.
func openContext() (*xdo.Context, error) {
	backend, err := xdo.ParseBackend(profile.Backend)
	if err != nil {
		return nil, err
	}
	return xdo.New(xdo.Options{
		Display: profile.Display,
		Backend: backend,
		Logger:  logger.Logger,
	})
}

// parseWindow parses a window ID given in decimal or as a 0x-prefixed
// hexadecimal number. "current" selects xdo.CurrentWindow.
func parseWindow(s string) (xdo.Window, error) {
	if s == "" || s == "current" {
		return xdo.CurrentWindow, nil
	}
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q", s)
	}
	return xdo.Window(id), nil
}
