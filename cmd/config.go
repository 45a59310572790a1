package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woofdoggo/goxdo/internal/cfg"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		// The configuration may not exist yet, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if len(args) == 1 {
				path = args[0]
			}
			written, err := cfg.MakeProfile(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), field("created", written))
			return nil
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			display := profile.Display
			if display == "" {
				display = "$DISPLAY"
			}
			backend := profile.Backend
			if backend == "" {
				backend = "default"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, field("display", display))
			fmt.Fprintln(out, field("backend", backend))
			fmt.Fprintln(out, field("delay", profile.Delay.Duration().String()))
			fmt.Fprintln(out, field("clearmods", fmt.Sprint(profile.ClearModifiers)))
			fmt.Fprintln(out, field("log", profile.Log.Level))
		},
	}
)

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
