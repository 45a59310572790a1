package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/woofdoggo/goxdo/xdo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		libxdo := xdo.LibraryVersion()
		if libxdo == "" {
			libxdo = "not available (built without cgo)"
		}
		lines := []string{
			styleTitle.Render("goxdo " + Version),
			field("libxdo", libxdo),
			field("default", string(xdo.DefaultBackend())),
		}

		// Only report the connected backend if a display is reachable.
		if x, err := openContext(); err == nil {
			lines = append(lines, field("backend", x.Version()))
			x.Close()
		} else {
			logger.Debug("No display for version report", "err", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left, lines...))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
