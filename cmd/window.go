package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	waitLose bool

	windowFocusCmd = &cobra.Command{
		Use:   "windowfocus WINDOW",
		Short: "Give input focus to a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := parseWindow(args[0])
			if err != nil {
				return err
			}
			x, err := openContext()
			if err != nil {
				return err
			}
			defer x.Close()
			return x.FocusWindow(win)
		},
	}

	windowActivateCmd = &cobra.Command{
		Use:   "windowactivate WINDOW",
		Short: "Ask the window manager to activate a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := parseWindow(args[0])
			if err != nil {
				return err
			}
			x, err := openContext()
			if err != nil {
				return err
			}
			defer x.Close()
			return x.ActivateWindow(win)
		},
	}

	getWindowFocusCmd = &cobra.Command{
		Use:   "getwindowfocus",
		Short: "Print the ID of the window which has input focus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := openContext()
			if err != nil {
				return err
			}
			defer x.Close()
			win, err := x.GetFocusedWindow()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), win)
			return nil
		},
	}

	waitFocusCmd = &cobra.Command{
		Use:   "waitfocus WINDOW",
		Short: "Block until a window gains (or, with --lose, loses) focus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := parseWindow(args[0])
			if err != nil {
				return err
			}
			x, err := openContext()
			if err != nil {
				return err
			}
			defer x.Close()
			return x.WaitForWindowFocus(win, !waitLose)
		},
	}
)

func init() {
	waitFocusCmd.Flags().BoolVar(&waitLose, "lose", false, "wait for the window to lose focus instead")
	rootCmd.AddCommand(windowFocusCmd)
	rootCmd.AddCommand(windowActivateCmd)
	rootCmd.AddCommand(getWindowFocusCmd)
	rootCmd.AddCommand(waitFocusCmd)
}
