package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/woofdoggo/goxdo/xdo"
	"golang.org/x/term"
)

// inputFlags are shared by the type and key commands.
type inputFlags struct {
	window         string
	delay          string
	clearModifiers bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.window, "window", "current", "window to send input to")
	cmd.Flags().StringVar(&f.delay, "delay", "", "delay between keystrokes, as a duration or in microseconds")
	cmd.Flags().BoolVar(&f.clearModifiers, "clearmodifiers", true, "release held modifiers while sending input")
}

// resolve applies the configuration defaults to any flags which were not set.
func (f *inputFlags) resolve(cmd *cobra.Command) (xdo.Window, time.Duration, bool, error) {
	win, err := parseWindow(f.window)
	if err != nil {
		return 0, 0, false, err
	}
	delay := profile.Delay.Duration()
	if f.delay != "" {
		if delay, err = xdo.ParseDelay(f.delay); err != nil {
			return 0, 0, false, err
		}
	}
	clearMods := profile.ClearModifiers
	if cmd.Flags().Changed("clearmodifiers") {
		clearMods = f.clearModifiers
	}
	return win, delay, clearMods, nil
}

var (
	typeFlags inputFlags
	keyFlags  inputFlags

	typeCmd = &cobra.Command{
		Use:   "type [TEXT]...",
		Short: "Type text, reading it from standard input if no arguments are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			win, delay, clearMods, err := typeFlags.resolve(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("no text given and standard input is a terminal")
				}
				text, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				args = []string{string(text)}
			}
			x, err := openContext()
			if err != nil {
				return err
			}
			defer x.Close()
			for _, text := range args {
				if err := x.EnterTextWindow(win, text, delay, clearMods); err != nil {
					return err
				}
			}
			return nil
		},
	}

	keyCmd = &cobra.Command{
		Use:   "key SEQUENCE...",
		Short: "Send key sequences such as ctrl+c or alt+Return",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			win, delay, clearMods, err := keyFlags.resolve(cmd)
			if err != nil {
				return err
			}
			x, err := openContext()
			if err != nil {
				return err
			}
			defer x.Close()
			for _, seq := range args {
				if err := x.SendKeysequenceWindow(win, seq, delay, clearMods); err != nil {
					return err
				}
			}
			return nil
		},
	}
)

func init() {
	typeFlags.register(typeCmd)
	keyFlags.register(keyCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(keyCmd)
}
