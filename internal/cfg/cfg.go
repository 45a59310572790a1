// Package cfg allows for reading the user's configuration.
package cfg

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/woofdoggo/goxdo/internal/log"
	"github.com/woofdoggo/goxdo/xdo"
	"gopkg.in/yaml.v2"
)

// DefaultConfig contains the example configuration written by MakeProfile.
//
//go:embed default.toml
var DefaultConfig []byte

// Delay is a keystroke delay which can be written either as a duration
// string or as an integer number of microseconds.
type Delay time.Duration

// Log contains the user's logging settings.
type Log struct {
	Level string `toml:"level" yaml:"level"` // Log level
	File  string `toml:"file" yaml:"file"`   // Optional log file
}

// Profile contains an entire configuration profile.
type Profile struct {
	Display        string `toml:"display" yaml:"display"`                 // X display, $DISPLAY if empty
	Backend        string `toml:"backend" yaml:"backend"`                 // libxdo or x11
	Delay          Delay  `toml:"delay" yaml:"delay"`                     // Delay between keystrokes
	ClearModifiers bool   `toml:"clear_modifiers" yaml:"clear_modifiers"` // Suspend held modifiers while typing

	Log Log `toml:"log" yaml:"log"`
}

// Default returns the settings used for anything the configuration file does
// not specify.
func Default() Profile {
	return Profile{
		Delay:          Delay(xdo.DefaultDelay),
		ClearModifiers: true,
		Log:            Log{Level: "info"},
	}
}

// GetDirectory returns the path to the user's configuration directory.
func GetDirectory() (string, error) {
	// UserConfigDir automatically checks for $XDG_CONFIG_HOME and falls back
	// to $HOME/.config, so we don't need to do any special checks ourselves.
	xdgDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgDir, "goxdo"), nil
}

// DefaultPath returns the path of the configuration file used when none is
// given.
func DefaultPath() (string, error) {
	dir, err := GetDirectory()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(dir, "goxdo.toml"), nil
}

// GetProfile reads the configuration file at path. If path is empty, the
// default path is used and a missing file yields the default settings.
// Files ending in .yml or .yaml are parsed as YAML, anything else as TOML.
func GetProfile(path string) (Profile, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Profile{}, err
		}
	}
	profile := Default()
	file, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return profile, nil
		}
		return Profile{}, fmt.Errorf("read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.UnmarshalStrict(file, &profile)
	default:
		err = toml.Unmarshal(file, &profile)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("parse config file: %w", err)
	}
	if err = validateProfile(&profile); err != nil {
		return Profile{}, fmt.Errorf("validate config: %w", err)
	}
	return profile, nil
}

// MakeProfile writes the default configuration to path, or to the default
// path if path is empty. It refuses to overwrite an existing file.
func MakeProfile(path string) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()
	if _, err := file.Write(DefaultConfig); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}

// validateProfile ensures that the user's configuration profile does not have
// any illegal or invalid settings.
func validateProfile(conf *Profile) error {
	if _, err := xdo.ParseBackend(conf.Backend); err != nil {
		return err
	}
	if _, err := log.ParseLevel(conf.Log.Level); err != nil {
		return err
	}
	return nil
}

// Duration returns the delay as a time.Duration.
func (d Delay) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Delay) UnmarshalTOML(value any) error {
	parsed, err := xdo.ParseDelay(value)
	if err != nil {
		return err
	}
	*d = Delay(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Delay) UnmarshalYAML(unmarshal func(any) error) error {
	var value any
	if err := unmarshal(&value); err != nil {
		return err
	}
	parsed, err := xdo.ParseDelay(value)
	if err != nil {
		return err
	}
	*d = Delay(parsed)
	return nil
}
