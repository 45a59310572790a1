// Package xdo exposes synthetic keyboard input, window focus control and
// modifier key management on X11.
//
// A Context owns one connection to a display through one of two backends:
// libxdo, called through cgo, or a pure Go implementation of the same calls
// speaking the X11 protocol directly. Both report failures as *Error values
// carrying the name of the failing native call and its result code.
package xdo

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Window identifies an X11 window.
type Window uint32

// CurrentWindow targets whichever window currently has focus. Input sent to
// it is synthesized with XTEST instead of being delivered to a specific
// window with XSendEvent.
const CurrentWindow Window = 0

// Backend selects the implementation behind a Context.
type Backend string

const (
	// BackendLibxdo calls into libxdo. It requires a cgo build.
	BackendLibxdo Backend = "libxdo"

	// BackendX11 speaks the X11 protocol directly and needs no C libraries.
	BackendX11 Backend = "x11"
)

// DefaultBackend returns libxdo when the binary was built with cgo and the
// X11 backend otherwise.
func DefaultBackend() Backend {
	if libxdoAvailable {
		return BackendLibxdo
	}
	return BackendX11
}

// ParseBackend validates a backend name. An empty name selects the default.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "":
		return DefaultBackend(), nil
	case BackendLibxdo, BackendX11:
		return Backend(name), nil
	default:
		return "", fmt.Errorf("unknown backend %q", name)
	}
}

// Options configures a new Context.
type Options struct {
	// Display is the X display to connect to, such as ":0". When empty the
	// DISPLAY environment variable is used.
	Display string

	// Backend selects the implementation. When empty DefaultBackend is used.
	Backend Backend

	// Logger receives debug output for each call and deprecation warnings.
	// When nil the charmbracelet/log default logger is used.
	Logger *log.Logger
}

// Context owns one native automation handle. It is safe to use from multiple
// goroutines, but calls are serialized: a blocking call such as
// WaitForWindowFocus holds up every other call on the same Context.
type Context struct {
	b       backend
	log     *log.Logger
	mu      sync.Mutex
	closed  bool
	cleanup runtime.Cleanup
}

// New creates a Context connected to the display named in opts. If no handle
// can be created the returned error is an *InitError.
func New(opts Options) (*Context, error) {
	display := opts.Display
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	kind := opts.Backend
	if kind == "" {
		kind = DefaultBackend()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var (
		b   backend
		err error
	)
	switch kind {
	case BackendLibxdo:
		b, err = newLibxdo(display)
	case BackendX11:
		b, err = newX11Backend(display, logger)
	default:
		err = fmt.Errorf("unknown backend %q", kind)
	}
	if err != nil {
		return nil, &InitError{Backend: kind, Display: display, Err: err}
	}
	logger.Debug("Opened xdo context", "backend", kind, "display", display, "version", b.version())
	return newContext(b, logger), nil
}

func newContext(b backend, logger *log.Logger) *Context {
	c := &Context{b: b, log: logger}
	c.cleanup = runtime.AddCleanup(c, func(b backend) { b.close() }, b)
	return c
}

// Close releases the native handle. Calling Close more than once is a no-op.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.cleanup.Stop()
	c.b.close()
	return nil
}

// Version returns the version of the backend in use.
func (c *Context) Version() string {
	return c.b.version()
}

// EnterTextWindow types a string into the given window, one keystroke at a
// time with the given delay between keystrokes.
//
// To send a key combination such as "alt+l" use SendKeysequenceWindow
// instead. If clearModifiers is set, any modifier keys currently held down are
// released for the duration of the call and pressed again afterwards.
func (c *Context) EnterTextWindow(win Window, text string, delay time.Duration, clearModifiers bool) error {
	us, err := microseconds(delay)
	if err != nil {
		return err
	}
	c.log.Debug("Entering text", "window", win, "bytes", len(text), "delay", us, "clear_modifiers", clearModifiers)
	return c.call(win, clearModifiers, func() error {
		return c.b.enterTextWindow(win, text, us)
	})
}

// SendKeysequenceWindow sends a key sequence to the given window.
//
// A key sequence is a keysym name such as "l" or "semicolon", or several
// names joined with '+' such as "alt+Return" or "Alt_L+Tab". To type a string
// like "Hello world." use EnterTextWindow instead.
func (c *Context) SendKeysequenceWindow(win Window, sequence string, delay time.Duration, clearModifiers bool) error {
	us, err := microseconds(delay)
	if err != nil {
		return err
	}
	c.log.Debug("Sending key sequence", "window", win, "sequence", sequence, "delay", us, "clear_modifiers", clearModifiers)
	return c.call(win, clearModifiers, func() error {
		return c.b.sendKeysequenceWindow(win, sequence, us)
	})
}

// Type types a string into the given window.
//
// Deprecated: Use EnterTextWindow, which takes the delay as a time.Duration.
// Type takes the delay in microseconds.
func (c *Context) Type(text string, clearModifiers bool, delay uint32, win Window) error {
	c.log.Warn("Call to deprecated function Type", "replacement", "EnterTextWindow")
	return c.EnterTextWindow(win, text, time.Duration(delay)*time.Microsecond, clearModifiers)
}

// FocusWindow gives input focus to the given window.
func (c *Context) FocusWindow(win Window) error {
	c.log.Debug("Focusing window", "window", win)
	return c.call(win, false, func() error {
		return c.b.focusWindow(win)
	})
}

// ActivateWindow asks the window manager to activate the given window,
// switching desktops and raising it as necessary.
func (c *Context) ActivateWindow(win Window) error {
	c.log.Debug("Activating window", "window", win)
	return c.call(win, false, func() error {
		return c.b.activateWindow(win)
	})
}

// GetFocusedWindow returns the window which currently has input focus.
func (c *Context) GetFocusedWindow() (Window, error) {
	var win Window
	err := c.call(CurrentWindow, false, func() error {
		var err error
		win, err = c.b.getFocusedWindow()
		return err
	})
	return win, err
}

// WaitForWindowFocus blocks until the given window gains focus, or loses it
// if wantFocus is false. There is no timeout.
func (c *Context) WaitForWindowFocus(win Window, wantFocus bool) error {
	c.log.Debug("Waiting for focus change", "window", win, "want_focus", wantFocus)
	return c.call(win, false, func() error {
		return c.b.waitForWindowFocus(win, wantFocus)
	})
}

// call runs fn with the context locked, optionally with the active modifiers
// cleared around it.
func (c *Context) call(win Window, clearModifiers bool, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !clearModifiers {
		return fn()
	}
	return c.withoutModifiers(win, fn)
}

// withoutModifiers releases the active modifiers, runs fn and restores them.
// The modifier snapshot is freed on every path out of this function, and the
// modifiers are restored even if fn fails.
func (c *Context) withoutModifiers(win Window, fn func() error) error {
	mods, err := c.b.getActiveModifiers()
	if err != nil {
		return err
	}
	defer c.b.freeModifiers(mods)

	restore := func(err error) error {
		if rerr := c.b.setActiveModifiers(win, mods); rerr != nil {
			if err == nil {
				return rerr
			}
			c.log.Error("Failed to restore modifiers", "window", win, "err", rerr)
			return errors.Join(err, rerr)
		}
		return err
	}
	c.log.Debug("Clearing modifiers", "window", win, "count", mods.Len())
	if err := c.b.clearActiveModifiers(win, mods); err != nil {
		return restore(err)
	}
	return restore(fn())
}
