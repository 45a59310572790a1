package xdo

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/jezek/xgb/xproto"
	"github.com/woofdoggo/goxdo/internal/x11"
)

// x11Backend implements the native call table on top of the pure Go X11
// client. Failures are reported under the libxdo function names with the
// generic error code.
type x11Backend struct {
	c *x11.Client
}

type x11Modifiers []xproto.Keycode

func (m x11Modifiers) Len() int {
	return len(m)
}

func newX11Backend(display string, logger *log.Logger) (*x11Backend, error) {
	c, err := x11.NewClient(display, logger)
	if err != nil {
		return nil, err
	}
	return &x11Backend{c: c}, nil
}

func (x *x11Backend) close() {
	x.c.Close()
}

func (x *x11Backend) version() string {
	return x.c.Version()
}

func (x *x11Backend) enterTextWindow(win Window, text string, delay uint32) error {
	d := time.Duration(delay) * time.Microsecond
	return fail(opEnterText, x.c.EnterText(xproto.Window(win), text, d))
}

func (x *x11Backend) sendKeysequenceWindow(win Window, sequence string, delay uint32) error {
	d := time.Duration(delay) * time.Microsecond
	return fail(opSendKeysequence, x.c.SendSequence(xproto.Window(win), sequence, d))
}

func (x *x11Backend) focusWindow(win Window) error {
	return fail(opFocusWindow, x.c.FocusWindow(xproto.Window(win)))
}

func (x *x11Backend) activateWindow(win Window) error {
	return fail(opActivateWindow, x.c.ActivateWindow(xproto.Window(win)))
}

func (x *x11Backend) getFocusedWindow() (Window, error) {
	win, err := x.c.GetFocusedWindow()
	if err != nil {
		return 0, fail(opGetFocusedWindow, err)
	}
	return Window(win), nil
}

func (x *x11Backend) waitForWindowFocus(win Window, wantFocus bool) error {
	return fail(opWaitForWindowFocus, x.c.WaitForFocus(xproto.Window(win), wantFocus))
}

func (x *x11Backend) getActiveModifiers() (modifiers, error) {
	codes, err := x.c.ActiveModifiers()
	if err != nil {
		return nil, fail(opGetActiveModifiers, err)
	}
	return x11Modifiers(codes), nil
}

func (x *x11Backend) clearActiveModifiers(win Window, mods modifiers) error {
	return fail(opClearActiveModifiers, x.c.ClearModifiers(xproto.Window(win), mods.(x11Modifiers)))
}

func (x *x11Backend) setActiveModifiers(win Window, mods modifiers) error {
	return fail(opSetActiveModifiers, x.c.SetModifiers(xproto.Window(win), mods.(x11Modifiers)))
}

// freeModifiers has nothing to release; the snapshot is garbage collected.
func (x *x11Backend) freeModifiers(modifiers) {}
