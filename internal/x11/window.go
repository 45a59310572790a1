package x11

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jezek/xgb/xproto"
)

// focusPollInterval is how often WaitForFocus checks the focused window.
const focusPollInterval = 30 * time.Millisecond

// FocusWindow gives input focus to the given window.
func (c *Client) FocusWindow(win xproto.Window) error {
	return xproto.SetInputFocusChecked(
		c.conn,
		xproto.InputFocusParent,
		win,
		xproto.TimeCurrentTime,
	).Check()
}

// ActivateWindow asks the window manager to activate the given window by
// sending a _NET_ACTIVE_WINDOW message to the root window. If the window is on
// another desktop, the window manager is asked to switch to it first.
// See: https://specifications.freedesktop.org/wm-spec/1.3/ar01s03.html
func (c *Client) ActivateWindow(win xproto.Window) error {
	winDesktop, err := c.getPropertyInt(win, netWmDesktop, xproto.AtomCardinal)
	switch err {
	case errInvalidLength:
		break
	case nil:
		if err = c.setCurrentDesktop(winDesktop); err != nil {
			return fmt.Errorf("set current desktop: %w", err)
		}
	default:
		return fmt.Errorf("get window desktop: %w", err)
	}
	activeWindow, err := c.atoms.Get(netActiveWindow)
	if err != nil {
		return fmt.Errorf("get _NET_ACTIVE_WINDOW atom: %w", err)
	}
	data := make([]uint32, 5)
	data[0] = 1 // Source indicator (1 = application)
	data[1] = c.GetCurrentTime()
	evt := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   activeWindow,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	return c.sendEvent(evt, maskSubstructure, c.root)
}

// GetFocusedWindow returns the window which currently has input focus.
func (c *Client) GetFocusedWindow() (xproto.Window, error) {
	reply, err := xproto.GetInputFocus(c.conn).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Focus, nil
}

// WaitForFocus blocks until the given window has input focus, or until it no
// longer has it if wantFocus is false.
func (c *Client) WaitForFocus(win xproto.Window, wantFocus bool) error {
	for {
		focused, err := c.GetFocusedWindow()
		if err != nil {
			return err
		}
		if (focused == win) == wantFocus {
			return nil
		}
		time.Sleep(focusPollInterval)
	}
}

// getProperty retrieves a raw window property.
func (c *Client) getProperty(win xproto.Window, name string, typ xproto.Atom) ([]byte, error) {
	atom, err := c.atoms.Get(name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(
		c.conn,
		false,
		win,
		atom,
		typ,
		0,
		1024,
	).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// getPropertyInt retrieves a 32-bit window property.
func (c *Client) getPropertyInt(win xproto.Window, name string, typ xproto.Atom) (uint32, error) {
	reply, err := c.getProperty(win, name, typ)
	if err != nil {
		return 0, err
	}
	if len(reply) != 4 {
		return 0, errInvalidLength
	}
	return binary.LittleEndian.Uint32(reply), nil
}

// setCurrentDesktop asks the window manager to switch to the given desktop by
// sending a _NET_CURRENT_DESKTOP message to the root window.
func (c *Client) setCurrentDesktop(desktop uint32) error {
	currentDesktop, err := c.atoms.Get(netCurrentDesktop)
	if err != nil {
		return fmt.Errorf("get _NET_CURRENT_DESKTOP atom: %w", err)
	}
	data := make([]uint32, 5)
	data[0] = desktop
	data[1] = c.GetCurrentTime()
	evt := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.root,
		Type:   currentDesktop,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	return c.sendEvent(evt, maskSubstructure, c.root)
}
