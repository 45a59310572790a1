package x11

import (
	"fmt"
	"time"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
	"github.com/woofdoggo/goxdo/internal/keysym"
)

// InputState is whether a key is going down or up.
type InputState int

const (
	StateUp InputState = iota
	StateDown
)

// CurrentWindow makes input functions synthesize input with XTEST, so that it
// goes to whichever window has focus, instead of sending events to a specific
// window.
const CurrentWindow xproto.Window = 0

// key is a keycode to press along with whether Shift must be held for it.
type key struct {
	code    xproto.Keycode
	shift   bool
	scratch bool // Code was remapped and must be unbound afterwards
}

// EnterText types the given text into a window. Half of the delay is spent
// after each key press and half after each key release.
func (c *Client) EnterText(win xproto.Window, text string, delay time.Duration) error {
	km, err := c.getKeymap()
	if err != nil {
		return err
	}
	for _, r := range text {
		ks, err := keysym.FromRune(r)
		if err != nil {
			return err
		}
		k, err := c.resolve(km, ks)
		if err != nil {
			return err
		}
		err = c.typeKey(km, win, k, delay)
		if k.scratch {
			if uerr := c.remap(km, k.code, keysym.NoSymbol); uerr != nil && err == nil {
				err = uerr
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SendSequence presses every key in a '+'-separated key sequence in order and
// then releases them in reverse order.
func (c *Client) SendSequence(win xproto.Window, seq string, delay time.Duration) error {
	syms, err := keysym.ParseSequence(seq)
	if err != nil {
		return err
	}
	km, err := c.getKeymap()
	if err != nil {
		return err
	}
	keys := make([]key, 0, len(syms))
	defer func() {
		c.releaseScratch(keys, func(code xproto.Keycode) error {
			return c.remap(km, code, keysym.NoSymbol)
		})
	}()
	for _, ks := range syms {
		k, err := c.resolve(km, ks)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}

	shift, hasShiftKey := km.shiftKey()
	var state uint16
	for i, k := range keys {
		if k.shift && hasShiftKey && !hasShift(keys[:i]) {
			if err := c.sendKeyEvent(shift, StateDown, win, state); err != nil {
				return err
			}
			state |= xproto.ModMaskShift
		}
		if err := c.sendKeyEvent(k.code, StateDown, win, state); err != nil {
			return err
		}
		state |= km.modifierMask(k.code)
		time.Sleep(delay / 2)
	}
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		state &^= km.modifierMask(k.code)
		if err := c.sendKeyEvent(k.code, StateUp, win, state); err != nil {
			return err
		}
		if k.shift && hasShiftKey && !hasShift(keys[:i]) {
			state &^= xproto.ModMaskShift
			if err := c.sendKeyEvent(shift, StateUp, win, state); err != nil {
				return err
			}
		}
		time.Sleep(delay / 2)
	}
	return nil
}

// ActiveModifiers returns the modifier keys which are currently held down.
func (c *Client) ActiveModifiers() ([]xproto.Keycode, error) {
	km, err := c.getKeymap()
	if err != nil {
		return nil, err
	}
	reply, err := xproto.QueryKeymap(c.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("query keymap: %w", err)
	}
	return km.activeModifiers(reply.Keys), nil
}

// ClearModifiers releases the given modifier keys.
func (c *Client) ClearModifiers(win xproto.Window, codes []xproto.Keycode) error {
	for _, code := range codes {
		if err := c.sendKeyEvent(code, StateUp, win, 0); err != nil {
			return err
		}
	}
	return nil
}

// SetModifiers presses the given modifier keys.
func (c *Client) SetModifiers(win xproto.Window, codes []xproto.Keycode) error {
	km, err := c.getKeymap()
	if err != nil {
		return err
	}
	var state uint16
	for _, code := range codes {
		if err := c.sendKeyEvent(code, StateDown, win, state); err != nil {
			return err
		}
		state |= km.modifierMask(code)
	}
	return nil
}

// resolve finds the key which produces the given keysym, binding it to a
// scratch keycode if the keymap has no key for it.
func (c *Client) resolve(km *keymap, ks keysym.Keysym) (key, error) {
	c.mu.Lock()
	code, shift, ok := km.lookup(ks)
	c.mu.Unlock()
	if ok {
		return key{code: code, shift: shift}, nil
	}
	c.mu.Lock()
	code, ok = km.scratch()
	c.mu.Unlock()
	if !ok {
		return key{}, fmt.Errorf("no keycode for keysym 0x%x and no free keycode to bind it to", uint32(ks))
	}
	if err := c.remap(km, code, ks); err != nil {
		return key{}, err
	}
	c.log.Debug("Bound keysym to scratch keycode", "keysym", fmt.Sprintf("0x%x", uint32(ks)), "keycode", code)
	return key{code: code, scratch: true}, nil
}

// typeKey presses and releases a single key, holding Shift around it if
// needed.
func (c *Client) typeKey(km *keymap, win xproto.Window, k key, delay time.Duration) error {
	var state uint16
	shift, hasShiftKey := km.shiftKey()
	if k.shift && hasShiftKey {
		if err := c.sendKeyEvent(shift, StateDown, win, 0); err != nil {
			return err
		}
		state = xproto.ModMaskShift
	}
	if err := c.sendKeyEvent(k.code, StateDown, win, state); err != nil {
		return err
	}
	time.Sleep(delay / 2)
	if err := c.sendKeyEvent(k.code, StateUp, win, state); err != nil {
		return err
	}
	if k.shift && hasShiftKey {
		if err := c.sendKeyEvent(shift, StateUp, win, state); err != nil {
			return err
		}
	}
	time.Sleep(delay / 2)
	return nil
}

// sendKeyEvent sends a key event. Events for CurrentWindow are synthesized
// with XTEST; events for any other window are sent to it directly with the
// given modifier state.
func (c *Client) sendKeyEvent(code xproto.Keycode, state InputState, win xproto.Window, mods uint16) error {
	if win == CurrentWindow {
		typ := byte(xproto.KeyRelease)
		if state == StateDown {
			typ = xproto.KeyPress
		}
		return xtest.FakeInputChecked(
			c.conn,
			typ,
			byte(code),
			0,
			c.root,
			0,
			0,
			0,
		).Check()
	}

	// Key events sent to GLFW windows are dropped unless their timestamp is
	// greater than that of the last event, and a release followed by a press
	// of the same key needs a difference of at least 20ms. Keep timestamps
	// a little ahead of the server time so user input can't overtake ours.
	//
	// Reference:
	// https://github.com/glfw/glfw/blob/3.3.8/src/x11_window.c#L1260
	// https://github.com/glfw/glfw/blob/3.3.8/src/x11_window.c#L1359
	ts := c.nextKeyTime(win, code)

	evt := xproto.KeyPressEvent{
		Detail:     code,
		Time:       xproto.Timestamp(ts),
		Root:       c.root,
		Event:      win,
		Child:      win,
		State:      mods,
		SameScreen: true,
	}
	if state == StateDown {
		return c.sendEvent(evt, maskKeyPress, win)
	}
	return c.sendEvent(xproto.KeyReleaseEvent(evt), maskKeyPress, win)
}

// releaseScratch unbinds every scratch keycode among keys. Failures are logged
// and do not stop the remaining keycodes from being released.
func (c *Client) releaseScratch(keys []key, unbind func(xproto.Keycode) error) {
	for _, k := range keys {
		if !k.scratch {
			continue
		}
		if err := unbind(k.code); err != nil {
			c.log.Warn("Failed to unbind scratch keycode", "code", k.code, "err", err)
		}
	}
}

// nextKeyTime returns the timestamp for the next key event sent to win and
// records it as the last one.
func (c *Client) nextKeyTime(win xproto.Window, code xproto.Keycode) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := c.GetCurrentTime() + 15
	if last, ok := c.lastKeyState[win]; ok {
		if last.time >= ts {
			ts = last.time + 1
		}
		if last.code == code && ts < last.time+20 {
			ts = last.time + 20
		}
	}
	c.lastKeyState[win] = keyState{ts, code}
	return ts
}

func hasShift(keys []key) bool {
	for _, k := range keys {
		if k.shift {
			return true
		}
	}
	return false
}
