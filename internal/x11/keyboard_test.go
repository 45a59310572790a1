package x11

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/woofdoggo/goxdo/internal/keysym"
)

// testKeymap returns a small keymap:
//
//	8   a        NoSymbol
//	9   1        exclam
//	10  Shift_L  NoSymbol
//	11  Alt_L    Meta_L
//	12  NoSymbol NoSymbol
func testKeymap() *keymap {
	ns := xproto.Keysym(keysym.NoSymbol)
	km := &keymap{
		min: 8,
		max: 12,
		per: 2,
		syms: []xproto.Keysym{
			'a', ns,
			'1', '!',
			xproto.Keysym(keysym.ShiftL), ns,
			xproto.Keysym(keysym.AltL), xproto.Keysym(keysym.MetaL),
			ns, ns,
		},
	}
	for i := range km.mods {
		km.mods[i] = []xproto.Keycode{0, 0}
	}
	km.mods[modShift] = []xproto.Keycode{10, 0}
	km.mods[mod1] = []xproto.Keycode{11, 0}
	return km
}

func TestKeymapLookup(t *testing.T) {
	km := testKeymap()
	tests := []struct {
		ks    keysym.Keysym
		code  xproto.Keycode
		shift bool
	}{
		{'a', 8, false},
		{'A', 8, true},
		{'1', 9, false},
		{'!', 9, true},
		{keysym.AltL, 11, false},
		{keysym.MetaL, 11, true},
	}
	for _, tt := range tests {
		code, shift, ok := km.lookup(tt.ks)
		assert.True(t, ok, "keysym %#x", tt.ks)
		assert.Equal(t, tt.code, code, "keysym %#x", tt.ks)
		assert.Equal(t, tt.shift, shift, "keysym %#x", tt.ks)
	}

	_, _, ok := km.lookup('z')
	assert.False(t, ok)
}

func TestKeymapScratch(t *testing.T) {
	km := testKeymap()
	code, ok := km.scratch()
	assert.True(t, ok)
	assert.Equal(t, xproto.Keycode(12), code)

	copy(km.symsFor(12), []xproto.Keysym{'z', 'Z'})
	_, ok = km.scratch()
	assert.False(t, ok)
}

func TestKeymapModifiers(t *testing.T) {
	km := testKeymap()
	assert.Equal(t, uint16(xproto.ModMaskShift), km.modifierMask(10))
	assert.Equal(t, uint16(xproto.ModMask1), km.modifierMask(11))
	assert.Zero(t, km.modifierMask(8))

	code, ok := km.shiftKey()
	assert.True(t, ok)
	assert.Equal(t, xproto.Keycode(10), code)

	km.mods[modShift] = []xproto.Keycode{0, 0}
	_, ok = km.shiftKey()
	assert.False(t, ok)
}

func TestKeymapActiveModifiers(t *testing.T) {
	km := testKeymap()
	pressed := make([]byte, 32)
	assert.Empty(t, km.activeModifiers(pressed))

	// Keycode 8 is held but is not a modifier.
	pressed[1] = 1 << (8 % 8)
	assert.Empty(t, km.activeModifiers(pressed))

	pressed[1] |= 1<<(10%8) | 1<<(11%8)
	assert.Equal(t, []xproto.Keycode{10, 11}, km.activeModifiers(pressed))
}

func TestNextKeyTime(t *testing.T) {
	// Server time starts near zero.
	c := &Client{
		timeOffset:   uint64(time.Now().UnixMilli()),
		lastKeyState: make(map[xproto.Window]keyState),
	}
	const win xproto.Window = 0x1400003

	first := c.nextKeyTime(win, 38)
	assert.GreaterOrEqual(t, first, uint32(15))

	// Same key again, such as the release after a press.
	repeat := c.nextKeyTime(win, 38)
	assert.GreaterOrEqual(t, repeat, first+20)

	other := c.nextKeyTime(win, 39)
	assert.Greater(t, other, repeat)

	// Other windows keep their own history.
	c.nextKeyTime(0x2000001, 38)
	assert.Len(t, c.lastKeyState, 2)
	assert.Equal(t, xproto.Keycode(39), c.lastKeyState[win].code)
	assert.Equal(t, other, c.lastKeyState[win].time)
}

func TestNextKeyTimeAheadOfServer(t *testing.T) {
	c := &Client{
		timeOffset:   uint64(time.Now().UnixMilli()),
		lastKeyState: make(map[xproto.Window]keyState),
	}
	const win xproto.Window = 7
	c.lastKeyState[win] = keyState{time: 1000000, code: 38}

	assert.Equal(t, uint32(1000001), c.nextKeyTime(win, 39))
	assert.Equal(t, uint32(1000002), c.nextKeyTime(win, 40))
	assert.Equal(t, uint32(1000022), c.nextKeyTime(win, 40))
}

func TestReleaseScratch(t *testing.T) {
	var buf bytes.Buffer
	c := &Client{log: log.New(&buf)}
	keys := []key{
		{code: 8},
		{code: 200, scratch: true},
		{code: 201, scratch: true},
	}

	var released []xproto.Keycode
	c.releaseScratch(keys, func(code xproto.Keycode) error {
		released = append(released, code)
		if code == 200 {
			return errors.New("bad match")
		}
		return nil
	})
	assert.Equal(t, []xproto.Keycode{200, 201}, released)
	assert.Contains(t, buf.String(), "Failed to unbind scratch keycode")
	assert.Contains(t, buf.String(), "bad match")
}
