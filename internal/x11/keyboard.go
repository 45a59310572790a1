package x11

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/woofdoggo/goxdo/internal/keysym"
)

// Modifier indices in the modifier mapping.
const (
	modShift = iota
	modLock
	modControl
	mod1
	mod2
	mod3
	mod4
	mod5
	modCount
)

// keymap is a snapshot of the server's keyboard and modifier mappings.
type keymap struct {
	min  xproto.Keycode
	max  xproto.Keycode
	per  int             // Keysyms per keycode
	syms []xproto.Keysym // (max-min+1)*per keysyms, one row per keycode

	mods [modCount][]xproto.Keycode // Keycodes bound to each modifier
}

// symsFor returns the row of keysyms bound to the given keycode.
func (k *keymap) symsFor(code xproto.Keycode) []xproto.Keysym {
	start := int(code-k.min) * k.per
	return k.syms[start : start+k.per]
}

// lookup finds a keycode which produces the given keysym, and whether Shift
// has to be held to produce it. Only the first group is considered.
func (k *keymap) lookup(ks keysym.Keysym) (xproto.Keycode, bool, bool) {
	lower := keysym.Lower(ks)
	for code := int(k.min); code <= int(k.max); code++ {
		row := k.symsFor(xproto.Keycode(code))
		if keysym.Keysym(row[0]) == ks {
			return xproto.Keycode(code), false, true
		}
		if len(row) > 1 && keysym.Keysym(row[1]) == ks {
			return xproto.Keycode(code), true, true
		}
		// Letters are often listed only in lowercase, with the uppercase
		// form implied by Shift.
		if lower != ks && keysym.Keysym(row[0]) == lower {
			if len(row) == 1 || row[1] == xproto.Keysym(keysym.NoSymbol) {
				return xproto.Keycode(code), true, true
			}
		}
	}
	return 0, false, false
}

// scratch returns a keycode with no keysyms bound to it, which can be
// temporarily remapped to type keysyms missing from the keymap.
func (k *keymap) scratch() (xproto.Keycode, bool) {
	for code := int(k.max); code >= int(k.min); code-- {
		empty := true
		for _, sym := range k.symsFor(xproto.Keycode(code)) {
			if sym != xproto.Keysym(keysym.NoSymbol) {
				empty = false
				break
			}
		}
		if empty {
			return xproto.Keycode(code), true
		}
	}
	return 0, false
}

// modifierMask returns the modifier state bits that holding the given keycode
// sets.
func (k *keymap) modifierMask(code xproto.Keycode) uint16 {
	var mask uint16
	for i, codes := range k.mods {
		for _, c := range codes {
			if c == code {
				mask |= 1 << i
			}
		}
	}
	return mask
}

// shiftKey returns a keycode bound to Shift.
func (k *keymap) shiftKey() (xproto.Keycode, bool) {
	for _, code := range k.mods[modShift] {
		if code != 0 {
			return code, true
		}
	}
	return 0, false
}

// activeModifiers returns the modifier keycodes which are pressed according
// to the given key bitmap, as returned by QueryKeymap.
func (k *keymap) activeModifiers(pressed []byte) []xproto.Keycode {
	var active []xproto.Keycode
	seen := make(map[xproto.Keycode]bool)
	for _, codes := range k.mods {
		for _, code := range codes {
			if code == 0 || seen[code] {
				continue
			}
			idx := int(code) / 8
			if idx < len(pressed) && pressed[idx]&(1<<(code%8)) != 0 {
				active = append(active, code)
				seen[code] = true
			}
		}
	}
	return active
}

// getKeymap returns the cached keymap, fetching it from the server if it is
// missing or was invalidated by a MappingNotify event.
func (c *Client) getKeymap() (*keymap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keymap != nil {
		return c.keymap, nil
	}
	km, err := c.fetchKeymap()
	if err != nil {
		return nil, err
	}
	c.keymap = km
	return km, nil
}

// fetchKeymap requests the keyboard and modifier mappings from the server.
func (c *Client) fetchKeymap() (*keymap, error) {
	setup := xproto.Setup(c.conn)
	count := byte(int(setup.MaxKeycode) - int(setup.MinKeycode) + 1)
	kb, err := xproto.GetKeyboardMapping(c.conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}
	mm, err := xproto.GetModifierMapping(c.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("get modifier mapping: %w", err)
	}
	km := &keymap{
		min:  setup.MinKeycode,
		max:  setup.MaxKeycode,
		per:  int(kb.KeysymsPerKeycode),
		syms: kb.Keysyms,
	}
	per := int(mm.KeycodesPerModifier)
	for i := 0; i < modCount; i++ {
		km.mods[i] = mm.Keycodes[i*per : (i+1)*per]
	}
	return km, nil
}

// remap binds a keysym to the given keycode, or unbinds it if ks is
// NoSymbol. The cached keymap is updated in place.
func (c *Client) remap(km *keymap, code xproto.Keycode, ks keysym.Keysym) error {
	row := make([]xproto.Keysym, km.per)
	if ks != keysym.NoSymbol {
		row[0] = xproto.Keysym(ks)
		if km.per > 1 {
			row[1] = xproto.Keysym(ks)
		}
	}
	err := xproto.ChangeKeyboardMappingChecked(
		c.conn,
		1,
		code,
		byte(km.per),
		row,
	).Check()
	if err != nil {
		return fmt.Errorf("change keyboard mapping: %w", err)
	}
	c.mu.Lock()
	copy(km.symsFor(code), row)
	c.mu.Unlock()
	return nil
}
