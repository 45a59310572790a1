// Package keysym maps key names and runes to X11 keysyms.
package keysym

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Keysym is an X11 keysym value.
type Keysym uint32

// NoSymbol is the keysym assigned to unused keyboard mapping slots.
const NoSymbol Keysym = 0

// X11/keysymdef.h
const (
	BackSpace Keysym = 0xff08
	Tab       Keysym = 0xff09
	Linefeed  Keysym = 0xff0a
	Return    Keysym = 0xff0d
	Escape    Keysym = 0xff1b
	Delete    Keysym = 0xffff
	Home      Keysym = 0xff50
	Left      Keysym = 0xff51
	Up        Keysym = 0xff52
	Right     Keysym = 0xff53
	Down      Keysym = 0xff54
	PageUp    Keysym = 0xff55
	PageDown  Keysym = 0xff56
	End       Keysym = 0xff57
	Insert    Keysym = 0xff63
	Menu      Keysym = 0xff67
	F1        Keysym = 0xffbe
	ShiftL    Keysym = 0xffe1
	ShiftR    Keysym = 0xffe2
	ControlL  Keysym = 0xffe3
	ControlR  Keysym = 0xffe4
	CapsLock  Keysym = 0xffe5
	MetaL     Keysym = 0xffe7
	MetaR     Keysym = 0xffe8
	AltL      Keysym = 0xffe9
	AltR      Keysym = 0xffea
	SuperL    Keysym = 0xffeb
	SuperR    Keysym = 0xffec
	NumLock   Keysym = 0xff7f

	ISOLevel3Shift Keysym = 0xfe03
	ModeSwitch     Keysym = 0xff7e
)

// unicodeOffset is added to a code point to form its keysym when the code
// point has no legacy keysym.
const unicodeOffset = 0x01000000

var (
	ErrEmptySequence = errors.New("empty key sequence")
	ErrUnknownName   = errors.New("unknown keysym name")
)

// names maps keysym names (and the aliases xdotool accepts) to keysyms.
// Single printable ASCII characters are handled by FromName directly.
var names = map[string]Keysym{
	"BackSpace": BackSpace,
	"Tab":       Tab,
	"Linefeed":  Linefeed,
	"Return":    Return,
	"Escape":    Escape,
	"Delete":    Delete,
	"Home":      Home,
	"Left":      Left,
	"Up":        Up,
	"Right":     Right,
	"Down":      Down,
	"Prior":     PageUp,
	"Page_Up":   PageUp,
	"Next":      PageDown,
	"Page_Down": PageDown,
	"End":       End,
	"Insert":    Insert,
	"Menu":      Menu,
	"Shift_L":   ShiftL,
	"Shift_R":   ShiftR,
	"Control_L": ControlL,
	"Control_R": ControlR,
	"Caps_Lock": CapsLock,
	"Meta_L":    MetaL,
	"Meta_R":    MetaR,
	"Alt_L":     AltL,
	"Alt_R":     AltR,
	"Super_L":   SuperL,
	"Super_R":   SuperR,
	"Num_Lock":  NumLock,
	"Print":     0xff61,
	"Pause":     0xff13,

	"ISO_Level3_Shift": ISOLevel3Shift,
	"Mode_switch":      ModeSwitch,

	"space":        0x0020,
	"exclam":       0x0021,
	"quotedbl":     0x0022,
	"numbersign":   0x0023,
	"dollar":       0x0024,
	"percent":      0x0025,
	"ampersand":    0x0026,
	"apostrophe":   0x0027,
	"parenleft":    0x0028,
	"parenright":   0x0029,
	"asterisk":     0x002a,
	"plus":         0x002b,
	"comma":        0x002c,
	"minus":        0x002d,
	"period":       0x002e,
	"slash":        0x002f,
	"colon":        0x003a,
	"semicolon":    0x003b,
	"less":         0x003c,
	"equal":        0x003d,
	"greater":      0x003e,
	"question":     0x003f,
	"at":           0x0040,
	"bracketleft":  0x005b,
	"backslash":    0x005c,
	"bracketright": 0x005d,
	"asciicircum":  0x005e,
	"underscore":   0x005f,
	"grave":        0x0060,
	"braceleft":    0x007b,
	"bar":          0x007c,
	"braceright":   0x007d,
	"asciitilde":   0x007e,

	// X11/XF86keysym.h
	"XF86AudioLowerVolume": 0x1008ff11,
	"XF86AudioMute":        0x1008ff12,
	"XF86AudioRaiseVolume": 0x1008ff13,
	"XF86AudioPlay":        0x1008ff14,
	"XF86AudioStop":        0x1008ff15,
	"XF86AudioPrev":        0x1008ff16,
	"XF86AudioNext":        0x1008ff17,
	"XF86Back":             0x1008ff26,
	"XF86Forward":          0x1008ff27,
}

// aliases are the shorthand modifier names xdotool accepts. They are matched
// case-insensitively.
var aliases = map[string]Keysym{
	"alt":     AltL,
	"ctrl":    ControlL,
	"control": ControlL,
	"shift":   ShiftL,
	"super":   SuperL,
	"meta":    MetaL,
	"enter":   Return,
	"esc":     Escape,
}

func init() {
	for i := 1; i <= 35; i++ {
		names["F"+strconv.Itoa(i)] = F1 + Keysym(i-1)
	}
}

// FromName returns the keysym with the given name. Besides the names from
// keysymdef.h it accepts single characters, the xdotool modifier aliases, and
// raw values written as "0x..." hexadecimal numbers.
func FromName(name string) (Keysym, error) {
	if ks, ok := names[name]; ok {
		return ks, nil
	}
	if ks, ok := aliases[strings.ToLower(name)]; ok {
		return ks, nil
	}
	if r := []rune(name); len(r) == 1 {
		return FromRune(r[0])
	}
	if strings.HasPrefix(name, "0x") {
		val, err := strconv.ParseUint(name[2:], 16, 32)
		if err == nil {
			return Keysym(val), nil
		}
	}
	return NoSymbol, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// FromRune returns the keysym which types the given rune.
func FromRune(r rune) (Keysym, error) {
	switch {
	case r == '\n' || r == '\r':
		return Return, nil
	case r == '\t':
		return Tab, nil
	case r == '\b':
		return BackSpace, nil
	case r == 0x1b:
		return Escape, nil
	case r >= 0x20 && r <= 0x7e, r >= 0xa0 && r <= 0xff:
		// Latin-1 keysyms have the same value as their code points.
		return Keysym(r), nil
	case r >= 0x100 && r <= 0x10ffff:
		return Keysym(unicodeOffset + r), nil
	default:
		return NoSymbol, fmt.Errorf("rune not mapped to keysym: %q", r)
	}
}

// ParseSequence splits a key sequence such as "ctrl+alt+Delete" into its
// keysyms. A literal "+" can be sent by naming it ("plus").
func ParseSequence(seq string) ([]Keysym, error) {
	if seq == "" {
		return nil, ErrEmptySequence
	}
	parts := strings.Split(seq, "+")
	keysyms := make([]Keysym, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid key sequence %q", seq)
		}
		ks, err := FromName(part)
		if err != nil {
			return nil, fmt.Errorf("key sequence %q: %w", seq, err)
		}
		keysyms = append(keysyms, ks)
	}
	return keysyms, nil
}

// Lower returns the lowercase counterpart of a Latin-1 letter keysym, and the
// keysym unchanged otherwise. Keyboard mappings list letters as lowercase in
// their first column.
func Lower(ks Keysym) Keysym {
	switch {
	case ks >= 'A' && ks <= 'Z':
		return ks + ('a' - 'A')
	case ks >= 0xc0 && ks <= 0xde && ks != 0xd7:
		return ks + 0x20
	}
	return ks
}

// IsUpper reports whether ks is an uppercase Latin-1 letter.
func IsUpper(ks Keysym) bool {
	return Lower(ks) != ks
}
