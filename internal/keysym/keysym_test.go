package keysym

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromName(t *testing.T) {
	tests := map[string]Keysym{
		"Return":    Return,
		"semicolon": 0x003b,
		"l":         'l',
		"L":         'L',
		"alt":       AltL,
		"Alt":       AltL,
		"CTRL":      ControlL,
		"Alt_L":     AltL,
		"F1":        F1,
		"F12":       0xffc9,
		"F35":       0xffe0,
		"0xff0d":    Return,
		"é":         0xe9,
		"€":         0x010020ac,
		"Page_Up":   PageUp,
		"Prior":     PageUp,
	}
	for name, want := range tests {
		got, err := FromName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestFromNameUnknown(t *testing.T) {
	for _, name := range []string{"NotAKey", "0xzz", "F36", "alt_l"} {
		_, err := FromName(name)
		assert.ErrorIs(t, err, ErrUnknownName, name)
	}
}

func TestFromRune(t *testing.T) {
	tests := map[rune]Keysym{
		'a':    'a',
		' ':    0x20,
		'\n':   Return,
		'\r':   Return,
		'\t':   Tab,
		'\b':   BackSpace,
		0x1b:   Escape,
		'ü':    0xfc,
		'Ω':    0x010003a9,
		'😀': 0x0101f600,
	}
	for r, want := range tests {
		got, err := FromRune(r)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%q", r)
	}

	_, err := FromRune(0x07)
	assert.Error(t, err)
}

func TestParseSequence(t *testing.T) {
	got, err := ParseSequence("ctrl+alt+Delete")
	require.NoError(t, err)
	assert.Equal(t, []Keysym{ControlL, AltL, Delete}, got)

	got, err = ParseSequence("shift+plus")
	require.NoError(t, err)
	assert.Equal(t, []Keysym{ShiftL, 0x2b}, got)

	got, err = ParseSequence("a")
	require.NoError(t, err)
	assert.Equal(t, []Keysym{'a'}, got)
}

func TestParseSequenceInvalid(t *testing.T) {
	_, err := ParseSequence("")
	assert.ErrorIs(t, err, ErrEmptySequence)

	for _, seq := range []string{"+", "alt+", "+a", "ctrl++a"} {
		_, err := ParseSequence(seq)
		assert.Error(t, err, seq)
	}

	_, err = ParseSequence("ctrl+bogus")
	assert.ErrorIs(t, err, ErrUnknownName)
}

func TestLower(t *testing.T) {
	assert.Equal(t, Keysym('a'), Lower('A'))
	assert.Equal(t, Keysym('a'), Lower('a'))
	assert.Equal(t, Keysym(0xe9), Lower(0xc9))
	assert.Equal(t, Keysym(0xd7), Lower(0xd7))
	assert.Equal(t, Return, Lower(Return))

	assert.True(t, IsUpper('Q'))
	assert.False(t, IsUpper('q'))
	assert.False(t, IsUpper('1'))
}
