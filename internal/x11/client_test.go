package x11

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveClient connects to the display in $DISPLAY. These tests synthesize real
// input and are skipped unless GOXDO_TEST_X11 is set, ideally against a
// throwaway server such as Xvfb.
func liveClient(t *testing.T) *Client {
	t.Helper()
	if os.Getenv("GOXDO_TEST_X11") == "" {
		t.Skip("GOXDO_TEST_X11 not set")
	}
	c, err := NewClient("", log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewClientBadDisplay(t *testing.T) {
	_, err := NewClient(":987", log.New(io.Discard))
	assert.Error(t, err)
}

func TestLiveFocusRoundTrip(t *testing.T) {
	c := liveClient(t)
	win, err := xproto.NewWindowId(c.conn)
	require.NoError(t, err)
	screen := xproto.Setup(c.conn).DefaultScreen(c.conn)
	require.NoError(t, xproto.CreateWindowChecked(
		c.conn, screen.RootDepth, win, c.GetRootWindow(),
		0, 0, 64, 64, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, 0, nil,
	).Check())
	defer xproto.DestroyWindow(c.conn, win)
	require.NoError(t, xproto.MapWindowChecked(c.conn, win).Check())

	// The window may not be viewable immediately after mapping.
	require.Eventually(t, func() bool {
		return c.FocusWindow(win) == nil
	}, 2*time.Second, 50*time.Millisecond)

	got, err := c.GetFocusedWindow()
	require.NoError(t, err)
	assert.Equal(t, win, got)
	assert.NoError(t, c.WaitForFocus(win, true))
}

func TestLiveEnterText(t *testing.T) {
	c := liveClient(t)
	assert.NoError(t, c.EnterText(CurrentWindow, "Hi €", time.Millisecond))
	assert.NoError(t, c.SendSequence(CurrentWindow, "shift+a", time.Millisecond))
}

func TestLiveModifiers(t *testing.T) {
	c := liveClient(t)
	mods, err := c.ActiveModifiers()
	require.NoError(t, err)
	assert.NoError(t, c.ClearModifiers(CurrentWindow, mods))
	assert.NoError(t, c.SetModifiers(CurrentWindow, mods))
	assert.NotEmpty(t, c.Version())
	assert.NotZero(t, c.GetCurrentTime())
}
