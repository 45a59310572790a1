// Package x11 implements keyboard input synthesis and window focus control
// directly over the X11 protocol.
package x11

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
)

// Atom names
const (
	netActiveWindow   = "_NET_ACTIVE_WINDOW"
	netCurrentDesktop = "_NET_CURRENT_DESKTOP"
	netWmDesktop      = "_NET_WM_DESKTOP"
	wmName            = "WM_NAME"
)

// Event masks
const (
	maskKeyPress uint32 = xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease

	maskProperty uint32 = xproto.EventMaskPropertyChange

	maskSubstructure uint32 = xproto.EventMaskSubstructureNotify |
		xproto.EventMaskSubstructureRedirect
)

// Error types
var (
	ErrConnectionDied = errors.New("connection with X server closed")
	errInvalidLength  = errors.New("invalid response length")
)

// Client maintains a connection with the X server and sends fake inputs and
// focus requests over it.
type Client struct {
	atoms atomCache     // Atom cache
	conn  *xgb.Conn     // The X server connection
	root  xproto.Window // Root window
	log   *log.Logger

	// The offset between the system clock and X server time, in milliseconds.
	timeOffset uint64

	mu sync.Mutex

	// Information about the last key event sent to each window. Used to keep
	// timestamps increasing so that GLFW does not drop events.
	lastKeyState map[xproto.Window]keyState

	keymap *keymap // Cached keyboard mapping, nil when stale
}

// keyState contains state about the last key event sent to a given window.
type keyState struct {
	time uint32
	code xproto.Keycode
}

// rawEvent represents an event which is to be sent to another window.
type rawEvent interface {
	Bytes() []byte
}

// NewClient connects to the given display. An empty display uses $DISPLAY.
func NewClient(display string, logger *log.Logger) (*Client, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init XTEST: %w", err)
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	offset, err := approximateOffset(conn, root)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("get server time: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	c := &Client{
		atoms: atomCache{
			conn: conn,
			data: make(map[string]xproto.Atom),
		},
		conn:         conn,
		root:         root,
		log:          logger,
		timeOffset:   offset,
		lastKeyState: make(map[xproto.Window]keyState),
	}
	go c.poll()
	return c, nil
}

// Close closes the connection to the X server.
func (c *Client) Close() {
	c.conn.Close()
}

// GetCurrentTime returns the approximate current X server time.
func (c *Client) GetCurrentTime() uint32 {
	return uint32(time.Now().UnixMilli() - int64(c.timeOffset))
}

// GetRootWindow returns the ID of the root window.
func (c *Client) GetRootWindow() xproto.Window {
	return c.root
}

// Version returns a description of the X server the client is connected to.
func (c *Client) Version() string {
	setup := xproto.Setup(c.conn)
	return fmt.Sprintf(
		"x11 (%s release %d, protocol %d.%d)",
		setup.Vendor,
		setup.ReleaseNumber,
		setup.ProtocolMajorVersion,
		setup.ProtocolMinorVersion,
	)
}

// sendEvent sends an event to another window.
func (c *Client) sendEvent(evt rawEvent, mask uint32, win xproto.Window) error {
	return xproto.SendEventChecked(
		c.conn,
		true,
		win,
		mask,
		string(evt.Bytes()),
	).Check()
}

// poll drains events from the connection until it is closed. Nothing selects
// input events, but the server sends MappingNotify to every client and those
// invalidate the cached keyboard mapping.
func (c *Client) poll() {
	for {
		evt, err := c.conn.WaitForEvent()
		if evt == nil && err == nil {
			c.log.Debug("X connection closed", "err", ErrConnectionDied)
			return
		}
		if err != nil {
			c.log.Warn("X error", "err", err)
			continue
		}
		if _, ok := evt.(xproto.MappingNotifyEvent); ok {
			c.mu.Lock()
			c.keymap = nil
			c.mu.Unlock()
		}
	}
}

// approximateOffset attempts to find the offset between the system clock and
// the X server time.
func approximateOffset(c *xgb.Conn, root xproto.Window) (uint64, error) {
	reply, err := xproto.InternAtom(c, false, uint16(len(wmName)), wmName).Reply()
	if err != nil {
		return 0, fmt.Errorf("get WM_NAME atom: %w", err)
	}
	atom := reply.Atom

	// Listen for property changes on the root window only while measuring.
	err = xproto.ChangeWindowAttributesChecked(
		c,
		root,
		xproto.CwEventMask,
		[]uint32{maskProperty},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("select root events: %w", err)
	}
	defer xproto.ChangeWindowAttributes(c, root, xproto.CwEventMask, []uint32{xproto.EventMaskNoEvent})

	// Try to get the time offset 10 times and take the average.
	offsetSum := uint64(0)
	for i := 0; i < 10; i += 1 {
		// Send a no-op property change request and take note of the timestamp
		// sent back by the X server. This method is recommended by the ICCCM
		// document:
		// https://x.org/releases/X11R7.6/doc/xorg-docs/specs/ICCCM/icccm.html#acquiring_selection_ownership
		send := time.Now().UnixMilli()
		xproto.ChangeProperty(
			c,
			xproto.PropModeAppend,
			root,
			atom,
			xproto.AtomString,
			8,
			0,
			[]byte{},
		)
		var evt xproto.PropertyNotifyEvent
		for {
			rawEvt, err := c.WaitForEvent()
			if rawEvt == nil && err == nil {
				return 0, ErrConnectionDied
			} else if err != nil {
				return 0, fmt.Errorf("receive response: %w", err)
			}
			// Other clients may change root properties while we wait.
			notify, ok := rawEvt.(xproto.PropertyNotifyEvent)
			if ok && notify.Atom == atom {
				evt = notify
				break
			}
		}
		offsetSum += uint64(send - int64(evt.Time))
	}
	return offsetSum / 10, nil
}
