package xdo

// Native status codes.
const (
	statusSuccess = 0
	statusError   = 1
)

// Names of the native entry points. Both backends report failures under these
// names so that errors look the same regardless of which one is in use.
const (
	opNew                  = "xdo_new"
	opFree                 = "xdo_free"
	opVersion              = "xdo_version"
	opEnterText            = "xdo_enter_text_window"
	opSendKeysequence      = "xdo_send_keysequence_window"
	opFocusWindow          = "xdo_focus_window"
	opActivateWindow       = "xdo_activate_window"
	opGetFocusedWindow     = "xdo_get_focused_window"
	opWaitForWindowFocus   = "xdo_wait_for_window_focus"
	opGetActiveModifiers   = "xdo_get_active_modifiers"
	opClearActiveModifiers = "xdo_clear_active_modifiers"
	opSetActiveModifiers   = "xdo_set_active_modifiers"
	opFreeModifiers        = "free"
)

// modifiers is a snapshot of the modifier keys which were held down when it
// was taken. It is allocated by the backend and must be handed back to
// backend.freeModifiers exactly once.
type modifiers interface {
	Len() int
}

// backend is the native call table. Every method other than close, version
// and freeModifiers corresponds to one status-returning native call and
// returns a non-nil error (normally an *Error) when that call fails.
type backend interface {
	close()
	version() string

	enterTextWindow(win Window, text string, delay uint32) error
	sendKeysequenceWindow(win Window, sequence string, delay uint32) error

	focusWindow(win Window) error
	activateWindow(win Window) error
	getFocusedWindow() (Window, error)
	waitForWindowFocus(win Window, wantFocus bool) error

	getActiveModifiers() (modifiers, error)
	clearActiveModifiers(win Window, mods modifiers) error
	setActiveModifiers(win Window, mods modifiers) error
	freeModifiers(mods modifiers)
}
