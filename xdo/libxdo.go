//go:build cgo && linux

package xdo

/*
#cgo LDFLAGS: -lxdo

#include <stdlib.h>
#include <xdo.h>
*/
import "C"
import (
	"errors"
	"unsafe"
)

const libxdoAvailable = true

// libxdo is the cgo backend. Each method is a direct call into libxdo.
type libxdo struct {
	p *C.xdo_t
}

// libxdoModifiers is a charcodemap_t array allocated by
// xdo_get_active_modifiers. It must be released with free(3).
type libxdoModifiers struct {
	keys *C.charcodemap_t
	n    C.int
}

func (m *libxdoModifiers) Len() int {
	return int(m.n)
}

// LibraryVersion returns the version of the linked libxdo.
func LibraryVersion() string {
	return C.GoString(C.xdo_version())
}

func newLibxdo(display string) (*libxdo, error) {
	var cdisplay *C.char
	if display != "" {
		cdisplay = C.CString(display)
		defer C.free(unsafe.Pointer(cdisplay))
	}
	p := C.xdo_new(cdisplay)
	if p == nil {
		return nil, errors.New("xdo_new returned NULL")
	}
	return &libxdo{p: p}, nil
}

func (x *libxdo) close() {
	if x.p != nil {
		C.xdo_free(x.p)
		x.p = nil
	}
}

func (x *libxdo) version() string {
	return "libxdo " + LibraryVersion()
}

func (x *libxdo) enterTextWindow(win Window, text string, delay uint32) error {
	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))
	code := C.xdo_enter_text_window(x.p, C.Window(win), ctext, C.useconds_t(delay))
	return check(opEnterText, int(code))
}

func (x *libxdo) sendKeysequenceWindow(win Window, sequence string, delay uint32) error {
	cseq := C.CString(sequence)
	defer C.free(unsafe.Pointer(cseq))
	code := C.xdo_send_keysequence_window(x.p, C.Window(win), cseq, C.useconds_t(delay))
	return check(opSendKeysequence, int(code))
}

func (x *libxdo) focusWindow(win Window) error {
	return check(opFocusWindow, int(C.xdo_focus_window(x.p, C.Window(win))))
}

func (x *libxdo) activateWindow(win Window) error {
	return check(opActivateWindow, int(C.xdo_activate_window(x.p, C.Window(win))))
}

func (x *libxdo) getFocusedWindow() (Window, error) {
	var win C.Window
	if err := check(opGetFocusedWindow, int(C.xdo_get_focused_window(x.p, &win))); err != nil {
		return 0, err
	}
	return Window(win), nil
}

func (x *libxdo) waitForWindowFocus(win Window, wantFocus bool) error {
	want := C.int(0)
	if wantFocus {
		want = 1
	}
	return check(opWaitForWindowFocus, int(C.xdo_wait_for_window_focus(x.p, C.Window(win), want)))
}

func (x *libxdo) getActiveModifiers() (modifiers, error) {
	mods := &libxdoModifiers{}
	code := C.xdo_get_active_modifiers(x.p, &mods.keys, &mods.n)
	if err := check(opGetActiveModifiers, int(code)); err != nil {
		if mods.keys != nil {
			C.free(unsafe.Pointer(mods.keys))
		}
		return nil, err
	}
	return mods, nil
}

func (x *libxdo) clearActiveModifiers(win Window, mods modifiers) error {
	m := mods.(*libxdoModifiers)
	return check(opClearActiveModifiers, int(C.xdo_clear_active_modifiers(x.p, C.Window(win), m.keys, m.n)))
}

func (x *libxdo) setActiveModifiers(win Window, mods modifiers) error {
	m := mods.(*libxdoModifiers)
	return check(opSetActiveModifiers, int(C.xdo_set_active_modifiers(x.p, C.Window(win), m.keys, m.n)))
}

func (x *libxdo) freeModifiers(mods modifiers) {
	m := mods.(*libxdoModifiers)
	if m.keys != nil {
		C.free(unsafe.Pointer(m.keys))
		m.keys = nil
		m.n = 0
	}
}
