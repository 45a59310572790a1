//go:build !cgo || !linux

package xdo

import "errors"

const libxdoAvailable = false

var errNoLibxdo = errors.New("libxdo backend requires a cgo build on linux")

// LibraryVersion returns the version of the linked libxdo, or an empty string
// when the binary was built without it.
func LibraryVersion() string {
	return ""
}

func newLibxdo(string) (backend, error) {
	return nil, errNoLibxdo
}
