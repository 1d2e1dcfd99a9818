package utils

import "io"

// Close closes c and ignores any error. For response bodies and other
// best-effort cleanup in defer.
func Close(c io.Closer) {
	_ = c.Close()
}
