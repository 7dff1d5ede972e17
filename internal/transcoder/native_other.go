//go:build !windows

package transcoder

// NativeCodePage returns the active ANSI code page. Only Windows has one.
func NativeCodePage() (uint32, bool) {
	return 0, false
}
