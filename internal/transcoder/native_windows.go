//go:build windows

package transcoder

import "golang.org/x/sys/windows"

// NativeCodePage returns the active ANSI code page.
func NativeCodePage() (uint32, bool) {
	return windows.GetACP(), true
}
