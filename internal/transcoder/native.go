package transcoder

// CodePageGBK is the Windows code page number for GBK.
const CodePageGBK = 936

// GBKIsNative reports whether the platform's legacy code page is GBK.
func GBKIsNative() bool {
	cp, ok := NativeCodePage()
	return ok && cp == CodePageGBK
}
