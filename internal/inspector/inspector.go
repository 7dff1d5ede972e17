// Package inspector reports how a single character is stored in UTF-8,
// UTF-16 and as a raw Unicode scalar value.
package inspector

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// EncodingInfo is the hex rendering of one character in each form.
type EncodingInfo struct {
	UTF8Hex    string `json:"utf8"`
	UTF16Hex   string `json:"utf16"`
	UnicodeHex string `json:"unicode"`
}

// CharInfo pairs a character of inspected text with its encodings.
type CharInfo struct {
	Char string `json:"char"`
	Rune rune   `json:"-"`
	EncodingInfo
}

// Inspect returns the encodings of r. Values that are not Unicode scalars
// are reported as U+FFFD.
func Inspect(r rune) EncodingInfo {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return EncodingInfo{
		UTF8Hex:    utf8Hex(r),
		UTF16Hex:   utf16Hex(r),
		UnicodeHex: fmt.Sprintf("%04X", r),
	}
}

func utf8Hex(r rune) string {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	parts := make([]string, n)
	for i, b := range buf[:n] {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func utf16Hex(r rune) string {
	units := utf16.Encode([]rune{r})
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("%04X", u)
	}
	return strings.Join(parts, " ")
}

// InspectString inspects every character of s in order. Bytes that are not
// valid UTF-8 show up as U+FFFD.
func InspectString(s string) []CharInfo {
	seen := make(map[rune]EncodingInfo)
	out := make([]CharInfo, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		info, ok := seen[r]
		if !ok {
			info = Inspect(r)
			seen[r] = info
		}
		out = append(out, CharInfo{Char: string(r), Rune: r, EncodingInfo: info})
	}
	return out
}

// Tooltip formats c as the multi-line hover text shown next to a character.
func Tooltip(c CharInfo) string {
	return fmt.Sprintf("Char: %s\nUTF-8: %s\nUTF-16: %s\nUnicode: U+%s",
		c.Char, c.UTF8Hex, c.UTF16Hex, c.UnicodeHex)
}
