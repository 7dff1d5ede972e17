package transcoder

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts data held in encoding e to a Go string. A leading UTF-8
// BOM is dropped. Malformed input decodes to U+FFFD rather than failing.
func Decode(r Registry, e Encoding, data []byte) (string, error) {
	codec, err := r.Codec(e)
	if err != nil {
		return "", err
	}
	if e == EncodingUTF8 {
		data = bytes.TrimPrefix(data, utf8BOM)
	}

	reader := transform.NewReader(bytes.NewReader(data), codec.NewDecoder())
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// StreamDecode provides a reader that decodes from e to UTF-8 on the fly.
func StreamDecode(r Registry, e Encoding, src io.Reader) (io.Reader, error) {
	codec, err := r.Codec(e)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(src, codec.NewDecoder()), nil
}

// Encode converts text to encoding e. With replace set, characters e cannot
// hold become the codec's substitute byte; otherwise the first such
// character fails the call with an *UnrepresentableError.
func Encode(r Registry, e Encoding, text string, replace bool) ([]byte, error) {
	codec, err := r.Codec(e)
	if err != nil {
		return nil, err
	}

	enc := codec.NewEncoder()
	if replace {
		enc = encoding.ReplaceUnsupported(enc)
	}

	out, n, err := transform.String(enc, text)
	if err != nil {
		if errors.Is(err, transform.ErrShortSrc) || errors.Is(err, transform.ErrShortDst) {
			return nil, err
		}
		bad := utf8.RuneError
		if n < len(text) {
			bad, _ = utf8.DecodeRuneInString(text[n:])
		}
		return nil, &UnrepresentableError{Rune: bad, Offset: n, Encoding: e.String()}
	}
	return []byte(out), nil
}

// Transcode decodes data from src and re-encodes it as dst.
func Transcode(r Registry, src, dst Encoding, data []byte, replace bool) ([]byte, error) {
	text, err := Decode(r, src, data)
	if err != nil {
		return nil, err
	}
	return Encode(r, dst, text, replace)
}
