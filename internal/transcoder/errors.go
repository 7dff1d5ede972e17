package transcoder

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedEncoding indicates a name outside the encodings gbkit handles.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrEncodingUnavailable indicates the registry has no codec for a known encoding.
	ErrEncodingUnavailable = errors.New("encoding unavailable")

	// ErrUnrepresentable indicates text holding a character the target encoding cannot express.
	ErrUnrepresentable = errors.New("character not representable")
)

// UnrepresentableError reports the first character an encoder rejected.
type UnrepresentableError struct {
	Rune     rune
	Offset   int
	Encoding string
}

func (e *UnrepresentableError) Error() string {
	return fmt.Sprintf("%v: U+%04X at byte %d has no %s form", ErrUnrepresentable, e.Rune, e.Offset, e.Encoding)
}

func (e *UnrepresentableError) Unwrap() error {
	return ErrUnrepresentable
}
