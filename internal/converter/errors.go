package converter

import (
	"errors"
	"strings"

	"github.com/greatbody/gbkit/internal/transcoder"
)

var (
	// ErrFileOpen indicates the source file is missing or unreadable.
	ErrFileOpen = errors.New("cannot open source file")

	// ErrFileWrite indicates the output file could not be created or written.
	ErrFileWrite = errors.New("cannot write output file")

	// ErrUnsupportedEncoding indicates an encoding name outside UTF-8 and GBK.
	ErrUnsupportedEncoding = transcoder.ErrUnsupportedEncoding

	// ErrEncodingUnavailable indicates the codec registry lacks the encoding.
	ErrEncodingUnavailable = transcoder.ErrEncodingUnavailable

	// ErrUnrepresentable indicates the text holds a character the target cannot store.
	ErrUnrepresentable = transcoder.ErrUnrepresentable
)

// Error describes a failed conversion. Kind is one of the package's Err
// values; Path or Encoding names what the user should be told about.
type Error struct {
	Kind     error
	Path     string
	Encoding string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	// A cause that already wraps the kind names the encoding itself.
	if e.Err != nil && errors.Is(e.Err, e.Kind) {
		if e.Path != "" {
			b.WriteString(e.Path)
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
		return b.String()
	}

	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if e.Encoding != "" {
		b.WriteString(" (")
		b.WriteString(e.Encoding)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
