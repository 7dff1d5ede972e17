package transcoder

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies one of the text encodings gbkit converts between.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingUTF8
	EncodingGBK
)

// String returns the canonical display name, which is also the suffix used
// for converted file names.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingGBK:
		return "GBK"
	default:
		return "Unknown"
	}
}

// Supported lists the encodings in the order front ends should offer them.
func Supported() []Encoding {
	return []Encoding{EncodingUTF8, EncodingGBK}
}

// ParseEncoding maps a user-supplied name to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTF-8", "UTF8":
		return EncodingUTF8, nil
	case "GBK", "CP936":
		return EncodingGBK, nil
	default:
		return EncodingUnknown, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}

// Complement returns the encoding assumed for an untagged source when the
// caller asks for e: a file headed for GBK is taken to be UTF-8 and the
// other way round.
func Complement(e Encoding) Encoding {
	switch e {
	case EncodingUTF8:
		return EncodingGBK
	case EncodingGBK:
		return EncodingUTF8
	default:
		return EncodingUnknown
	}
}

// Registry answers which codecs are available at run time.
type Registry interface {
	SupportsEncoding(e Encoding) bool
	Codec(e Encoding) (encoding.Encoding, error)
}

type codecRegistry struct {
	codecs map[Encoding]encoding.Encoding
}

var allCodecs = map[Encoding]encoding.Encoding{
	EncodingUTF8: unicode.UTF8,
	EncodingGBK:  simplifiedchinese.GBK,
}

// DefaultRegistry holds every codec gbkit knows. The codecs are pure Go, so
// it is the same on every platform.
var DefaultRegistry Registry = NewRegistry(Supported()...)

// NewRegistry returns a registry limited to encs.
func NewRegistry(encs ...Encoding) Registry {
	r := &codecRegistry{codecs: make(map[Encoding]encoding.Encoding, len(encs))}
	for _, e := range encs {
		if c, ok := allCodecs[e]; ok {
			r.codecs[e] = c
		}
	}
	return r
}

func (r *codecRegistry) SupportsEncoding(e Encoding) bool {
	_, ok := r.codecs[e]
	return ok
}

func (r *codecRegistry) Codec(e Encoding) (encoding.Encoding, error) {
	c, ok := r.codecs[e]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEncodingUnavailable, e)
	}
	return c, nil
}
