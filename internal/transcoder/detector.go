package transcoder

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

const (
	// DetectionBufferSize is the amount of data we'll read to detect encoding.
	DetectionBufferSize = 4096
)

// ErrNoGuess indicates the statistical detector found no candidate charset.
var ErrNoGuess = errors.New("no charset guess")

// DetectEncoding tells UTF-8 from GBK. It never inspects more than
// DetectionBufferSize bytes.
func DetectEncoding(data []byte) Encoding {
	if len(data) > DetectionBufferSize {
		data = trimToRuneBoundary(data[:DetectionBufferSize])
	}

	if bytes.HasPrefix(data, utf8BOM) {
		return EncodingUTF8
	}
	if utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingGBK
}

// trimToRuneBoundary drops a UTF-8 sequence cut short by truncation so a
// valid file is not misread as GBK.
func trimToRuneBoundary(data []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		if utf8.RuneStart(data[len(data)-i]) {
			if !utf8.FullRune(data[len(data)-i:]) {
				return data[:len(data)-i]
			}
			break
		}
	}
	return data
}

// Guess is a statistical charset estimate.
type Guess struct {
	Charset    string `json:"charset"`
	Language   string `json:"language,omitempty"`
	Confidence int    `json:"confidence"`
}

// GuessCharset runs the chardet text detector over the head of data.
func GuessCharset(data []byte) (Guess, error) {
	if len(data) > DetectionBufferSize {
		data = data[:DetectionBufferSize]
	}
	res, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return Guess{}, errors.Join(ErrNoGuess, err)
	}
	return Guess{Charset: res.Charset, Language: res.Language, Confidence: res.Confidence}, nil
}
