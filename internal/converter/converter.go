// Package converter re-encodes a text file between UTF-8 and GBK and writes
// the result next to the source as <base>-<ENCODING>.txt.
//
// A Converter holds no mutable state and may be shared. Two conversions of
// the same source to the same target race on the output path; the last
// rename wins, and serialising them is up to the caller.
package converter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/greatbody/gbkit/internal/transcoder"
)

// MaxFileSize is the largest source file Convert will read (128 MB).
const MaxFileSize = 128 * 1024 * 1024

// maxFileSize is the limit readSource enforces; tests lower it.
var maxFileSize int64 = MaxFileSize

// ErrFileTooLarge is the cause attached to ErrFileOpen for oversized sources.
var ErrFileTooLarge = errors.New("file too large")

var errNotRegular = errors.New("not a regular file")

// Request names the file to convert and the encoding to produce.
type Request struct {
	SourcePath string
	// Target is the encoding name as the user chose it, e.g. "GBK".
	Target string
	// Source, when set, is the encoding the file is known to be in and
	// overrides inference.
	Source string
}

// Options tunes a Converter.
type Options struct {
	// InferSourceEncoding assumes an untagged source is in the complement of
	// the target: GBK when converting to UTF-8, UTF-8 when converting to GBK.
	// When false and Request.Source is empty, the source is read as the
	// target encoding.
	InferSourceEncoding bool
	// ReplaceUnsupported substitutes characters the target cannot encode
	// instead of failing.
	ReplaceUnsupported bool
	Registry           transcoder.Registry
	Logger             *slog.Logger
}

// Result describes a finished conversion.
type Result struct {
	OutputPath   string
	Source       transcoder.Encoding
	Target       transcoder.Encoding
	BytesRead    int
	BytesWritten int
}

// Converter performs file conversions.
type Converter struct {
	opts Options
	fs   FileSystem
}

// New returns a Converter. A nil Registry means transcoder.DefaultRegistry
// and a nil Logger means slog.Default().
func New(opts Options) *Converter {
	if opts.Registry == nil {
		opts.Registry = transcoder.DefaultRegistry
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Converter{opts: opts, fs: osFS{}}
}

// OutputPath derives where a conversion of sourcePath to target is written:
// the source's directory, its base name minus the final extension, a dash,
// the encoding name and ".txt".
func OutputPath(sourcePath string, target transcoder.Encoding) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(sourcePath), fmt.Sprintf("%s-%s.txt", base, target))
}

// Convert reads req.SourcePath, re-encodes it and writes the output file.
// All failures are *Error values; no output file is left behind on failure.
func (c *Converter) Convert(req Request) (Result, error) {
	target, err := transcoder.ParseEncoding(req.Target)
	if err != nil {
		return Result{}, &Error{Kind: ErrUnsupportedEncoding, Encoding: req.Target}
	}

	source, err := c.sourceEncoding(req, target)
	if err != nil {
		return Result{}, err
	}

	for _, e := range []transcoder.Encoding{source, target} {
		if !c.opts.Registry.SupportsEncoding(e) {
			return Result{}, &Error{Kind: ErrEncodingUnavailable, Encoding: e.String()}
		}
	}

	data, perm, err := readSource(req.SourcePath)
	if err != nil {
		return Result{}, &Error{Kind: ErrFileOpen, Path: req.SourcePath, Err: err}
	}

	out, err := transcoder.Transcode(c.opts.Registry, source, target, data, c.opts.ReplaceUnsupported)
	if err != nil {
		return Result{}, c.codecError(err, req.SourcePath, target)
	}

	dest := OutputPath(req.SourcePath, target)
	if err := writeAtomic(c.fs, dest, out, perm); err != nil {
		return Result{}, &Error{Kind: ErrFileWrite, Path: dest, Err: err}
	}

	c.opts.Logger.Debug("converted file",
		"source", req.SourcePath,
		"output", dest,
		"from", source.String(),
		"to", target.String(),
		"bytes_in", len(data),
		"bytes_out", len(out))

	return Result{
		OutputPath:   dest,
		Source:       source,
		Target:       target,
		BytesRead:    len(data),
		BytesWritten: len(out),
	}, nil
}

func (c *Converter) sourceEncoding(req Request, target transcoder.Encoding) (transcoder.Encoding, error) {
	if req.Source != "" {
		source, err := transcoder.ParseEncoding(req.Source)
		if err != nil {
			return transcoder.EncodingUnknown, &Error{Kind: ErrUnsupportedEncoding, Encoding: req.Source}
		}
		return source, nil
	}
	if c.opts.InferSourceEncoding {
		return transcoder.Complement(target), nil
	}
	return target, nil
}

func (c *Converter) codecError(err error, path string, target transcoder.Encoding) error {
	switch {
	case errors.Is(err, transcoder.ErrUnrepresentable):
		return &Error{Kind: ErrUnrepresentable, Path: path, Encoding: target.String(), Err: err}
	case errors.Is(err, transcoder.ErrEncodingUnavailable):
		return &Error{Kind: ErrEncodingUnavailable, Encoding: target.String(), Err: err}
	default:
		return &Error{Kind: ErrFileOpen, Path: path, Err: err}
	}
}

// readSource returns the file's content and its permission bits, which the
// output file inherits.
func readSource(path string) (data []byte, perm os.FileMode, err error) {
	// #nosec G304 - reading the user's chosen file is the point
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, err
	}
	if !info.Mode().IsRegular() {
		return nil, 0, errNotRegular
	}
	if info.Size() > maxFileSize {
		return nil, 0, ErrFileTooLarge
	}

	data, err = io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return nil, 0, err
	}
	if int64(len(data)) > maxFileSize {
		return nil, 0, ErrFileTooLarge
	}
	return data, info.Mode().Perm(), nil
}
