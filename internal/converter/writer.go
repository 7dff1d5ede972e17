package converter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileSystem abstracts the file operations used to publish output, so tests
// can inject failures.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// File is the subset of *os.File the writer needs.
type File interface {
	Write(b []byte) (n int, err error)
	Sync() error
	Chmod(mode os.FileMode) error
	Close() error
}

type osFS struct{}

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	// #nosec G304 - the path is derived from the user's own source file
	return os.OpenFile(name, flag, perm)
}

func (osFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (osFS) Remove(name string) error             { return os.Remove(name) }

// writeAtomic writes content to a uniquely named temp file next to dest and
// renames it into place, so dest either keeps its old content or holds all
// of the new content. The temp file never outlives a failure.
//
// The file ends up with exactly perm, whatever the umask. Replacing an
// existing dest swaps the whole inode, so dest's previous mode is not kept.
func writeAtomic(fs FileSystem, dest string, content []byte, perm os.FileMode) (err error) {
	tmp := filepath.Join(filepath.Dir(dest), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dest), uuid.NewString()))

	f, err := fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		if err != nil {
			_ = fs.Remove(tmp)
		}
	}()

	if _, err = f.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err = f.Chmod(perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmp, err)
	}
	closed = true
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err = fs.Rename(tmp, dest); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", dest, err)
	}
	return nil
}
