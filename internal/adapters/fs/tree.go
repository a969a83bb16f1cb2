package fs

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileTree = (*Tree)(nil)

// Tree implements ports.FileTree on the local file system.
type Tree struct {
	walker *Walker
}

const compareChunk = 32 * 1024

// NewTree creates a new Tree.
func NewTree(walker *Walker) *Tree {
	return &Tree{walker: walker}
}

// WalkFiles yields all files below root.
func (t *Tree) WalkFiles(root string) iter.Seq2[string, error] {
	return t.walker.WalkFiles(root)
}

// Exists reports whether path exists. Dangling symlinks count as existing.
func (t *Tree) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path is a directory.
func (t *Tree) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SameContent reports whether a and b hold identical bytes. A dangling
// symlink at a never matches.
func (t *Tree) SameContent(a, b string) (bool, error) {
	fa, err := os.Open(a) //nolint:gosec // Path is controlled by caller
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileCompareFailed.Error()), "path", a)
	}
	defer fa.Close() //nolint:errcheck // Best effort close in defer

	fb, err := os.Open(b) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileCompareFailed.Error()), "path", b)
	}
	defer fb.Close() //nolint:errcheck // Best effort close in defer

	infoA, err := fa.Stat()
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileCompareFailed.Error()), "path", a)
	}
	infoB, err := fb.Stat()
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileCompareFailed.Error()), "path", b)
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA, err := endOfChunks(errA)
		if err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrFileCompareFailed.Error()), "path", a)
		}
		doneB, err := endOfChunks(errB)
		if err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrFileCompareFailed.Error()), "path", b)
		}
		if doneA || doneB {
			return doneA == doneB, nil
		}
	}
}

func endOfChunks(err error) (bool, error) {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true, nil
	}
	return false, err
}

// Copy copies src to dst, creating missing parent directories. The source's
// permission bits are kept.
func (t *Tree) Copy(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCopyFailed.Error()), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCopyFailed.Error()), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCopyFailed.Error()), "path", dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCopyFailed.Error()), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrFileCopyFailed.Error()), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCopyFailed.Error()), "path", dst)
	}
	return nil
}
