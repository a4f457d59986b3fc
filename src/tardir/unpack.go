package tardir

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aurora-is-near/tarstream/src/tarstream"
)

// ErrUnsafePath is returned for entry names that would escape the
// destination directory.
var ErrUnsafePath = errors.New("entry name escapes destination")

// Unpack reads a tar stream from r and recreates its entries under dir.
// Directories, regular files, and symlinks are restored with their mode and
// modification time; other entry types are skipped with a warning.
func Unpack(r io.Reader, dir string) error {
	tr := tarstream.NewReader(r)
	for {
		e, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := unpackEntry(tr, e, dir); err != nil {
			return err
		}
	}
}

// target resolves an entry name below dir, rejecting absolute names and
// names that climb out of the destination.
func target(dir, name string) (string, error) {
	clean := path.Clean(name)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.Wrapf(ErrUnsafePath, "%q", name)
	}
	return filepath.Join(dir, filepath.FromSlash(clean)), nil
}

func unpackEntry(tr *tarstream.Reader, e *tarstream.Entry, dir string) error {
	name, err := target(dir, e.Name())
	if err != nil {
		return err
	}
	mode := os.FileMode(e.Mode()).Perm()
	switch {
	case e.IsDirectory():
		if err := os.MkdirAll(name, mode); err != nil {
			return err
		}
		return os.Chtimes(name, e.ModTime(), e.ModTime())
	case e.Typeflag() == tarstream.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return err
		}
		if err := os.Symlink(e.LinkName(), name); err != nil {
			return err
		}
		return nil
	case e.Typeflag() == tarstream.TypeNormal,
		e.Typeflag() == tarstream.TypeOldNormal,
		e.Typeflag() == tarstream.TypeContiguous:
		return unpackFile(tr, e, name, mode)
	default:
		logrus.Warnf("skipping entry %q: unsupported type %q", e.Name(), e.Typeflag())
		return nil
	}
}

func unpackFile(tr *tarstream.Reader, e *tarstream.Entry, name string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, tr); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chtimes(name, e.ModTime(), e.ModTime())
}
