package tardir

import (
	"bytes"
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aurora-is-near/tarstream/src/tarstream"
)

// ErrNoDir is returned if a given path is not a directory.
var ErrNoDir = errors.New("no directory")

type packer struct {
	options activeConfig
	out     *tarstream.Writer
}

// Pack writes a tar stream of dir to w with paths as determined by the
// given options. The stream is finished with the end-of-archive marker; w
// is closed when it is an io.Closer.
func Pack(dir string, w io.Writer, options ...Option) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return errors.Wrapf(ErrNoDir, "%q", dir)
	}
	dir = path.Clean(dir)

	appliedOptions := newOptions()
	for _, opt := range options {
		opt.applyOption(appliedOptions)
	}
	appliedOptions.ActivePathType = appliedOptions.PathType(dir)

	p := &packer{
		options: *appliedOptions,
		out:     tarstream.NewWriter(w),
	}
	if err := ListToFunc(dir, p.addEntry); err != nil {
		return err
	}
	p.addAppends(dir)
	return p.out.Close()
}

func (p *packer) addEntry(le *ListEntry) error {
	switch le.Type {
	case EntryTypeDirectory:
		return p.addDir(le)
	case EntryTypeLink:
		return p.addLink(le)
	case EntryTypeFile:
		return p.addFile(le)
	}
	return nil
}

func (p *packer) addDir(le *ListEntry) error {
	e, err := tarstream.NewEntryFromFile(le.Name, p.options.ActivePathType(le.Name))
	if err != nil {
		return err
	}
	fixEntry(e, p.options)
	return p.out.PutNextEntry(e)
}

func (p *packer) addLink(le *ListEntry) error {
	fi, err := os.Lstat(le.Name)
	if err != nil {
		return err
	}
	link, err := os.Readlink(le.Name)
	if err != nil {
		return err
	}
	header := tarstream.CreateHeader(p.options.ActivePathType(le.Name), 0,
		fi.ModTime().Unix(), false, int64(fi.Mode().Perm()))
	header.Typeflag = tarstream.TypeSymlink
	header.LinkName = link
	e := tarstream.NewEntry(header)
	fixEntry(e, p.options)
	return p.out.PutNextEntry(e)
}

func (p *packer) addFile(le *ListEntry) error {
	e, err := tarstream.NewEntryFromFile(le.Name, p.options.ActivePathType(le.Name))
	if err != nil {
		return err
	}
	fixEntry(e, p.options)
	f, err := os.Open(le.Name)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := p.out.PutNextEntry(e); err != nil {
		return err
	}
	_, err = io.Copy(p.out, io.LimitReader(f, e.Size()))
	return err
}

func (p *packer) addAppends(dir string) {
	for _, ap := range p.options.Appends {
		if err := ap.appendTo(dir, p.out, p.options); err != nil {
			logrus.WithError(err).Warnf("append failed %q", ap.name)
		}
	}
}

func (opt appendFileOpt) appendTo(dir string, out *tarstream.Writer, options activeConfig) error {
	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, opt.r)
	if err != nil {
		return err
	}
	header := tarstream.CreateHeader(options.ActivePathType(path.Join(dir, opt.name)), n,
		time.Now().Unix(), false, int64(opt.mode))
	e := tarstream.NewEntry(header)
	fixEntry(e, options)
	if err := out.PutNextEntry(e); err != nil {
		return err
	}
	_, err = io.Copy(out, buf)
	return err
}
