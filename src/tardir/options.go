package tardir

import (
	"io"
	"os"
	"time"

	"github.com/aurora-is-near/tarstream/src/tarstream"
)

// PathFunc creates a function for rewriting paths relative to a base.
type PathFunc func(base string) PathRewriteFunc

// PathRewriteFunc rewrites a path.
type PathRewriteFunc func(d string) string

type entryFixFunc func(e *tarstream.Entry)

type activeConfig struct {
	PathType       PathFunc
	ActivePathType PathRewriteFunc
	EntryFixes     []entryFixFunc
	Appends        []appendFileOpt
}

// Option is an option for tar stream creation.
type Option interface {
	applyOption(option *activeConfig)
}

func newOptions() *activeConfig {
	return &activeConfig{
		PathType:   relativePath,
		EntryFixes: make([]entryFixFunc, 0, 4),
	}
}

func fixEntry(e *tarstream.Entry, options activeConfig) {
	for _, fix := range options.EntryFixes {
		fix(e)
	}
}

type rebaseOption struct {
	dir string
}

func (opt rebaseOption) applyOption(option *activeConfig) {
	option.PathType = rebase(opt.dir)
}

// OptRebase returns an Option that rebases the tar entries to dir.
func OptRebase(dir string) Option {
	return &rebaseOption{dir: dir}
}

func rebase(dir string) PathFunc {
	if dir[len(dir)-1] == '/' {
		dir = dir[:len(dir)-1]
	}
	return func(base string) PathRewriteFunc {
		l := len(base)
		return func(d string) string {
			if len(d) == l {
				return dir
			}
			return dir + d[l:]
		}
	}
}

// OptRelative rebases the tar entries to relative paths.
var OptRelative = new(optRelative)

type optRelative struct{}

func (opt optRelative) applyOption(option *activeConfig) {
	option.PathType = relativePath
}

func relativePath(base string) PathRewriteFunc {
	l := len(base)
	return func(d string) string {
		if len(d) == l {
			return "./"
		}
		return "." + d[l:]
	}
}

// OptAbsolute keeps the original paths.
var OptAbsolute = new(optAbsolute)

type optAbsolute struct{}

func (opt optAbsolute) applyOption(option *activeConfig) {
	option.PathType = absolutePath
}

func absolutePath(base string) PathRewriteFunc {
	_ = base
	return func(d string) string { return d }
}

type setUIDOption struct {
	uid int64
}

func (opt setUIDOption) applyOption(option *activeConfig) {
	option.EntryFixes = append(option.EntryFixes,
		func(e *tarstream.Entry) {
			e.SetUserID(opt.uid)
			e.SetUserName("")
		})
}

// OptUID sets all entry user IDs to uid.
func OptUID(uid int64) Option {
	return setUIDOption{uid: uid}
}

type setGIDOption struct {
	gid int64
}

func (opt setGIDOption) applyOption(option *activeConfig) {
	option.EntryFixes = append(option.EntryFixes,
		func(e *tarstream.Entry) {
			e.SetGroupID(opt.gid)
			e.SetGroupName("")
		})
}

// OptGID sets all entry group IDs to gid.
func OptGID(gid int64) Option {
	return setGIDOption{gid: gid}
}

// OptNumericIDs drops the symbolic user and group names from all entries.
var OptNumericIDs = new(optNumericIDs)

type optNumericIDs struct{}

func (opt optNumericIDs) applyOption(option *activeConfig) {
	option.EntryFixes = append(option.EntryFixes,
		func(e *tarstream.Entry) {
			e.SetNames("", "")
		})
}

type setModTimeOption struct {
	t time.Time
}

func (opt setModTimeOption) applyOption(option *activeConfig) {
	option.EntryFixes = append(option.EntryFixes,
		func(e *tarstream.Entry) {
			e.SetModTime(opt.t)
		})
}

// OptModTime forces the same modification time onto all entries, for
// reproducible archives.
func OptModTime(t time.Time) Option {
	return setModTimeOption{t: t}
}

type appendFileOpt struct {
	name string
	r    io.Reader
	mode os.FileMode
}

func (opt appendFileOpt) applyOption(option *activeConfig) {
	option.Appends = append(option.Appends, opt)
}

// OptAppendFile appends a synthetic file with the given name and content
// read from r after all filesystem entries.
func OptAppendFile(name string, mode os.FileMode, r io.Reader) Option {
	return appendFileOpt{name: name, r: r, mode: mode}
}
