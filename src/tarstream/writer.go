package tarstream

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrSizeExceeded is returned when a write would push an entry past its
	// declared size. The failing write leaves the stream untouched.
	ErrSizeExceeded = errors.New("entry size exceeded")
	// ErrIncomplete is returned when an entry is closed before its declared
	// size has been fully written.
	ErrIncomplete = errors.New("entry incompletely written")
)

// Writer produces a tar stream entry by entry. It owns the underlying sink
// for its lifetime; Close closes the sink when it supports closing. A
// Writer must not be shared across goroutines without external
// synchronization.
type Writer struct {
	w            io.Writer
	curr         *Entry
	currWritten  int64 // content bytes written for the current entry
	totalWritten int64 // bytes written to the underlying sink
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// TotalWritten returns the number of bytes written to the underlying sink
// so far, headers and padding included.
func (tw *Writer) TotalWritten() int64 {
	return tw.totalWritten
}

// PutNextEntry closes the current entry, writes e's 512-byte header, and
// makes e current. Content written afterwards counts against e's declared
// size.
func (tw *Writer) PutNextEntry(e *Entry) error {
	if err := tw.closeCurrentEntry(); err != nil {
		return err
	}
	var b block
	e.WriteHeaderBlock(b[:])
	if _, err := tw.Write(b[:]); err != nil {
		return err
	}
	tw.curr = e
	tw.currWritten = 0
	return nil
}

// Write writes entry content. For a non-directory entry the declared size
// is a hard contract: a write that would exceed it fails before any byte
// reaches the sink.
func (tw *Writer) Write(p []byte) (int, error) {
	if tw.curr != nil && !tw.curr.IsDirectory() {
		if tw.curr.Size() < tw.currWritten+int64(len(p)) {
			return 0, errors.Wrapf(ErrSizeExceeded, "entry %q: declared %d, writing past %d",
				tw.curr.Name(), tw.curr.Size(), tw.currWritten)
		}
		tw.currWritten += int64(len(p))
	}
	n, err := tw.w.Write(p)
	tw.totalWritten += int64(n)
	return n, err
}

// closeCurrentEntry verifies the declared size was fully satisfied, clears
// the current entry, and pads the stream to the next block boundary.
func (tw *Writer) closeCurrentEntry() error {
	if tw.curr == nil {
		return nil
	}
	if tw.curr.Size() > tw.currWritten {
		return errors.Wrapf(ErrIncomplete, "entry %q: %d of %d bytes written",
			tw.curr.Name(), tw.currWritten, tw.curr.Size())
	}
	tw.curr = nil
	tw.currWritten = 0
	return tw.pad()
}

// pad writes the zero bytes needed to reach the next block boundary,
// relative to the total bytes written to the stream so far.
func (tw *Writer) pad() error {
	if tw.totalWritten == 0 {
		return nil
	}
	extra := tw.totalWritten % BlockSize
	if extra == 0 {
		return nil
	}
	_, err := tw.Write(zeroBlock[:BlockSize-extra])
	return err
}

// Close finishes the archive: it closes the current entry, writes the
// 1024-byte end-of-archive marker, and closes the underlying sink when it
// is an io.Closer. This is the only place the marker is emitted.
func (tw *Writer) Close() error {
	if err := tw.closeCurrentEntry(); err != nil {
		return err
	}
	if _, err := tw.Write(zeroBlock[:]); err != nil {
		return err
	}
	if _, err := tw.Write(zeroBlock[:]); err != nil {
		return err
	}
	if c, ok := tw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
