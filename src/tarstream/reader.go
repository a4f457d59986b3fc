package tarstream

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrCorrupt is returned when skipping entry content or padding makes
	// no progress while bytes are still outstanding.
	ErrCorrupt = errors.New("possible tar corruption")
	// ErrNoReset is returned by Reset: the reader never supports rewinding.
	ErrNoReset = errors.New("reset not supported")
)

const skipBufferSize = 2048

// Reader reads a tar stream entry by entry. It owns the underlying source
// for its lifetime and must not be shared across goroutines without
// external synchronization.
type Reader struct {
	r           io.Reader
	curr        *Entry
	currRead    int64 // content bytes consumed for the current entry
	totalRead   int64 // bytes consumed from the underlying source
	defaultSkip bool
	skipBuf     []byte
}

// NewReader creates a Reader over r. Skipping is done by reading and
// discarding, which stays correct over sources that cannot seek.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, defaultSkip: true}
}

// SetDefaultSkip controls how content and padding are skipped. With on set
// to false the reader delegates to the source's native Seek when available,
// trading robustness for speed.
func (tr *Reader) SetDefaultSkip(on bool) {
	tr.defaultSkip = on
}

// TotalRead returns the number of bytes consumed from the underlying source
// so far, headers and padding included.
func (tr *Reader) TotalRead() int64 {
	return tr.totalRead
}

// Next advances to the next entry. Any unread content and padding of the
// current entry is skipped first. It returns io.EOF when an all-zero header
// block marks the end of the archive.
func (tr *Reader) Next() (*Entry, error) {
	if err := tr.closeCurrentEntry(); err != nil {
		return nil, err
	}
	var b block
	if err := tr.readBlock(&b); err != nil {
		return nil, err
	}
	if b.isZero() {
		return nil, io.EOF
	}
	tr.curr = NewEntryFromBlock(b[:])
	tr.currRead = 0
	return tr.curr, nil
}

// readBlock accumulates one full block, looping over short reads. A source
// that ends mid-block yields the block zero-padded: a short final header is
// not an error.
func (tr *Reader) readBlock(b *block) error {
	total := 0
	for total < len(b) {
		n, err := tr.r.Read(b[total:])
		total += n
		tr.totalRead += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	for i := total; i < len(b); i++ {
		b[i] = 0
	}
	return nil
}

// Read reads content of the current entry. Reads are clipped to the entry's
// declared size; once it is exhausted Read reports io.EOF even though the
// underlying source continues with padding and further entries. Without a
// current entry Read passes through to the source.
func (tr *Reader) Read(p []byte) (int, error) {
	if tr.curr != nil {
		remaining := tr.curr.Size() - tr.currRead
		if remaining == 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}
	n, err := tr.r.Read(p)
	if tr.curr != nil {
		tr.currRead += int64(n)
	}
	tr.totalRead += int64(n)
	return n, err
}

// closeCurrentEntry skips whatever remains of the current entry's declared
// content, then the padding up to the next block boundary.
func (tr *Reader) closeCurrentEntry() error {
	if tr.curr == nil {
		return nil
	}
	if remaining := tr.curr.Size() - tr.currRead; remaining > 0 {
		name := tr.curr.Name()
		for remaining > 0 {
			n, err := tr.skip(remaining)
			if err != nil {
				return err
			}
			if n == 0 {
				return errors.Wrapf(ErrCorrupt, "entry %q: %d content bytes missing", name, remaining)
			}
			remaining -= n
		}
	}
	tr.curr = nil
	tr.currRead = 0
	return tr.skipPad()
}

// skipPad advances to the next block boundary, relative to the total bytes
// consumed from the stream so far.
func (tr *Reader) skipPad() error {
	if tr.totalRead == 0 {
		return nil
	}
	extra := tr.totalRead % BlockSize
	if extra == 0 {
		return nil
	}
	for remaining := BlockSize - extra; remaining > 0; {
		n, err := tr.skip(remaining)
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.Wrapf(ErrCorrupt, "%d padding bytes missing", remaining)
		}
		remaining -= n
	}
	return nil
}

// skip discards n bytes from the source, returning how many were actually
// discarded. End of input is reported through a zero count, not an error.
func (tr *Reader) skip(n int64) (int64, error) {
	if !tr.defaultSkip {
		if s, ok := tr.r.(io.Seeker); ok {
			if _, err := s.Seek(n, io.SeekCurrent); err != nil {
				return 0, err
			}
			tr.totalRead += n
			return n, nil
		}
	}
	if tr.skipBuf == nil {
		tr.skipBuf = make([]byte, skipBufferSize)
	}
	var skipped int64
	for skipped < n {
		chunk := n - skipped
		if chunk > skipBufferSize {
			chunk = skipBufferSize
		}
		m, err := tr.r.Read(tr.skipBuf[:chunk])
		skipped += int64(m)
		tr.totalRead += int64(m)
		if err == io.EOF || (m == 0 && err == nil) {
			break
		}
		if err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

// Reset always fails: the reader consumes its source strictly forward.
func (tr *Reader) Reset() error {
	return ErrNoReset
}

// Close closes the underlying source when it supports closing.
func (tr *Reader) Close() error {
	if c, ok := tr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
