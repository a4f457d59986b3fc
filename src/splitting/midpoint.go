// Package splitting cuts a tar archive into two valid archives near its
// middle entry boundary.
package splitting

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/aurora-is-near/tarstream/src/tarstream"
)

func tarPadding(size int64) int64 {
	if size%tarstream.BlockSize == 0 {
		return 0
	}
	return tarstream.BlockSize - size%tarstream.BlockSize
}

// midpoint returns the first entry boundary at or after half the file size.
func midpoint(filename string) (lastbyte int64, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	stop := stat.Size() / 2
	tr := tarstream.NewReader(f)
	tr.SetDefaultSkip(false) // plain files seek
	for {
		e, err := tr.Next()
		if err == io.EOF {
			return 0, io.ErrShortBuffer
		}
		if err != nil {
			return 0, err
		}
		if tr.TotalRead() >= stop {
			return tr.TotalRead() + e.Size() + tarPadding(e.Size()), nil
		}
	}
}

func splitfile(filename string, midpoint int64) error {
	destName := filename + ".part2"
	destF, err := os.Create(destName)
	if err != nil {
		return err
	}
	defer func() { _ = destF.Close() }()
	sourceF, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() { _ = sourceF.Close() }()
	pos, err := sourceF.Seek(midpoint, io.SeekStart)
	if err != nil {
		return err
	}
	if pos != midpoint {
		panic("Seek failure")
	}
	if _, err = io.Copy(destF, sourceF); err != nil {
		return err
	}
	return os.Truncate(filename, midpoint)
}

// SplitTarMiddle splits a tarfile roughly at its middle, at an entry
// boundary so that each part remains parseable. It truncates the input
// tarfile in place, and copies the remainder into a file called
// "<tarfile>.part2".
func SplitTarMiddle(tarfile string) error {
	mid, err := midpoint(tarfile)
	if err != nil {
		return err
	}
	return splitfile(tarfile, mid)
}

// ReadSHA256 writes the SHA-256 digest of every regular entry in tarfile
// to w, one "digest  name" line per entry.
func ReadSHA256(tarfile string, w io.Writer) error {
	f, err := os.Open(tarfile)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	tr := tarstream.NewReader(f)
	for {
		e, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if e.Typeflag() != tarstream.TypeNormal && e.Typeflag() != tarstream.TypeOldNormal {
			continue
		}
		h := sha256.New()
		if _, err := io.Copy(h, tr); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%x  %s\n", h.Sum(nil), e.Name()); err != nil {
			return err
		}
	}
}
