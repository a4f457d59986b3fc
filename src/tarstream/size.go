package tarstream

import (
	"os"
	"path"

	"github.com/karrick/godirwalk"
)

// CalculateTarSize returns the exact number of bytes the tree rooted at
// root will occupy once tarred: header plus padded content for every
// regular file, a lone header block for every empty directory, and the
// end-of-archive marker. Non-empty directories contribute only their
// children. Callers use it to pre-allocate or report progress.
func CalculateTarSize(root string) (int64, error) {
	size, err := tarSize(root)
	if err != nil {
		return 0, err
	}
	return size + FooterSize, nil
}

func tarSize(name string) (int64, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return 0, err
	}
	if !fi.IsDir() {
		return entrySize(fi.Size()), nil
	}
	dirents, err := godirwalk.ReadDirents(name, nil)
	if err != nil {
		return 0, err
	}
	if len(dirents) == 0 {
		return HeaderSize, nil
	}
	var size int64
	for _, de := range dirents {
		child := path.Join(name, de.Name())
		switch {
		case de.IsDir():
			n, err := tarSize(child)
			if err != nil {
				return 0, err
			}
			size += n
		case de.IsRegular():
			fi, err := os.Stat(child)
			if err != nil {
				return 0, err
			}
			size += entrySize(fi.Size())
		}
	}
	return size, nil
}

// entrySize is a header block plus the content rounded up to a full block.
func entrySize(fileSize int64) int64 {
	return HeaderSize + fileSize + paddingSize(fileSize)
}
