package tardir

import (
	"path"
)

func listToChan(dir string) (list *lister) {
	dir = path.Clean(dir)
	list = newLister()
	go func() {
		defer list.closeChan()
		if err := list.walk(dir); err != nil {
			list.c <- err
		}
	}()
	return list
}

// ListToChan produces a flow of list entries sent to the returned channel.
// The channel is closed after listing has completed. It carries either
// *ListEntry or error values.
func ListToChan(dir string) (entries chan interface{}) {
	return listToChan(dir).c
}

// ListToFunc produces a flow of list entries that are given to entryFunc
// for processing. The first error from entryFunc stops the listing.
func ListToFunc(dir string, entryFunc func(*ListEntry) error) error {
	list := listToChan(dir)
	for m := range list.c {
		switch n := m.(type) {
		case *ListEntry:
			if err := entryFunc(n); err != nil {
				list.exit()
				return err
			}
		case error:
			return n
		}
	}
	return nil
}
