package tardir

import (
	"os"
	"sync/atomic"

	"github.com/karrick/godirwalk"
	"github.com/sirupsen/logrus"
)

type lister struct {
	c     chan interface{}
	close int32
}

func newLister() *lister {
	return &lister{
		c: make(chan interface{}, 10),
	}
}

func (list *lister) closed() bool {
	return atomic.LoadInt32(&list.close) != 0
}

func (list *lister) exit() {
	atomic.StoreInt32(&list.close, 1)
}

func (list *lister) closeChan() {
	if list.c != nil {
		close(list.c)
		list.c = nil
	}
}

func (list *lister) sendEntry(name string, entryType EntryType, size int64) {
	if list.closed() {
		return
	}
	list.c <- &ListEntry{
		Size: size,
		Name: name,
		Type: entryType,
	}
}

func (list *lister) walk(dir string) error {
	return godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if list.closed() {
				return godirwalk.SkipThis
			}
			switch {
			case de.IsDir():
				list.sendEntry(osPathname, EntryTypeDirectory, 0)
			case de.IsSymlink():
				list.sendEntry(osPathname, EntryTypeLink, 0)
			case de.IsRegular():
				fi, err := os.Stat(osPathname)
				if err != nil {
					return err
				}
				list.sendEntry(osPathname, EntryTypeFile, fi.Size())
			}
			return nil
		},
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			logrus.WithError(err).Warnf("skipping %q", osPathname)
			return godirwalk.SkipNode
		},
	})
}
