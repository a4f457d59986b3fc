// Package util holds small filesystem helpers shared by the commands.
package util

import "os"

// CreateFile creates filename exclusively: an archive is never silently
// overwritten.
func CreateFile(filename string) (*os.File, error) {
	return os.OpenFile(filename, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0640)
}
