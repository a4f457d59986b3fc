// Package tardir connects filesystem trees to tar streams: it lists a
// directory into a flow of entries, packs the flow through a
// tarstream.Writer, and unpacks a stream back onto disk.
package tardir

// EntryType classifies a filesystem object for packing.
type EntryType byte

const (
	EntryTypeDirectory EntryType = 0x01
	EntryTypeFile      EntryType = 0x02
	EntryTypeLink      EntryType = 0x03
)

// ListEntry describes one filesystem object found while listing.
type ListEntry struct {
	Size int64     // Content size; zero for directories and links.
	Name string    // Path of the filesystem object.
	Type EntryType // Directory, link, or regular file.
}
