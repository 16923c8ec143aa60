package protocol

// RawFile is the minimal positioned byte stream a protocol hands back from
// OpenFile. It has no notion of text encoding or typed records; that layer
// is built on top of it by the root file façade.
type RawFile interface {
	// SeekEnd moves the position to the end of the file and returns the new
	// position (the file's size).
	SeekEnd() (int64, error)

	// SeekTo moves the position to pos, which must be within [0, size]. It
	// returns the resulting position.
	SeekTo(pos int64) (int64, error)

	// Read reads up to len(buf) bytes starting at the current position and
	// advances the position by the number of bytes read. It returns fewer
	// bytes than requested only at end of file; it never blocks waiting for
	// more data to become available.
	Read(buf []byte) (int64, error)

	// Write writes len(buf) bytes starting at the current position and
	// advances the position by that amount, growing the file if necessary.
	Write(buf []byte) (int64, error)

	// Close releases any resources held by the open file.
	Close() error
}
