// Package chunk implements the binary chunk container format: a sequence
// of 16-byte headers each followed by an 8-byte-aligned body, optionally
// preceded by a single file-marker chunk identifying the kind of content
// a chunk file holds.
package chunk

import (
	"encoding/binary"
	"strings"
)

// HeaderSize is the fixed on-disk size of a chunk header, in bytes.
const HeaderSize = 16

// bodyAlign is the alignment every chunk body (and the extra region that
// follows it) is padded to.
const bodyAlign = 8

// Type is a 4-byte code identifying what a chunk holds, e.g. "GBFI" for
// the file-marker chunk every chunk file starts with.
type Type [4]byte

// NewType builds a Type from its string form, which must be at most 4
// bytes; shorter strings are zero-padded.
func NewType(s string) Type {
	var t Type
	copy(t[:], s)
	return t
}

func (t Type) String() string {
	return strings.TrimRight(string(t[:]), "\x00")
}

// FileMarker is the Type every chunk file's first chunk carries.
var FileMarker = NewType("GBFI")

// Header is the fixed 16-byte prefix of every chunk: a type code, a
// format version, the aligned size in bytes of the body that follows,
// and a fourth field whose meaning depends on Type. For an ordinary
// chunk it holds the chunk's record Count; for the file-marker chunk it
// instead holds the FileType identifying the chunk file's contents.
type Header struct {
	Type    Type
	Version int32
	Size    int32
	tag     [4]byte
}

// newHeader builds the header for an ordinary chunk.
func newHeader(t Type, version, size, count int32) Header {
	var tag [4]byte
	binary.LittleEndian.PutUint32(tag[:], uint32(count))
	return Header{Type: t, Version: version, Size: size, tag: tag}
}

// newFileHeader builds the header for a chunk file's leading marker chunk.
func newFileHeader(fileType Type, version int32) Header {
	return Header{Type: FileMarker, Version: version, Size: 0, tag: fileType}
}

// Count returns the header's fourth field interpreted as a record count.
// Meaningless for the file-marker chunk; use FileType there instead.
func (h Header) Count() int32 {
	return int32(binary.LittleEndian.Uint32(h.tag[:]))
}

// FileType returns the header's fourth field interpreted as a chunk Type.
// Only meaningful for the file-marker chunk.
func (h Header) FileType() Type {
	return Type(h.tag)
}

func (h Header) encode(buf []byte) {
	copy(buf[0:4], h.Type[:])
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.Version))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(h.Size))
	copy(buf[12:16], h.tag[:])
}

func decodeHeader(buf []byte) Header {
	var h Header
	copy(h.Type[:], buf[0:4])
	h.Version = int32(binary.LittleEndian.Uint32(buf[4:8]))
	h.Size = int32(binary.LittleEndian.Uint32(buf[8:12]))
	copy(h.tag[:], buf[12:16])
	return h
}

func alignUp(n int32) int32 {
	if rem := n % bodyAlign; rem != 0 {
		return n + (bodyAlign - rem)
	}
	return n
}
