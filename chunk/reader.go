package chunk

import (
	"errors"
	"io"
	"unsafe"

	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// Reader is a decoded chunk: its header plus the raw body+extra bytes
// that followed it on disk.
type Reader struct {
	header Header
	data   []byte
}

// Type returns the chunk's type code.
func (r *Reader) Type() Type { return r.header.Type }

// Version returns the chunk's format version.
func (r *Reader) Version() int32 { return r.header.Version }

// Count returns the chunk's record count.
func (r *Reader) Count() int32 { return r.header.Count() }

// Data returns the chunk's raw body+extra bytes.
func (r *Reader) Data() []byte { return r.data }

// Resolve turns a Ptr written by a Writer back into the bytes it
// addresses: the in-place pointer fixup that lets a decoded chunk's body
// reference its own extra region without a copy. Offset 0 is the null
// sentinel, never a real payload, so it returns nil unconditionally; it
// also returns nil if ptr falls outside the chunk's data.
func (r *Reader) Resolve(ptr Ptr) []byte {
	if ptr == 0 {
		return nil
	}
	if int64(ptr) > int64(len(r.data)) {
		return nil
	}
	return r.data[ptr:]
}

// TypedData reinterprets the chunk's body as a slice of Type, one element
// per the header's record count. Unlike the raw header validation in
// ReadChunk (which only checks count against the chunk's total byte
// size), this requires count*sizeof(Type) to fit within the chunk's data,
// since an undersized body here cannot be a partially-valid record
// stream.
func TypedData[T any](r *Reader) ([]T, error) {
	count := int64(r.header.Count())
	size := int64(unsafe.Sizeof(*new(T)))
	if count < 0 {
		return nil, &FormatError{ChunkType: r.header.Type.String(), Message: "negative record count"}
	}
	need := count * size
	if need > int64(len(r.data)) {
		return nil, &FormatError{ChunkType: r.header.Type.String(), Message: "record count exceeds chunk data"}
	}
	if count == 0 {
		return nil, nil
	}
	result := make([]T, count)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&result[0])), need), r.data[:need])
	return result, nil
}

func reportCorrupt(t Type, reason string) error {
	log.WithFields(logrus.Fields{"chunk_type": t.String()}).Error("corrupt chunk: " + reason)
	return &FormatError{ChunkType: t.String(), Message: reason}
}

// ReadChunk decodes a single chunk from r. It returns io.EOF, with no
// error wrapping, once the stream is cleanly exhausted between chunks;
// any other read failure or validation failure is reported as a
// FormatError.
func ReadChunk(r io.Reader) (*Reader, error) {
	var headerBuf [HeaderSize]byte
	n, err := io.ReadFull(r, headerBuf[:])
	if err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, reportCorrupt(Type{}, "truncated chunk header")
	}
	header := decodeHeader(headerBuf[:])

	if header.Version <= 0 || header.Size < 0 || header.Size%bodyAlign != 0 ||
		header.Count() < 0 || header.Count() > header.Size {
		return nil, reportCorrupt(header.Type, "invalid chunk header fields")
	}

	var data []byte
	if header.Size > 0 {
		data = make([]byte, header.Size)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, reportCorrupt(header.Type, "chunk body truncated")
		}
	}
	return &Reader{header: header, data: data}, nil
}
