package chunk

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Ptr is a byte offset into a chunk's combined body+extra data, the way
// pointer fields inside a chunk body address the chunk's own extra
// region. A Reader turns a Ptr back into addressable bytes with Resolve.
type Ptr uint32

// Writer assembles a single chunk: a body written in order, plus an
// extra region of variably-sized data that the body can point into via
// reserved pointer slots.
type Writer struct {
	chunkType Type
	version   int32
	count     int32
	body      bytes.Buffer
	extra     bytes.Buffer
}

// NewWriter starts a new chunk of the given type and format version.
func NewWriter(chunkType Type, version int32) *Writer {
	return &Writer{chunkType: chunkType, version: version}
}

// SetCount sets the record count recorded in the chunk header's fourth
// field.
func (w *Writer) SetCount(count int32) { w.count = count }

// Write appends raw bytes to the chunk body.
func (w *Writer) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

// WriteValue appends a single trivially-copyable value to the chunk body,
// little-endian encoded regardless of host byte order.
func WriteValue[T any](w *Writer, v T) error {
	return binary.Write(&w.body, binary.LittleEndian, v)
}

// ReservePtr writes a zero Ptr placeholder into the body and returns its
// byte offset, to be filled in later with PatchPtr once the value it
// should point to is known. The body must not grow again via Write or
// WriteValue after the matching WriteExtra call, since WriteExtra computes
// the Ptr it returns from the body's length at the time it is called.
func (w *Writer) ReservePtr() int {
	slot := w.body.Len()
	w.body.Write(make([]byte, 4))
	return slot
}

// PatchPtr fills in a placeholder written by ReservePtr with ptr, usually
// the value a WriteExtra call returned.
func (w *Writer) PatchPtr(slot int, ptr Ptr) {
	binary.LittleEndian.PutUint32(w.body.Bytes()[slot:slot+4], uint32(ptr))
}

// WriteExtra appends data to the chunk's extra region, padding it with
// zero bytes up to the next 8-byte boundary so every slot in the extra
// region starts aligned, and returns the Ptr that addresses it, computed
// against the body's current (final) aligned length. Call this only
// after every Write/WriteValue call that contributes to the body proper.
func (w *Writer) WriteExtra(data []byte) Ptr {
	ptr := Ptr(alignUp(int32(w.body.Len())) + int32(w.extra.Len()))
	w.extra.Write(data)
	if pad := alignUp(int32(len(data))) - int32(len(data)); pad > 0 {
		w.extra.Write(make([]byte, pad))
	}
	return ptr
}

// Encode serializes the chunk to its on-disk byte representation:
// header, body padded to an 8-byte boundary, then the extra region
// (itself always left 8-aligned by WriteExtra's own padding).
func (w *Writer) Encode() []byte {
	bodyLen := int32(w.body.Len())
	alignedBodyLen := alignUp(bodyLen)
	alignedExtraLen := alignUp(int32(w.extra.Len()))
	total := alignedBodyLen + alignedExtraLen

	buf := make([]byte, HeaderSize+int(total))
	newHeader(w.chunkType, w.version, total, w.count).encode(buf[:HeaderSize])
	copy(buf[HeaderSize:], w.body.Bytes())
	copy(buf[HeaderSize+int(alignedBodyLen):], w.extra.Bytes())
	return buf
}

// WriteTo writes the chunk's encoded form to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(w.Encode())
	return int64(n), err
}
