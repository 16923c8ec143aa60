package gbvfs

import (
	"testing"

	"github.com/kelsonfs/gbvfs/protocol"
)

// memRawFile is a minimal in-memory protocol.RawFile used to exercise
// File's buffering and line-handling logic in isolation.
type memRawFile struct {
	data []byte
	pos  int64
}

func (r *memRawFile) SeekEnd() (int64, error) {
	r.pos = int64(len(r.data))
	return r.pos, nil
}

func (r *memRawFile) SeekTo(pos int64) (int64, error) {
	r.pos = pos
	return r.pos, nil
}

func (r *memRawFile) Read(buf []byte) (int64, error) {
	if r.pos >= int64(len(r.data)) {
		return 0, nil
	}
	n := copy(buf, r.data[r.pos:])
	r.pos += int64(n)
	return int64(n), nil
}

func (r *memRawFile) Write(buf []byte) (int64, error) {
	end := r.pos + int64(len(buf))
	if end > int64(len(r.data)) {
		grown := make([]byte, end)
		copy(grown, r.data)
		r.data = grown
	}
	copy(r.data[r.pos:end], buf)
	r.pos = end
	return int64(len(buf)), nil
}

func (r *memRawFile) Close() error { return nil }

func newTestFile(contents string, flags protocol.FileFlags) *File {
	return newFile(&memRawFile{data: []byte(contents)}, flags)
}

func TestFileReadWriteRoundTrip(t *testing.T) {
	f := newTestFile("", protocol.Read|protocol.Write)
	if n := f.WriteString("hello"); n != 5 {
		t.Fatalf("WriteString returned %d, want 5", n)
	}
	f.SeekBegin()
	if got := f.ReadRemainingString(); got != "hello" {
		t.Fatalf("ReadRemainingString = %q, want %q", got, "hello")
	}
}

func TestFileReadLineHandlesAllLineEndings(t *testing.T) {
	f := newTestFile("a\r\nb\nc\rd", protocol.Read)
	want := []string{"a", "b", "c", "d"}
	for _, w := range want {
		line, ok := f.ReadLine()
		if !ok || line != w {
			t.Fatalf("ReadLine() = (%q, %v), want (%q, true)", line, ok, w)
		}
	}
	if _, ok := f.ReadLine(); ok {
		t.Fatalf("expected no further lines")
	}
}

func TestFileReadLineCRLFSplitAcrossBuffer(t *testing.T) {
	// Force the "\r" to land exactly at the end of the lookahead buffer by
	// padding the first line to lineBufferSize-1 bytes.
	padding := make([]byte, lineBufferSize-1)
	for i := range padding {
		padding[i] = 'x'
	}
	f := newTestFile(string(padding)+"\r\nsecond", protocol.Read)
	first, ok := f.ReadLine()
	if !ok || first != string(padding) {
		t.Fatalf("first ReadLine length = %d, want %d", len(first), len(padding))
	}
	second, ok := f.ReadLine()
	if !ok || second != "second" {
		t.Fatalf("second ReadLine = (%q, %v), want (%q, true)", second, ok, "second")
	}
}

func TestFileReadLinesAndWriteLines(t *testing.T) {
	f := newTestFile("", protocol.Read|protocol.Write)
	lines := []string{"one", "two", "three"}
	if n := f.WriteLines(lines, "\n"); n != int64(len(lines)) {
		t.Fatalf("WriteLines wrote %d lines, want %d", n, len(lines))
	}
	f.SeekBegin()
	got := f.ReadRemainingLines()
	if len(got) != len(lines) {
		t.Fatalf("ReadRemainingLines = %v, want %v", got, lines)
	}
	for i, w := range lines {
		if got[i] != w {
			t.Errorf("line %d = %q, want %q", i, got[i], w)
		}
	}
}

type fixedRecord struct {
	A int32
	B int32
}

func TestFileTypedReadWrite(t *testing.T) {
	f := newTestFile("", protocol.Read|protocol.Write)
	records := []fixedRecord{{A: 1, B: 2}, {A: 3, B: 4}}
	if n := WriteType(f, records); n != int64(len(records)) {
		t.Fatalf("WriteType wrote %d records, want %d", n, len(records))
	}
	f.SeekBegin()
	got := ReadRemainingType[fixedRecord](f)
	if len(got) != len(records) {
		t.Fatalf("ReadRemainingType returned %d records, want %d", len(got), len(records))
	}
	for i, r := range records {
		if got[i] != r {
			t.Errorf("record %d = %+v, want %+v", i, got[i], r)
		}
	}
}

func TestFileRemainsValidAfterSuccessfulOperation(t *testing.T) {
	f := newTestFile("data", protocol.Read)
	if !f.IsValid() {
		t.Fatalf("expected a freshly opened file to be valid")
	}
	// Writing without the Write flag is a no-op, not a failure; only a
	// failing raw call should invalidate the file. Force one via a seek
	// past what the fake backend can report as an error-free position is
	// not possible here, so we only assert the happy path stays valid.
	f.SeekBegin()
	if !f.IsValid() {
		t.Fatalf("expected file to remain valid after a successful seek")
	}
}
