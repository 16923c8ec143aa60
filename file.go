package gbvfs

import (
	"strings"
	"unsafe"

	"github.com/kelsonfs/gbvfs/protocol"
)

// lineBufferSize is the lookahead buffer ReadLine and friends use to find
// the next line ending without reading the whole remainder of the file.
const lineBufferSize = 256

// File is a buffered, positioned view over a protocol.RawFile. It adds
// typed record I/O, string and line I/O with CR/LF/CRLF handling, and
// sticky invalidation: once a raw operation fails, every later operation
// on the File fails immediately without touching the backing RawFile
// again.
type File struct {
	raw      protocol.RawFile
	flags    protocol.FileFlags
	position int64

	lineBuf    []byte
	lineBufPos int
}

// newFile wraps raw, positioned at its start, under flags. It is
// unexported because Files are only ever produced by FileSystem.OpenFile.
func newFile(raw protocol.RawFile, flags protocol.FileFlags) *File {
	return &File{raw: raw, flags: flags, position: 0}
}

// GetFlags returns the flags the file was opened with.
func (f *File) GetFlags() protocol.FileFlags { return f.flags }

// IsValid reports whether the file can still be used. A File starts valid
// and becomes permanently invalid the first time a raw read, write, or
// seek fails.
func (f *File) IsValid() bool { return f.position >= 0 }

// GetPosition returns the current position in the file, or -1 if the file
// is invalid.
func (f *File) GetPosition() int64 { return f.position }

// Close releases the underlying RawFile.
func (f *File) Close() error {
	return f.raw.Close()
}

// SeekBegin seeks to the start of the file.
func (f *File) SeekBegin() int64 { return f.SeekTo(0) }

// SeekEnd seeks to the end of the file.
func (f *File) SeekEnd() int64 {
	if f.position < 0 {
		return -1
	}
	pos, err := f.raw.SeekEnd()
	if err != nil {
		f.position = -1
		return -1
	}
	f.position = pos
	f.resetLineBuffer()
	return f.position
}

// SeekTo seeks to an absolute position in the file.
func (f *File) SeekTo(position int64) int64 {
	if f.position < 0 {
		return -1
	}
	pos, err := f.raw.SeekTo(position)
	if err != nil {
		f.position = -1
		return -1
	}
	f.position = pos
	f.resetLineBuffer()
	return f.position
}

// SeekBy seeks relative to the current position.
func (f *File) SeekBy(delta int64) int64 {
	if f.position < 0 {
		return -1
	}
	return f.SeekTo(f.position + delta)
}

func (f *File) resetLineBuffer() {
	f.lineBuf = nil
	f.lineBufPos = 0
}

// calculateRemaining returns the number of bytes left in the file from the
// current position, or -1 if the file is invalid or the size can't be
// determined. The underlying raw position is restored before returning.
func (f *File) calculateRemaining() int64 {
	if f.position < 0 {
		return -1
	}
	saved := f.position
	end, err := f.raw.SeekEnd()
	if err != nil {
		f.position = -1
		return -1
	}
	if _, err := f.raw.SeekTo(saved); err != nil {
		f.position = -1
		return -1
	}
	return end - saved
}

// doRead reads up to len(buf) bytes, advancing position, and returns the
// number of bytes actually read. It returns 0 without touching raw if the
// file is invalid or wasn't opened for reading.
func (f *File) doRead(buf []byte) int64 {
	if f.position < 0 || !f.flags.Has(protocol.Read) {
		return 0
	}
	n, err := f.raw.Read(buf)
	if err != nil {
		f.position = -1
		return 0
	}
	f.position += n
	return n
}

// doWrite writes buf, advancing position, and returns the number of bytes
// actually written. It returns 0 without touching raw if the file is
// invalid or wasn't opened for writing.
func (f *File) doWrite(buf []byte) int64 {
	if f.position < 0 || !f.flags.Has(protocol.Write) {
		return 0
	}
	n, err := f.raw.Write(buf)
	if err != nil {
		f.position = -1
		return 0
	}
	f.position += n
	return n
}

// Read reads into buf, returning the number of bytes actually read. Fewer
// bytes than len(buf) usually means end of file.
func (f *File) Read(buf []byte) int64 { return f.doRead(buf) }

// Write writes buf, returning the number of bytes actually written.
func (f *File) Write(buf []byte) int64 { return f.doWrite(buf) }

// ReadRemaining reads every remaining byte in the file.
func (f *File) ReadRemaining() []byte {
	if !f.flags.Has(protocol.Read) {
		return nil
	}
	remaining := f.calculateRemaining()
	if remaining <= 0 {
		return nil
	}
	buf := make([]byte, remaining)
	n := f.doRead(buf)
	return buf[:n]
}

// ReadType reads up to count trivially-copyable values of Type, returning
// the values actually read. Fewer than count usually means end of file or
// a trailing partial record; the bytes of a partial record are still
// consumed, but not returned.
func ReadType[Type any](f *File, count int64) []Type {
	if count <= 0 {
		return nil
	}
	size := int64(unsafe.Sizeof(*new(Type)))
	buf := make([]byte, size*count)
	n := f.doRead(buf)
	full := n / size
	if full == 0 {
		return nil
	}
	result := make([]Type, full)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&result[0])), full*size), buf[:full*size])
	return result
}

// ReadRemainingType reads every remaining whole value of Type in the file.
// A trailing partial record is left unread and the position is not
// advanced past it.
func ReadRemainingType[Type any](f *File) []Type {
	if !f.flags.Has(protocol.Read) {
		return nil
	}
	size := int64(unsafe.Sizeof(*new(Type)))
	remaining := f.calculateRemaining()
	if remaining < size {
		return nil
	}
	return ReadType[Type](f, remaining/size)
}

// WriteType writes the values in buffer as trivially-copyable Type
// records, returning the number of values actually written.
func WriteType[Type any](f *File, buffer []Type) int64 {
	if len(buffer) == 0 {
		return 0
	}
	size := int64(unsafe.Sizeof(*new(Type)))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&buffer[0])), int64(len(buffer))*size)
	n := f.doWrite(raw)
	return n / size
}

// ReadString reads up to count bytes as raw text, with no line-ending
// conversion.
func (f *File) ReadString(count int64) string {
	if count <= 0 || !f.flags.Has(protocol.Read) {
		return ""
	}
	buf := make([]byte, count)
	n := f.doRead(buf)
	return string(buf[:n])
}

// ReadRemainingString reads every remaining byte in the file as raw text.
func (f *File) ReadRemainingString() string {
	return string(f.ReadRemaining())
}

// WriteString writes text to the file, returning the number of bytes
// actually written.
func (f *File) WriteString(text string) int64 {
	return f.doWrite([]byte(text))
}

// fillLineBuffer refills the lookahead buffer used by ReadLine, returning
// false once no more bytes are available.
func (f *File) fillLineBuffer() bool {
	buf := make([]byte, lineBufferSize)
	n := f.doRead(buf)
	f.lineBuf = buf[:n]
	f.lineBufPos = 0
	return n > 0
}

// ReadLine reads one line of text, stripping its "\r", "\n", or "\r\n"
// terminator. It returns false (with an empty line) once no further line
// is available, which usually means end of file.
func (f *File) ReadLine() (string, bool) {
	var line strings.Builder
	sawAny := false
	for {
		if f.lineBufPos >= len(f.lineBuf) {
			if !f.fillLineBuffer() {
				return line.String(), sawAny
			}
		}
		sawAny = true
		rest := f.lineBuf[f.lineBufPos:]
		idx := strings.IndexAny(string(rest), "\r\n")
		if idx < 0 {
			line.Write(rest)
			f.lineBufPos = len(f.lineBuf)
			continue
		}
		line.Write(rest[:idx])
		term := rest[idx]
		f.lineBufPos += idx + 1
		if term == '\r' {
			if f.lineBufPos < len(f.lineBuf) {
				if f.lineBuf[f.lineBufPos] == '\n' {
					f.lineBufPos++
				}
			} else {
				// The buffer ended right on the "\r"; the matching "\n" of a
				// possible "\r\n" pair may be the very next byte read. Peek
				// one byte and push it back into the buffer if it isn't one.
				peek := make([]byte, 1)
				if n := f.doRead(peek); n == 1 && peek[0] != '\n' {
					f.lineBuf = peek
					f.lineBufPos = 0
				}
			}
		}
		return line.String(), true
	}
}

// ReadLines reads up to count lines.
func (f *File) ReadLines(count int64) []string {
	lines := make([]string, 0, count)
	for ; count > 0; count-- {
		line, ok := f.ReadLine()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

// ReadRemainingLines reads every remaining line in the file.
func (f *File) ReadRemainingLines() []string {
	var lines []string
	for {
		line, ok := f.ReadLine()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

// WriteLine writes line followed by lineEnd, returning false if the write
// did not complete in full.
func (f *File) WriteLine(line, lineEnd string) bool {
	if f.position < 0 {
		return false
	}
	if len(line) > 0 && f.doWrite([]byte(line)) < int64(len(line)) {
		return false
	}
	if len(lineEnd) > 0 && f.doWrite([]byte(lineEnd)) < int64(len(lineEnd)) {
		return false
	}
	return true
}

// WriteLines writes each line in lines followed by lineEnd, returning the
// number of lines written completely.
func (f *File) WriteLines(lines []string, lineEnd string) int64 {
	var written int64
	for _, line := range lines {
		if !f.WriteLine(line, lineEnd) {
			return written
		}
		written++
	}
	return written
}
