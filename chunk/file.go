package chunk

import (
	"errors"
	"io"
)

// WriteFile writes fileType's leading marker chunk followed by each of
// chunks, in order, to out.
func WriteFile(out io.Writer, fileType Type, chunks []*Writer) error {
	var header [HeaderSize]byte
	newFileHeader(fileType, 1).encode(header[:])
	if _, err := out.Write(header[:]); err != nil {
		return err
	}
	for _, c := range chunks {
		if _, err := c.WriteTo(out); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile decodes a chunk file's leading marker chunk and every chunk
// that follows it, returning the file's declared content type and its
// chunks in order.
func ReadFile(r io.Reader) (Type, []*Reader, error) {
	var headerBuf [HeaderSize]byte
	if _, err := io.ReadFull(r, headerBuf[:]); err != nil {
		return Type{}, nil, reportCorrupt(Type{}, "failed to read chunk file header")
	}
	header := decodeHeader(headerBuf[:])
	if header.Type != FileMarker {
		return Type{}, nil, reportCorrupt(header.Type, "not a chunk file")
	}
	if header.Version <= 0 || header.Size != 0 {
		return Type{}, nil, reportCorrupt(header.Type, "corrupt chunk file header")
	}
	if header.Version > 1 {
		return Type{}, nil, reportCorrupt(header.Type, "unsupported chunk file version")
	}

	var chunks []*Reader
	for {
		c, err := ReadChunk(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Type{}, nil, err
		}
		chunks = append(chunks, c)
	}
	return header.FileType(), chunks, nil
}
