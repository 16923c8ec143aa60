package chunk

import (
	"errors"
	"fmt"
)

// FormatError reports that chunk data did not match the expected framing:
// a bad magic, a truncated header or body, a corrupt size/count field, or
// an unsupported chunk file version.
type FormatError struct {
	ChunkType string
	Message   string
}

func (e *FormatError) Error() string {
	if e.ChunkType != "" {
		return fmt.Sprintf("chunk format error: %s: %s", e.ChunkType, e.Message)
	}
	return fmt.Sprintf("chunk format error: %s", e.Message)
}

// IsFormatError reports whether err is, or wraps, a FormatError.
func IsFormatError(err error) bool {
	var e *FormatError
	return errors.As(err, &e)
}
