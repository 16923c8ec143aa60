package gbvfs

import (
	"errors"
	"fmt"

	"github.com/kelsonfs/gbvfs/chunk"
	"github.com/kelsonfs/gbvfs/path"
	"github.com/kelsonfs/gbvfs/resource"
)

// PathError reports that a path failed to normalize under the flags a
// caller required.
type PathError struct {
	Path  string
	Flags path.Flags
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path error: %q failed %s requirement", e.Path, e.Flags)
}

func (e *PathError) Unwrap() error { return e.Err }

// MountError reports that a protocol could not be mounted.
type MountError struct {
	Protocol string
	Message  string
	Err      error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("mount error: protocol %q: %s", e.Protocol, e.Message)
}

func (e *MountError) Unwrap() error { return e.Err }

// CapabilityError reports that an operation was attempted against a
// protocol that did not declare the required capability.
type CapabilityError struct {
	Protocol  string
	Operation string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability error: protocol %q does not support %s", e.Protocol, e.Operation)
}

// NotFoundError reports that a path does not exist where the operation
// required it to.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %q", e.Path)
}

// ConflictError reports that a path already exists in a way that
// conflicts with the requested operation (for example, creating a file
// where a folder already exists).
type ConflictError struct {
	Path    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %q: %s", e.Path, e.Message)
}

// IOError wraps a failure from the underlying protocol or operating
// system during a read, write, or seek.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %q: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports that binary chunk or resource data did not match
// the expected framing (bad magic, truncated header, size overflow, and
// so on).
type FormatError struct {
	Path    string
	Message string
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("format error: %q: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("format error: %s", e.Message)
}

// MissingDecoderError reports that a resource chunk's (type, version) pair
// has no registered decoder.
type MissingDecoderError struct {
	ChunkType string
	Version   int32
}

func (e *MissingDecoderError) Error() string {
	return fmt.Sprintf("missing decoder for chunk type %q version %d", e.ChunkType, e.Version)
}

// DependencyError reports that a resource's extra-region dependency chunk
// could not be resolved.
type DependencyError struct {
	Path    string
	Message string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency error: %q: %s", e.Path, e.Message)
}

// IsNotFoundError reports whether err is, or wraps, a NotFoundError.
func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsConflictError reports whether err is, or wraps, a ConflictError.
func IsConflictError(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsCapabilityError reports whether err is, or wraps, a CapabilityError.
func IsCapabilityError(err error) bool {
	var e *CapabilityError
	return errors.As(err, &e)
}

// IsIOError reports whether err is, or wraps, an IOError.
func IsIOError(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}

// IsFormatError reports whether err is, or wraps, a FormatError, a
// chunk.FormatError, or a resource.FormatError: the chunk and resource
// packages define their own format-error types rather than importing this
// package, to keep them free to be imported back from here.
func IsFormatError(err error) bool {
	var e *FormatError
	if errors.As(err, &e) {
		return true
	}
	var ce *chunk.FormatError
	if errors.As(err, &ce) {
		return true
	}
	var re *resource.FormatError
	return errors.As(err, &re)
}

// IsMissingDecoderError reports whether err is, or wraps, a
// MissingDecoderError or a resource.MissingDecoderError.
func IsMissingDecoderError(err error) bool {
	var e *MissingDecoderError
	if errors.As(err, &e) {
		return true
	}
	var re *resource.MissingDecoderError
	return errors.As(err, &re)
}

// IsDependencyError reports whether err is, or wraps, a DependencyError or
// a resource.DependencyError.
func IsDependencyError(err error) bool {
	var e *DependencyError
	if errors.As(err, &e) {
		return true
	}
	var re *resource.DependencyError
	return errors.As(err, &re)
}
