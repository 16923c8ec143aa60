// Package gbvfs provides a protocol-pluggable virtual filesystem, a typed
// fixed-record file façade over it, and a companion binary chunk codec used
// for structured data files and resource serialization.
//
// # Overview
//
// gbvfs's FileSystem mounts one or more named FileProtocol backends (an
// in-memory protocol and a native-OS protocol ship in protocol/memproto and
// protocol/nativeproto) and dispatches every path-based operation to
// whichever protocol a path's prefix names, falling back to a default
// protocol for unprefixed paths. A protocol declares the capabilities it
// supports (listing, folder/file creation, reading, writing); operations
// against an unsupported capability return a CapabilityError rather than
// panicking or silently no-op'ing.
//
// # Supported Protocols
//
//   - memproto: an in-memory protocol backed by github.com/absfs/memfs,
//     useful for tests and ephemeral working sets.
//   - nativeproto: a thin wrapper over one folder of the host filesystem
//     that skips symlinks and special files when listing.
//
// Neither protocol declares default names, so each is mounted under the
// names passed to Register (for example "mem").
//
// Both protocols implement the same FileProtocol contract, so application
// code written against FileSystem is protocol-agnostic; cross-protocol
// CopyFile/CopyFolder stream bytes through the process when the source and
// destination protocols differ.
//
// # Basic Usage
//
//	fs := gbvfs.New()
//	mem, _ := memproto.New()
//	fs.Register(mem, "mem")
//	fs.SetDefaultProtocol("mem")
//
//	fs.CreateFolder("mem:/data", protocol.Normal)
//	fs.WriteFileString("mem:/data/note.txt", "hello")
//
//	f, err := fs.OpenFile("mem:/data/note.txt", protocol.Read)
//	if err != nil {
//	    panic(err)
//	}
//	defer f.Close()
//
// # Chunk Codec
//
// The chunk package implements a tagged-union binary container: each chunk
// is a 16-byte little-endian header (a 4-byte type tag, a version, a body
// size, and a record count) followed by an 8-byte-aligned body. A chunk's body may
// reference variable-length data in an "extra region" addressed by 32-bit
// offsets (chunk.Ptr); chunk.Reader.Resolve is the only place such a
// pointer is ever turned into a byte slice. The resource package builds a
// small dependency-aware file dialect on top of this codec: a file begins
// with a marker chunk, optionally declares named dependencies through a
// load chunk, and ends with exactly one chunk of the file's declared type.
//
// # Error Handling
//
// Operations return one of a small set of typed errors (PathError,
// MountError, CapabilityError, NotFoundError, ConflictError, IOError,
// FormatError, MissingDecoderError, DependencyError); the package also
// exposes Is*Error helpers that unwrap through errors.As so callers can
// branch on error kind without importing the chunk or resource packages
// directly.
//
// # Concurrency
//
// FileSystem is safe for concurrent use once every protocol it will ever
// serve has been registered; registering or replacing a protocol
// concurrently with other calls on the same FileSystem is not supported.
// There is no context.Context-based cancellation: a blocking protocol call
// (for example a stalled native-filesystem read) can only be interrupted at
// the OS level, by the caller.
package gbvfs
