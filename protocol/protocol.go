package protocol

// FileProtocol is the contract a backend mounts under a protocol name in a
// FileSystem. A protocol works in terms of its own local paths (the
// protocol prefix, if any, is stripped by the caller before these methods
// run); "protocolName" is passed through only so that paths returned by
// List can be re-qualified by the caller.
//
// Default implements this entire surface in terms of the much smaller
// Basic primitive set; a protocol either embeds Default or implements
// FileProtocol directly when it has a more efficient native algorithm for
// one of these operations (for example a native filesystem can delegate
// CopyFile straight to a single OS-level rename/copy syscall).
type FileProtocol interface {
	// GetFlags reports the capabilities this protocol supports. It must
	// satisfy Flags.Validate().
	GetFlags() Flags

	// GetDefaultNames returns the protocol names FileSystem.Register
	// mounts this protocol under when it is given no names.
	GetDefaultNames() []string

	// GetPathInfo reports what localPath currently refers to.
	GetPathInfo(protocolName, localPath string) Info

	// List enumerates the contents of the folder at localPath. Each
	// returned entry is a path qualified with protocolName, suitable for
	// passing straight back into another FileProtocol/FileSystem call. If
	// pattern is non-empty, only entries whose filename matches it (via
	// path.PathMatchesPattern) are returned. mode controls whether
	// subfolders are walked recursively.
	List(protocolName, localPath, pattern string, mode FolderMode, types PathTypes) ([]string, error)

	// CreateFolder creates the folder at localPath, and any missing parent
	// folders if mode is Recursive. It succeeds without doing anything if
	// the folder already exists.
	CreateFolder(protocolName, localPath string, mode FolderMode) error

	// CopyFolder copies the folder tree rooted at fromPath to toPath,
	// which is created if it does not already exist.
	CopyFolder(protocolName, fromPath, toPath string) error

	// DeleteFolder deletes the folder at localPath. If mode is Normal the
	// folder must already be empty; if Recursive its contents are deleted
	// first. It succeeds without doing anything if the folder does not
	// exist.
	DeleteFolder(protocolName, localPath string, mode FolderMode) error

	// CopyFile copies the file at fromPath to toPath, overwriting it if it
	// already exists.
	CopyFile(protocolName, fromPath, toPath string) error

	// DeleteFile deletes the file at localPath. It succeeds without doing
	// anything if the file does not exist.
	DeleteFile(protocolName, localPath string) error

	// OpenFile opens the file at localPath according to flags, creating it
	// first if flags includes Create and it does not yet exist.
	OpenFile(protocolName, localPath string, flags FileFlags) (RawFile, error)
}

// Basic is the small required surface a protocol must implement; Default
// builds the full FileProtocol surface on top of it. Every Basic* method
// may assume its caller has already validated that the operation is legal
// given the current path state (see Default's doc comments); a Basic
// implementation should not re-derive that state by calling GetPathInfo
// itself unless it specifically needs to.
type Basic interface {
	// GetFlags reports this protocol's capabilities.
	GetFlags() Flags

	// GetDefaultNames returns this protocol's default mount names.
	GetDefaultNames() []string

	// GetPathInfo reports what localPath currently refers to. Must be
	// implemented even if GetFlags does not report the Info capability,
	// in which case it should always report Invalid.
	GetPathInfo(protocolName, localPath string) Info

	// BasicList returns the immediate, protocolName-qualified contents of
	// the folder at localPath, which the caller has already verified
	// exists and is a folder.
	BasicList(protocolName, localPath string) []string

	// BasicCreateFolder creates exactly the single folder at localPath.
	// The caller has already verified the parent folder exists and that
	// localPath itself does not.
	BasicCreateFolder(protocolName, localPath string) bool

	// BasicDeleteFolder deletes exactly the single, already-empty folder
	// at localPath. The caller has already verified it exists and has no
	// children.
	BasicDeleteFolder(protocolName, localPath string) bool

	// BasicCopyFile copies the file at fromPath to toPath. The caller has
	// already verified fromPath is a file and toPath's parent folder
	// exists. DefaultBasicCopyFile implements this generically in terms
	// of BasicOpenFile for protocols with no more efficient native path.
	BasicCopyFile(protocolName, fromPath, toPath string) bool

	// BasicDeleteFile deletes exactly the file at localPath. The caller
	// has already verified it exists.
	BasicDeleteFile(protocolName, localPath string) bool

	// BasicOpenFile opens or creates the file at localPath according to
	// flags. The caller has already resolved whether creation is needed
	// and verified the parent folder exists.
	BasicOpenFile(protocolName, localPath string, flags FileFlags) (RawFile, error)
}

// copyBufferSize is the chunk size DefaultBasicCopyFile reads and writes at
// a time.
const copyBufferSize = 32 * 1024

// DefaultBasicCopyFile implements BasicCopyFile generically by opening both
// files through basic.BasicOpenFile and streaming fixed-size buffers
// between them. Protocols with no cheaper native copy operation can use
// this directly as their BasicCopyFile implementation.
func DefaultBasicCopyFile(basic Basic, protocolName, fromPath, toPath string) bool {
	from, err := basic.BasicOpenFile(protocolName, fromPath, Read)
	if err != nil {
		return false
	}
	defer from.Close()

	to, err := basic.BasicOpenFile(protocolName, toPath, Write|Create|Reset)
	if err != nil {
		return false
	}
	defer to.Close()

	buf := make([]byte, copyBufferSize)
	for {
		n, err := from.Read(buf)
		if n > 0 {
			if _, werr := to.Write(buf[:n]); werr != nil {
				return false
			}
		}
		if err != nil {
			return false
		}
		if n == 0 {
			return true
		}
	}
}
