package gbvfs

import (
	"fmt"

	"github.com/kelsonfs/gbvfs/path"
	"github.com/kelsonfs/gbvfs/protocol"
)

// copyBufferSize is the chunk size used when copying a file's bytes across
// two distinct protocols, which cannot rely on a protocol-native copy.
const copyBufferSize = 32 * 1024

// filesystemPathFlags is the normalization every path argument to
// FileSystem's methods is required to satisfy: protocol/host optional,
// root required.
const filesystemPathFlags = path.GenericFlags | path.RequireRoot

// FileSystem is a general filesystem interface implemented by one or more
// named protocols. A protocol need not support every operation; an
// unsupported operation reports a CapabilityError. FileSystem is safe for
// concurrent use once every protocol it will ever serve has been
// registered; registering or changing protocols concurrently with other
// calls is not supported.
type FileSystem struct {
	protocols           map[string]protocol.FileProtocol
	defaultProtocol     protocol.FileProtocol
	defaultProtocolName string
}

// New returns an empty FileSystem with no protocols registered.
func New() *FileSystem {
	return &FileSystem{protocols: make(map[string]protocol.FileProtocol)}
}

// Register mounts p under names, or under p.GetDefaultNames() if names is
// empty. It replaces any protocol previously registered under any of the
// same names.
func (fs *FileSystem) Register(p protocol.FileProtocol, names ...string) error {
	if p == nil {
		return &MountError{Message: "protocol is nil"}
	}
	if len(names) == 0 {
		names = p.GetDefaultNames()
	}
	if len(names) == 0 {
		return &MountError{Message: "protocol declares no default names"}
	}
	if err := p.GetFlags().Validate(); err != nil {
		return &MountError{Message: "protocol flags are invalid", Err: err}
	}
	for _, name := range names {
		if !path.IsValidProtocolName(name) {
			return &MountError{Protocol: name, Message: "invalid protocol name"}
		}
	}
	for _, name := range names {
		fs.protocols[name] = p
	}
	return nil
}

// IsRegistered reports whether a protocol is mounted under name.
func (fs *FileSystem) IsRegistered(name string) bool {
	_, ok := fs.protocols[name]
	return ok
}

// ProtocolNames returns every name a protocol is currently mounted under.
func (fs *FileSystem) ProtocolNames() []string {
	names := make([]string, 0, len(fs.protocols))
	for name := range fs.protocols {
		names = append(names, name)
	}
	return names
}

// SetDefaultProtocol makes the protocol mounted under name the one used for
// paths with no explicit protocol prefix.
func (fs *FileSystem) SetDefaultProtocol(name string) error {
	p, ok := fs.protocols[name]
	if !ok {
		return &MountError{Protocol: name, Message: "not registered"}
	}
	fs.defaultProtocol = p
	fs.defaultProtocolName = name
	return nil
}

// DefaultProtocolName returns the name set by SetDefaultProtocol, or "" if
// none has been set.
func (fs *FileSystem) DefaultProtocolName() string { return fs.defaultProtocolName }

// GetFlags returns the capability flags of the protocol mounted under name,
// or the zero Flags if none is.
func (fs *FileSystem) GetFlags(name string) protocol.Flags {
	if p, ok := fs.protocols[name]; ok {
		return p.GetFlags()
	}
	return 0
}

func normalize(p string) (string, error) {
	normalized, failed := path.NormalizePath(p, filesystemPathFlags)
	if normalized == "" {
		return "", &PathError{Path: p, Flags: failed}
	}
	return normalized, nil
}

// getProtocol strips p's protocol prefix (falling back to the default
// protocol when none is present) and returns the remaining local path, the
// resolved protocol name, and the protocol itself.
func (fs *FileSystem) getProtocol(p string) (localPath, protocolName string, proto protocol.FileProtocol) {
	localPath, protocolName = path.RemoveProtocol(p, path.ProtocolFlags)
	if protocolName == "" {
		return localPath, fs.defaultProtocolName, fs.defaultProtocol
	}
	return localPath, protocolName, fs.protocols[protocolName]
}

func (fs *FileSystem) resolve(p string, required protocol.Flags) (localPath, protocolName string, proto protocol.FileProtocol, err error) {
	normalized, err := normalize(p)
	if err != nil {
		return "", "", nil, err
	}
	localPath, protocolName, proto = fs.getProtocol(normalized)
	if proto == nil {
		return "", "", nil, &MountError{Protocol: protocolName, Message: "no protocol registered"}
	}
	if required != 0 && !proto.GetFlags().Has(required) {
		return "", "", nil, &CapabilityError{Protocol: protocolName, Operation: required.String()}
	}
	return localPath, protocolName, proto, nil
}

// List returns every file and folder under p whose name matches pattern
// ("" matches everything), descending into subfolders when mode is
// Recursive.
func (fs *FileSystem) List(p, pattern string, mode protocol.FolderMode) ([]string, error) {
	return fs.list(p, pattern, mode, protocol.AllPathTypes)
}

// ListFolders is List restricted to folders.
func (fs *FileSystem) ListFolders(p, pattern string, mode protocol.FolderMode) ([]string, error) {
	return fs.list(p, pattern, mode, protocol.FolderPathType)
}

// ListFiles is List restricted to files.
func (fs *FileSystem) ListFiles(p, pattern string, mode protocol.FolderMode) ([]string, error) {
	return fs.list(p, pattern, mode, protocol.FilePathType)
}

func (fs *FileSystem) list(p, pattern string, mode protocol.FolderMode, types protocol.PathTypes) ([]string, error) {
	localPath, protocolName, proto, err := fs.resolve(p, protocol.List)
	if err != nil {
		return nil, err
	}
	return proto.List(protocolName, localPath, pattern, mode, types)
}

// CreateFolder creates p. If mode is Recursive, missing ancestors are
// created too. Creating a folder that already exists succeeds.
func (fs *FileSystem) CreateFolder(p string, mode protocol.FolderMode) error {
	localPath, protocolName, proto, err := fs.resolve(p, protocol.FolderCreate)
	if err != nil {
		return err
	}
	return proto.CreateFolder(protocolName, localPath, mode)
}

// DeleteFolder deletes p. If mode is Recursive, its contents are deleted
// too; otherwise a non-empty folder fails. A missing path succeeds.
func (fs *FileSystem) DeleteFolder(p string, mode protocol.FolderMode) error {
	localPath, protocolName, proto, err := fs.resolve(p, protocol.FolderCreate)
	if err != nil {
		return err
	}
	return proto.DeleteFolder(protocolName, localPath, mode)
}

// DeleteFile deletes p. A missing path succeeds.
func (fs *FileSystem) DeleteFile(p string) error {
	localPath, protocolName, proto, err := fs.resolve(p, protocol.FileCreate)
	if err != nil {
		return err
	}
	return proto.DeleteFile(protocolName, localPath)
}

// GetPathInfo reports what p is: a file, a folder, or Invalid if it
// does not exist or cannot be queried.
func (fs *FileSystem) GetPathInfo(p string) protocol.Info {
	localPath, protocolName, proto, err := fs.resolve(p, protocol.Info_)
	if err != nil {
		return protocol.Info{Type: protocol.Invalid}
	}
	return proto.GetPathInfo(protocolName, localPath)
}

// IsValidPath reports whether p exists as either a file or a folder.
func (fs *FileSystem) IsValidPath(p string) bool { return fs.GetPathInfo(p).Type != protocol.Invalid }

// IsValidFolder reports whether p exists and is a folder.
func (fs *FileSystem) IsValidFolder(p string) bool { return fs.GetPathInfo(p).Type == protocol.Folder }

// IsValidFile reports whether p exists and is a file.
func (fs *FileSystem) IsValidFile(p string) bool { return fs.GetPathInfo(p).Type == protocol.File }

// CopyFolder copies every file and subfolder under fromPath into toPath.
// If the two paths resolve to different protocols (or different mounts of
// the same protocol), the copy streams through this process rather than
// relying on a protocol-native copy; a mid-copy failure leaves whatever was
// already copied in place.
func (fs *FileSystem) CopyFolder(fromPath, toPath string) error {
	fromLocal, fromName, fromProto, err := fs.resolve(fromPath, 0)
	if err != nil {
		return err
	}
	toLocal, toName, toProto, err := fs.resolve(toPath, 0)
	if err != nil {
		return err
	}

	toFlags := fromProto.GetFlags()
	if fromProto != toProto {
		toFlags = toProto.GetFlags()
	}
	if !toFlags.Has(protocol.FolderCreate) {
		return &CapabilityError{Protocol: toName, Operation: "FolderCreate"}
	}

	if fromProto != toProto || fromName != toName {
		fromFlags := fromProto.GetFlags()
		if !fromFlags.Has(protocol.FileRead|protocol.List) ||
			!toFlags.Has(protocol.FolderCreate|protocol.FileCreate|protocol.FileWrite) {
			return &CapabilityError{Protocol: fromName, Operation: "cross-protocol CopyFolder"}
		}
		return fs.genericCopyFolder(fromName, fromProto, fromLocal, toName, toProto, toLocal)
	}

	if path.IsRootPath(fromLocal, path.GenericFlags) || fromLocal == toLocal ||
		(len(toLocal) > len(fromLocal) && toLocal[:len(fromLocal)] == fromLocal && toLocal[len(fromLocal)] == '/') {
		return &ConflictError{Path: toPath, Message: "cannot copy a folder into itself or its own descendant"}
	}
	return fromProto.CopyFolder(fromName, fromLocal, toLocal)
}

// CopyFile copies fromPath to toPath, overwriting any existing file at
// toPath. Copying a file onto a folder always fails.
func (fs *FileSystem) CopyFile(fromPath, toPath string) error {
	fromLocal, fromName, fromProto, err := fs.resolve(fromPath, 0)
	if err != nil {
		return err
	}
	toLocal, toName, toProto, err := fs.resolve(toPath, 0)
	if err != nil {
		return err
	}

	toFlags := fromProto.GetFlags()
	if fromProto != toProto {
		toFlags = toProto.GetFlags()
	}
	if !toFlags.Has(protocol.FileCreate) {
		return &CapabilityError{Protocol: toName, Operation: "FileCreate"}
	}
	if fromProto != toProto || fromName != toName {
		fromFlags := fromProto.GetFlags()
		if !fromFlags.Has(protocol.FileRead) || !toFlags.Has(protocol.FileCreate|protocol.FileWrite) {
			return &CapabilityError{Protocol: fromName, Operation: "cross-protocol CopyFile"}
		}
		return fs.genericCopyFile(fromName, fromProto, fromLocal, toName, toProto, toLocal)
	}
	return fromProto.CopyFile(fromName, fromLocal, toLocal)
}

func (fs *FileSystem) genericCopyFolder(fromName string, fromProto protocol.FileProtocol, fromPath string, toName string, toProto protocol.FileProtocol, toPath string) error {
	if err := toProto.CreateFolder(toName, toPath, protocol.Normal); err != nil {
		return err
	}

	files, err := fromProto.List(fromName, fromPath, "", protocol.Normal, protocol.FilePathType)
	if err != nil {
		return err
	}
	folders, err := fromProto.List(fromName, fromPath, "", protocol.Normal, protocol.FolderPathType)
	if err != nil {
		return err
	}

	for _, entry := range files {
		bare, _ := path.RemoveProtocol(entry, path.ProtocolFlags)
		_, filename := path.RemoveFilename(bare, path.GenericFlags)
		dest := path.JoinPath(toPath, filename, path.GenericFlags)
		if err := fs.genericCopyFile(fromName, fromProto, bare, toName, toProto, dest); err != nil {
			return err
		}
	}
	for _, entry := range folders {
		bare, _ := path.RemoveProtocol(entry, path.ProtocolFlags)
		_, filename := path.RemoveFilename(bare, path.GenericFlags)
		dest := path.JoinPath(toPath, filename, path.GenericFlags)
		if err := fs.genericCopyFolder(fromName, fromProto, bare, toName, toProto, dest); err != nil {
			return err
		}
	}
	return nil
}

func (fs *FileSystem) genericCopyFile(fromName string, fromProto protocol.FileProtocol, fromPath string, toName string, toProto protocol.FileProtocol, toPath string) error {
	fromRaw, err := fromProto.OpenFile(fromName, fromPath, protocol.Read)
	if err != nil {
		return &IOError{Operation: "open", Path: fromPath, Err: err}
	}
	defer fromRaw.Close()

	toRaw, err := toProto.OpenFile(toName, toPath, protocol.Create|protocol.Reset|protocol.Write)
	if err != nil {
		return &IOError{Operation: "open", Path: toPath, Err: err}
	}
	defer toRaw.Close()

	var buf [copyBufferSize]byte
	for {
		n, err := fromRaw.Read(buf[:])
		if err != nil {
			return &IOError{Operation: "read", Path: fromPath, Err: err}
		}
		if n > 0 {
			if _, err := toRaw.Write(buf[:n]); err != nil {
				return &IOError{Operation: "write", Path: toPath, Err: err}
			}
		}
		if n < copyBufferSize {
			return nil
		}
	}
}

// OpenFile opens p with flags, dispatching to the resolved protocol and
// wrapping the result in the typed File façade.
func (fs *FileSystem) OpenFile(p string, flags protocol.FileFlags) (*File, error) {
	if err := flags.Validate(); err != nil {
		return nil, err
	}
	var required protocol.Flags
	if flags.Has(protocol.Read) {
		required |= protocol.FileRead
	}
	if flags.Has(protocol.Write) {
		required |= protocol.FileWrite
	}
	if flags.Has(protocol.Create) {
		required |= protocol.FileCreate
	}
	localPath, protocolName, proto, err := fs.resolve(p, required)
	if err != nil {
		return nil, err
	}
	raw, err := proto.OpenFile(protocolName, localPath, flags)
	if err != nil {
		return nil, &IOError{Operation: "open", Path: p, Err: err}
	}
	return newFile(raw, flags), nil
}

// newFileFlags are the flags used by the WriteFile/WriteFileString
// convenience wrappers: create (or truncate) for writing.
const newFileFlags = protocol.Create | protocol.Reset | protocol.Write

// readFileFlags are the flags used by the ReadFile/ReadFileString
// convenience wrappers.
const readFileFlags = protocol.Read

// WriteFile opens p for writing (creating or truncating it) and writes
// buffer in full.
func (fs *FileSystem) WriteFile(p string, buffer []byte) error {
	f, err := fs.OpenFile(p, newFileFlags)
	if err != nil {
		return err
	}
	defer f.Close()
	if n := f.Write(buffer); n != int64(len(buffer)) {
		return &IOError{Operation: "write", Path: p, Err: fmt.Errorf("wrote %d of %d bytes", n, len(buffer))}
	}
	return nil
}

// WriteFileString is WriteFile for a string buffer.
func (fs *FileSystem) WriteFileString(p, buffer string) error {
	return fs.WriteFile(p, []byte(buffer))
}

// ReadFile opens p for reading and returns its entire contents.
func (fs *FileSystem) ReadFile(p string) ([]byte, error) {
	f, err := fs.OpenFile(p, readFileFlags)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadRemaining(), nil
}

// ReadFileString is ReadFile returning a string.
func (fs *FileSystem) ReadFileString(p string) (string, error) {
	f, err := fs.OpenFile(p, readFileFlags)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return f.ReadRemainingString(), nil
}
