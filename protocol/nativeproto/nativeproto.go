// Package nativeproto implements a FileProtocol rooted in a folder of the
// host operating system's filesystem.
//
// Only regular files and directories are supported; symlinks and other
// special file types are skipped by List and report Invalid from
// GetPathInfo, matching the host filesystem protocol's original design.
package nativeproto

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kelsonfs/gbvfs/protocol"
)

var log = logrus.StandardLogger()

// maxUniqueRootAttempts bounds the retry loop New uses to find a free
// randomly-named root folder.
const maxUniqueRootAttempts = 100

// Config configures a native filesystem protocol.
type Config struct {
	// Root is the local filesystem path this protocol is rooted at. It
	// must be a normalized, absolute or relative path; relative paths are
	// resolved against the process's current working directory.
	Root string

	// UniqueRoot, if true, treats Root as a base path below which a new
	// randomly-named folder is created and used as the actual root.
	UniqueRoot bool

	// DeleteAtExit, if true, causes Close to delete everything under the
	// root; if UniqueRoot is also true, the root folder itself is deleted
	// too.
	DeleteAtExit bool

	// Flags limits which capabilities this protocol reports. The zero
	// value reports every capability.
	Flags protocol.Flags
}

const allFlags = protocol.Info_ | protocol.List | protocol.FolderCreate |
	protocol.FileCreate | protocol.FileRead | protocol.FileWrite

// Protocol is a FileProtocol rooted at a single folder of the native
// filesystem. It is safe for concurrent use; the underlying OS filesystem
// calls provide the thread safety.
type Protocol struct {
	root         string
	uniqueRoot   bool
	deleteAtExit bool
	flags        protocol.Flags
	*protocol.Default
}

// New creates a Protocol rooted at cfg.Root, creating it (or a unique
// folder below it) if necessary.
func New(cfg Config) (*Protocol, error) {
	flags := cfg.Flags
	if flags == 0 {
		flags = allFlags
	}
	if err := flags.Validate(); err != nil {
		return nil, err
	}

	root := filepath.Clean(cfg.Root)
	if cfg.UniqueRoot {
		generated, err := generateUniqueRoot(root)
		if err != nil {
			return nil, err
		}
		root = generated
	} else if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("nativeproto: could not establish root %q: %w", root, err)
	}

	p := &Protocol{
		root:         root,
		uniqueRoot:   cfg.UniqueRoot,
		deleteAtExit: cfg.DeleteAtExit,
		flags:        flags,
	}
	p.Default = protocol.NewDefault(p)
	return p, nil
}

// CreateTemp creates a Protocol rooted at a freshly generated folder under
// the OS temp directory, deleted entirely when Close is called.
func CreateTemp(prefix string) (*Protocol, error) {
	return New(Config{
		Root:         filepath.Join(os.TempDir(), prefix),
		UniqueRoot:   true,
		DeleteAtExit: true,
	})
}

func generateUniqueRoot(base string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil && base != filepath.Dir(base) {
		// base's parent may not exist yet; best effort, Mkdir below reports
		// the real error if this does not help.
	}
	for attempt := 0; attempt < maxUniqueRootAttempts; attempt++ {
		candidate := base + "-" + uuid.NewString()[:8]
		if err := os.Mkdir(candidate, 0755); err == nil {
			return candidate, nil
		} else if !os.IsExist(err) {
			return "", fmt.Errorf("nativeproto: could not create unique root below %q: %w", base, err)
		}
	}
	return "", fmt.Errorf("nativeproto: exhausted %d attempts generating a unique root below %q", maxUniqueRootAttempts, base)
}

// GetRoot returns the local filesystem path this protocol is rooted at,
// which may differ from the configured Root if UniqueRoot was set.
func (p *Protocol) GetRoot() string { return p.root }

// Close deletes the root's contents (and, if configured with UniqueRoot,
// the root folder itself) when DeleteAtExit was set.
func (p *Protocol) Close() error {
	if !p.deleteAtExit {
		return nil
	}
	if p.uniqueRoot {
		return os.RemoveAll(p.root)
	}
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(p.root, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (p *Protocol) nativePath(localPath string) string {
	return filepath.Join(p.root, filepath.FromSlash(localPath))
}

func (p *Protocol) GetFlags() protocol.Flags  { return p.flags }
func (p *Protocol) GetDefaultNames() []string { return nil }

func (p *Protocol) GetPathInfo(protocolName, localPath string) protocol.Info {
	native := p.nativePath(localPath)
	kind, size, ok := statKind(native)
	if !ok {
		return protocol.Info{Type: protocol.Invalid}
	}
	switch kind {
	case kindFolder:
		return protocol.Info{Type: protocol.Folder}
	case kindFile:
		return protocol.Info{Type: protocol.File, Size: size}
	default:
		return protocol.Info{Type: protocol.Invalid}
	}
}

func (p *Protocol) BasicList(protocolName, localPath string) []string {
	native := p.nativePath(localPath)
	entries, err := os.ReadDir(native)
	if err != nil {
		return nil
	}
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		childLocal := localPath
		if childLocal == "" || childLocal[len(childLocal)-1] != '/' {
			childLocal += "/"
		}
		childLocal += entry.Name()
		if _, _, ok := statKind(filepath.Join(native, entry.Name())); !ok {
			continue
		}
		result = append(result, protocolName+":"+childLocal)
	}
	return result
}

func (p *Protocol) BasicCreateFolder(protocolName, localPath string) bool {
	return os.Mkdir(p.nativePath(localPath), 0755) == nil
}

func (p *Protocol) BasicDeleteFolder(protocolName, localPath string) bool {
	return os.Remove(p.nativePath(localPath)) == nil
}

func (p *Protocol) BasicCopyFile(protocolName, fromPath, toPath string) bool {
	from, err := os.Open(p.nativePath(fromPath))
	if err != nil {
		return false
	}
	defer from.Close()

	to, err := os.OpenFile(p.nativePath(toPath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return false
	}
	defer to.Close()

	_, err = io.Copy(to, from)
	return err == nil
}

func (p *Protocol) BasicDeleteFile(protocolName, localPath string) bool {
	return os.Remove(p.nativePath(localPath)) == nil
}

func (p *Protocol) BasicOpenFile(protocolName, localPath string, flags protocol.FileFlags) (protocol.RawFile, error) {
	osFlags := toOsFlags(flags)
	native := p.nativePath(localPath)
	f, err := os.OpenFile(native, osFlags, 0644)
	if err != nil {
		if !os.IsNotExist(err) && !os.IsPermission(err) {
			log.WithFields(logrus.Fields{"path": native}).Error("native filesystem open failed: " + err.Error())
		}
		return nil, err
	}
	return &rawFile{f: f}, nil
}

func toOsFlags(flags protocol.FileFlags) int {
	var osFlags int
	switch {
	case flags.Has(protocol.Read) && flags.Has(protocol.Write):
		osFlags = os.O_RDWR
	case flags.Has(protocol.Write):
		osFlags = os.O_WRONLY
	default:
		osFlags = os.O_RDONLY
	}
	if flags.Has(protocol.Create) {
		osFlags |= os.O_CREATE
	}
	if flags.Has(protocol.Reset) {
		osFlags |= os.O_TRUNC
	}
	return osFlags
}

type rawFile struct {
	f *os.File
}

func (r *rawFile) SeekEnd() (int64, error) { return r.f.Seek(0, io.SeekEnd) }
func (r *rawFile) SeekTo(pos int64) (int64, error) {
	return r.f.Seek(pos, io.SeekStart)
}

func (r *rawFile) Read(buf []byte) (int64, error) {
	n, err := r.f.Read(buf)
	if err == io.EOF {
		err = nil
	}
	return int64(n), err
}

func (r *rawFile) Write(buf []byte) (int64, error) {
	n, err := r.f.Write(buf)
	return int64(n), err
}

func (r *rawFile) Close() error { return r.f.Close() }
