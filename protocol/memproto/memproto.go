// Package memproto implements an in-memory FileProtocol backed by
// github.com/absfs/memfs, for scratch mounts and tests that should not
// touch the native filesystem.
package memproto

import (
	"io"
	"os"

	"github.com/absfs/memfs"

	"github.com/kelsonfs/gbvfs/protocol"
)

// Protocol is an in-memory FileProtocol. All state lives in the process;
// nothing is persisted across restarts.
type Protocol struct {
	fs      *memfs.FileSystem
	flags   protocol.Flags
	*protocol.Default
}

// New creates an empty in-memory protocol with full read/write/create
// capabilities.
func New() (*Protocol, error) {
	fs, err := memfs.NewFS()
	if err != nil {
		return nil, err
	}
	p := &Protocol{
		fs: fs,
		flags: protocol.Info_ | protocol.List | protocol.FolderCreate |
			protocol.FileCreate | protocol.FileRead | protocol.FileWrite,
	}
	p.Default = protocol.NewDefault(p)
	return p, nil
}

func (p *Protocol) GetFlags() protocol.Flags   { return p.flags }
func (p *Protocol) GetDefaultNames() []string  { return nil }

func (p *Protocol) GetPathInfo(protocolName, localPath string) protocol.Info {
	info, err := p.fs.Stat(localPath)
	if err != nil {
		return protocol.Info{Type: protocol.Invalid}
	}
	if info.IsDir() {
		return protocol.Info{Type: protocol.Folder}
	}
	return protocol.Info{Type: protocol.File, Size: info.Size()}
}

func (p *Protocol) BasicList(protocolName, localPath string) []string {
	f, err := p.fs.Open(localPath)
	if err != nil {
		return nil
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil
	}
	result := make([]string, 0, len(names))
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		joined := localPath
		if joined == "" || joined[len(joined)-1] != '/' {
			joined += "/"
		}
		joined += name
		result = append(result, protocolName+":"+joined)
	}
	return result
}

func (p *Protocol) BasicCreateFolder(protocolName, localPath string) bool {
	return p.fs.Mkdir(localPath, 0755) == nil
}

func (p *Protocol) BasicDeleteFolder(protocolName, localPath string) bool {
	return p.fs.Remove(localPath) == nil
}

func (p *Protocol) BasicCopyFile(protocolName, fromPath, toPath string) bool {
	return protocol.DefaultBasicCopyFile(p, protocolName, fromPath, toPath)
}

func (p *Protocol) BasicDeleteFile(protocolName, localPath string) bool {
	return p.fs.Remove(localPath) == nil
}

func (p *Protocol) BasicOpenFile(protocolName, localPath string, flags protocol.FileFlags) (protocol.RawFile, error) {
	osFlags := toOsFlags(flags)
	f, err := p.fs.OpenFile(localPath, osFlags, 0644)
	if err != nil {
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

// rawFile adapts memfs's absfs.File (a Reader/Writer/Seeker/Closer) to
// protocol.RawFile's absolute-position Read/Write/SeekTo contract.
type rawFile struct {
	f interface {
		Read([]byte) (int, error)
		Write([]byte) (int, error)
		Seek(offset int64, whence int) (int64, error)
		Close() error
	}
}

func (r *rawFile) SeekEnd() (int64, error) {
	return r.f.Seek(0, io.SeekEnd)
}

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

func (r *rawFile) Close() error {
	return r.f.Close()
}
