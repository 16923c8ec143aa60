package protocol

import (
	"fmt"

	"github.com/kelsonfs/gbvfs/path"
)

// Default implements the full FileProtocol surface on top of a Basic
// backend, following the generic algorithms every protocol shares: walking
// folders to list or delete them, checking parent-folder existence before
// creating a child, clearing a redundant Create flag, and so on. A backend
// that can do better than one of these algorithms (an OS rename instead of
// a recursive copy-then-delete, say) implements FileProtocol directly for
// just that method and embeds Default for the rest.
type Default struct {
	basic Basic
}

// NewDefault returns a FileProtocol that dispatches every operation to
// basic's generic default algorithm.
func NewDefault(basic Basic) *Default {
	return &Default{basic: basic}
}

func (d *Default) GetFlags() Flags            { return d.basic.GetFlags() }
func (d *Default) GetDefaultNames() []string  { return d.basic.GetDefaultNames() }
func (d *Default) GetPathInfo(protocolName, localPath string) Info {
	return d.basic.GetPathInfo(protocolName, localPath)
}

func folderOf(p string) string {
	folder, _ := path.RemoveFilename(p, path.GenericFlags)
	return folder
}

func filenameOf(p string) string {
	_, filename := path.RemoveFilename(p, path.GenericFlags)
	return filename
}

func stripProtocol(p string) string {
	rest, _ := path.RemoveProtocol(p, path.ProtocolFlags)
	return rest
}

// List walks localPath's contents breadth-first, following subfolders when
// mode is Recursive, and returns every entry whose type is in types and
// whose filename matches pattern (pattern "" matches everything).
func (d *Default) List(protocolName, localPath, pattern string, mode FolderMode, types PathTypes) ([]string, error) {
	if d.basic.GetPathInfo(protocolName, localPath).Type != Folder {
		return nil, fmt.Errorf("protocol: %q is not a folder", localPath)
	}

	var result []string
	worklist := d.basic.BasicList(protocolName, localPath)
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		currentPath := stripProtocol(current)
		info := d.basic.GetPathInfo(protocolName, currentPath)

		if info.Type == Folder && mode == Recursive {
			worklist = append(worklist, d.basic.BasicList(protocolName, currentPath)...)
		}
		if !types.Has(info.Type) {
			continue
		}
		if pattern != "" && !path.PathMatchesPattern(filenameOf(currentPath), pattern) {
			continue
		}
		result = append(result, current)
	}
	return result, nil
}

// CreateFolder creates localPath. If it already exists as a folder this is
// a no-op success; if it exists as a file this fails. In Normal mode the
// parent folder must already exist; in Recursive mode missing ancestors
// are created from the top down.
func (d *Default) CreateFolder(protocolName, localPath string, mode FolderMode) error {
	info := d.basic.GetPathInfo(protocolName, localPath)
	if info.Type != Invalid {
		if info.Type != Folder {
			return fmt.Errorf("protocol: %q already exists and is not a folder", localPath)
		}
		return nil
	}

	if mode == Normal {
		if d.basic.GetPathInfo(protocolName, folderOf(localPath)).Type != Folder {
			return fmt.Errorf("protocol: parent of %q does not exist", localPath)
		}
		if !d.basic.BasicCreateFolder(protocolName, localPath) {
			return fmt.Errorf("protocol: failed to create folder %q", localPath)
		}
		return nil
	}

	missing := []string{localPath}
	walk := localPath
	for {
		walk = folderOf(walk)
		info = d.basic.GetPathInfo(protocolName, walk)
		if info.Type != Invalid {
			break
		}
		missing = append(missing, walk)
	}
	if info.Type != Folder {
		return fmt.Errorf("protocol: ancestor of %q is not a folder", localPath)
	}
	for i := len(missing) - 1; i >= 0; i-- {
		if !d.basic.BasicCreateFolder(protocolName, missing[i]) {
			return fmt.Errorf("protocol: failed to create folder %q", missing[i])
		}
	}
	return nil
}

// CopyFolder copies every file and subfolder under fromPath into toPath,
// creating toPath first if necessary.
func (d *Default) CopyFolder(protocolName, fromPath, toPath string) error {
	if d.basic.GetPathInfo(protocolName, fromPath).Type != Folder {
		return fmt.Errorf("protocol: %q is not a folder", fromPath)
	}
	toInfo := d.basic.GetPathInfo(protocolName, toPath)
	if toInfo.Type != Invalid && toInfo.Type != Folder {
		return fmt.Errorf("protocol: %q already exists and is not a folder", toPath)
	}
	if toInfo.Type == Invalid {
		if err := d.CreateFolder(protocolName, toPath, Normal); err != nil {
			return err
		}
	}

	files, err := d.List(protocolName, fromPath, "", Normal, FilePathType)
	if err != nil {
		return err
	}
	for _, f := range files {
		bare := stripProtocol(f)
		dest := path.JoinPath(toPath, filenameOf(bare), path.GenericFlags)
		if err := d.CopyFile(protocolName, bare, dest); err != nil {
			return err
		}
	}

	folders, err := d.List(protocolName, fromPath, "", Normal, FolderPathType)
	if err != nil {
		return err
	}
	for _, sub := range folders {
		bare := stripProtocol(sub)
		dest := path.JoinPath(toPath, filenameOf(bare), path.GenericFlags)
		if err := d.CopyFolder(protocolName, bare, dest); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFolder deletes localPath, refusing to delete a protocol's root. In
// Normal mode the folder must be empty; in Recursive mode its contents are
// deleted children-first.
func (d *Default) DeleteFolder(protocolName, localPath string, mode FolderMode) error {
	info := d.basic.GetPathInfo(protocolName, localPath)
	if info.Type != Folder {
		if info.Type == Invalid {
			return nil
		}
		return fmt.Errorf("protocol: %q is not a folder", localPath)
	}
	if path.IsRootPath(localPath, path.GenericFlags) {
		return fmt.Errorf("protocol: cannot delete root folder %q", localPath)
	}

	folders, err := d.List(protocolName, localPath, "", Normal, FolderPathType)
	if err != nil {
		return err
	}
	files, err := d.List(protocolName, localPath, "", Normal, FilePathType)
	if err != nil {
		return err
	}
	if mode == Normal && (len(folders) > 0 || len(files) > 0) {
		return fmt.Errorf("protocol: folder %q is not empty", localPath)
	}

	for _, sub := range folders {
		if err := d.DeleteFolder(protocolName, stripProtocol(sub), mode); err != nil {
			return err
		}
	}
	for _, f := range files {
		if err := d.DeleteFile(protocolName, stripProtocol(f)); err != nil {
			return err
		}
	}

	if !d.basic.BasicDeleteFolder(protocolName, localPath) {
		return fmt.Errorf("protocol: failed to delete folder %q", localPath)
	}
	return nil
}

// CopyFile copies fromPath to toPath, overwriting toPath if it is already
// a file. Copying a file onto itself succeeds without doing any work.
func (d *Default) CopyFile(protocolName, fromPath, toPath string) error {
	if d.basic.GetPathInfo(protocolName, fromPath).Type != File {
		return fmt.Errorf("protocol: %q is not a file", fromPath)
	}
	toInfo := d.basic.GetPathInfo(protocolName, toPath)
	switch {
	case toInfo.Type == Folder:
		return fmt.Errorf("protocol: %q already exists and is a folder", toPath)
	case toInfo.Type == Invalid && d.basic.GetPathInfo(protocolName, folderOf(toPath)).Type != Folder:
		return fmt.Errorf("protocol: parent of %q does not exist", toPath)
	case fromPath == toPath:
		return nil
	}
	if !d.basic.BasicCopyFile(protocolName, fromPath, toPath) {
		return fmt.Errorf("protocol: failed to copy %q to %q", fromPath, toPath)
	}
	return nil
}

// DeleteFile deletes localPath. It succeeds without doing anything if the
// file does not exist.
func (d *Default) DeleteFile(protocolName, localPath string) error {
	info := d.basic.GetPathInfo(protocolName, localPath)
	if info.Type != File {
		if info.Type == Invalid {
			return nil
		}
		return fmt.Errorf("protocol: %q is not a file", localPath)
	}
	if !d.basic.BasicDeleteFile(protocolName, localPath) {
		return fmt.Errorf("protocol: failed to delete file %q", localPath)
	}
	return nil
}

// OpenFile opens localPath. A Folder path is always rejected. A missing
// path requires flags.Create and an existing parent folder. An existing
// file silently drops a redundant Create flag before delegating.
func (d *Default) OpenFile(protocolName, localPath string, flags FileFlags) (RawFile, error) {
	info := d.basic.GetPathInfo(protocolName, localPath)
	switch info.Type {
	case Folder:
		return nil, fmt.Errorf("protocol: %q is a folder", localPath)
	case Invalid:
		if !flags.Has(Create) {
			return nil, fmt.Errorf("protocol: %q does not exist", localPath)
		}
		if d.basic.GetPathInfo(protocolName, folderOf(localPath)).Type != Folder {
			return nil, fmt.Errorf("protocol: parent of %q does not exist", localPath)
		}
	default:
		flags &^= Create
	}
	return d.basic.BasicOpenFile(protocolName, localPath, flags)
}
