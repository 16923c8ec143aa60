//go:build unix

package nativeproto

import "golang.org/x/sys/unix"

type pathKind int

const (
	kindInvalid pathKind = iota
	kindFile
	kindFolder
)

// statKind reports what native currently is, using a raw lstat so
// symlinks and other special file types (sockets, devices, FIFOs) are
// identified without following them, rather than being reported as
// regular files.
func statKind(native string) (pathKind, int64, bool) {
	var st unix.Stat_t
	if err := unix.Lstat(native, &st); err != nil {
		return kindInvalid, 0, false
	}
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return kindFolder, 0, true
	case unix.S_IFREG:
		return kindFile, st.Size, true
	default:
		return kindInvalid, 0, false
	}
}
