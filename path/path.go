package path

import "strings"

func isAsciiLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isAsciiDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAsciiAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isAsciiAlnum(c byte) bool { return isAsciiAlpha(c) || isAsciiDigit(c) }
func toAsciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// IsValidProtocolName reports whether name is non-empty and contains only
// lowercase ASCII letters and digits.
func IsValidProtocolName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isAsciiLower(c) && !isAsciiDigit(c) {
			return false
		}
	}
	return true
}

// RemoveProtocol strips a leading "<protocol>:" token from path if flags
// allow protocols and the token is a valid protocol name. It returns the
// remaining path and the protocol found (empty if none). The input path is
// expected to already be normalized.
func RemoveProtocol(p string, flags Flags) (rest, protocol string) {
	if !flags.Has(ProtocolFlags) {
		return p, ""
	}
	pos := strings.IndexByte(p, ':')
	if pos >= 0 && IsValidProtocolName(p[:pos]) {
		return p[pos+1:], p[:pos]
	}
	return p, ""
}

// RemoveRoot strips the protocol (if enabled), the host (if enabled), and
// any leading run of path separators from path. It returns the remaining
// path and the root that was removed. The stored root is terminated in a
// separator only when it is a non-host root path.
func RemoveRoot(p string, flags Flags) (rest, root string) {
	stripped, _ := RemoveProtocol(p, flags)
	protocolPrefixSize := len(p) - len(stripped)
	switch {
	case flags.Has(HostFlags) && strings.HasPrefix(stripped, "//"):
		pos := strings.IndexByte(stripped[2:], '/')
		if pos < 0 {
			stripped = ""
		} else {
			stripped = stripped[2+pos+1:]
		}
	case len(stripped) > 0 && stripped[0] == '/':
		n := 0
		for n < len(stripped) && stripped[n] == '/' {
			n++
		}
		stripped = stripped[n:]
	}
	root = p[:len(p)-len(stripped)]
	if len(root) > protocolPrefixSize+1 && root[len(root)-1] == '/' {
		root = root[:len(root)-1]
	}
	return stripped, root
}

// GetHostName returns the host segment of path if flags allow hosts and one
// is present, or the empty string otherwise.
func GetHostName(p string, flags Flags) string {
	if !flags.Has(HostFlags) {
		return ""
	}
	p, _ = RemoveProtocol(p, flags)
	if !strings.HasPrefix(p, "//") {
		return ""
	}
	p = p[2:]
	pos := strings.IndexByte(p, '/')
	if pos < 0 {
		return p
	}
	return p[:pos]
}

// RemoveFilename splits path into the folder containing it and the
// filename, with protocol/host handled per flags. The resulting folder is
// never separator-terminated unless it is a non-host root path.
func RemoveFilename(p string, flags Flags) (folder, filename string) {
	if p == "" {
		return "", ""
	}
	localPath, root := RemoveRoot(p, flags)
	if localPath == "" {
		return root, ""
	}
	pos := strings.LastIndexByte(localPath, '/')
	if pos >= 0 {
		filename = localPath[pos+1:]
		folder = p[:len(p)-(len(localPath)-pos)]
		return folder, filename
	}
	filename = localPath
	folder = p[:len(p)-len(localPath)]
	if len(folder) > 1 && folder[len(folder)-1] == '/' {
		if strings.LastIndexByte(folder[:len(folder)-1], '/') >= 0 {
			folder = folder[:len(folder)-1]
		}
	}
	return folder, filename
}

// RemoveFolder is the dual of RemoveFilename: it returns the filename and
// the folder that contained it.
func RemoveFolder(p string, flags Flags) (filename, folder string) {
	folder, filename = RemoveFilename(p, flags)
	return filename, folder
}

// IsPathAbsolute reports whether path (after protocol handling) starts with
// a path separator.
func IsPathAbsolute(p string, flags Flags) bool {
	rest, _ := RemoveProtocol(p, flags)
	return len(rest) > 0 && rest[0] == '/'
}

// IsRootPath reports whether path, once its root is removed, has nothing
// left.
func IsRootPath(p string, flags Flags) bool {
	rest, _ := RemoveRoot(p, flags)
	return rest == ""
}

// JoinPath appends pathB to pathA, separating them with a path separator.
// If flags track protocol and/or host, the two paths' protocols/hosts must
// agree (an empty one matches anything); on mismatch JoinPath returns "".
func JoinPath(pathA, pathB string, flags Flags) string {
	var result strings.Builder
	result.Grow(len(pathA) + len(pathB) + 1)

	a, b := pathA, pathB
	if flags.Has(ProtocolFlags) {
		var protoA, protoB string
		a, protoA = RemoveProtocol(a, flags)
		b, protoB = RemoveProtocol(b, flags)
		switch {
		case protoA != "":
			if protoB != "" && protoA != protoB {
				return ""
			}
			result.WriteString(protoA)
			result.WriteByte(':')
		case protoB != "":
			result.WriteString(protoB)
			result.WriteByte(':')
		}
	}

	if flags.Has(HostFlags) {
		hostA := GetHostName(a, flags)
		hostB := GetHostName(b, flags)
		switch {
		case hostA != "":
			if hostB != "" {
				if hostA != hostB {
					return ""
				}
				b = b[len(hostB)+2:]
			}
			a = a[len(hostA)+2:]
			result.WriteString("//")
			result.WriteString(hostA)
			if a == "" && b != "" && b[0] != '/' {
				result.WriteByte('/')
			}
		case hostB != "":
			b = b[len(hostB)+2:]
			result.WriteString("//")
			result.WriteString(hostB)
			if (b != "" && b[0] == '/') || (b == "" && a != "" && a[0] != '/') {
				result.WriteByte('/')
			}
		}
	}

	if a == "" {
		result.WriteString(b)
		return result.String()
	}
	if b != "" && b[0] == '/' {
		b = b[1:]
	}
	if b == "" {
		result.WriteString(a)
		return result.String()
	}
	result.WriteString(a)
	if a[len(a)-1] != '/' {
		result.WriteByte('/')
	}
	result.WriteString(b)
	return result.String()
}

// PathMatchesPattern reports whether path matches pattern in full, where '*'
// in pattern matches zero or more arbitrary characters and is the only
// metacharacter. Matching proceeds as a literal prefix match up to the
// first '*', then matches each following literal run at its leftmost
// occurrence in the remainder of path, except the last run, which must
// end path.
func PathMatchesPattern(p, pattern string) bool {
	pathPos, patternPos := 0, 0
	for pathPos < len(p) && patternPos < len(pattern) && pattern[patternPos] != '*' {
		if p[pathPos] != pattern[patternPos] {
			return false
		}
		pathPos++
		patternPos++
	}
	if patternPos == len(pattern) {
		return pathPos == len(p)
	}
	if pattern[patternPos] != '*' {
		return false
	}

	for patternPos < len(pattern) {
		patternPos++
		subEnd := patternPos
		for subEnd < len(pattern) && pattern[subEnd] != '*' {
			subEnd++
		}
		sub := pattern[patternPos:subEnd]
		patternPos = subEnd
		if sub == "" {
			if patternPos == len(pattern) {
				return true
			}
			continue
		}
		if patternPos == len(pattern) {
			return len(p)-pathPos >= len(sub) && strings.HasSuffix(p, sub)
		}
		idx := strings.Index(p[pathPos:], sub)
		if idx < 0 {
			return false
		}
		pathPos += idx + len(sub)
	}
	return pathPos == len(p)
}

func isSeparatorAt(p string, i, end int) bool {
	return i < end && (p[i] == '\\' || p[i] == '/')
}

func isNonSeparatorAt(p string, i, end int) bool {
	return i < end && p[i] != '\\' && p[i] != '/'
}

// NormalizePath rewrites path into the canonical grammar
// [<protocol>:][//<host> | /[<seg>] | <seg>][/<seg>]...[/] according to
// flags. On success it returns the normalized path and a zero Flags. On
// failure it returns "" and the single flag responsible for the failure.
func NormalizePath(p string, flags Flags) (string, Flags) {
	out := make([]byte, len(p))
	outPos := 0
	in, inEnd := 0, len(p)
	var segments []int

	var protocolSize int
	if flags.Has(ProtocolFlags) {
		if in != inEnd && p[in] == ':' {
			if flags.Has(RequireProtocol) {
				return "", RequireProtocol
			}
			return "", AllowProtocol
		}
		protocolEnd := in
		for protocolEnd != inEnd && isAsciiAlnum(p[protocolEnd]) {
			protocolEnd++
		}
		switch {
		case protocolEnd != inEnd && p[protocolEnd] == ':':
			for in != protocolEnd {
				out[outPos] = toAsciiLower(p[in])
				outPos++
				in++
			}
			out[outPos] = p[in]
			outPos++
			in++
			protocolSize = outPos
		case flags.Has(RequireProtocol):
			return "", RequireProtocol
		default:
			for scan := protocolEnd; isNonSeparatorAt(p, scan, inEnd); scan++ {
				if p[scan] == ':' {
					return "", AllowProtocol
				}
			}
		}
	}

	segmentIsHost := false
	if !isSeparatorAt(p, in, inEnd) {
		if flags.Has(RequireHost) {
			return "", RequireHost
		}
		if flags.Has(RequireRoot) {
			return "", RequireRoot
		}
	} else if flags.Has(HostFlags) {
		in++
		out[outPos] = '/'
		outPos++
		segmentIsHost = isSeparatorAt(p, in, inEnd)
		if flags.Has(RequireHost) && !segmentIsHost {
			return "", RequireHost
		}
	}

	for in < inEnd {
		if isSeparatorAt(p, in, inEnd) {
			out[outPos] = '/'
			outPos++
			in++
			for isSeparatorAt(p, in, inEnd) {
				in++
			}
		}

		if segmentIsHost {
			segmentIsHost = false
			if in == inEnd {
				if flags.Has(RequireHost) {
					return "", RequireHost
				}
				return "", AllowHost
			}
		} else {
			isDotPath := false
		dotLoop:
			for in != inEnd && p[in] == '.' {
				switch {
				case isSeparatorAt(p, in+1, inEnd) || in+1 == inEnd:
					// "." segment: collapse.
					in += 2
					for isSeparatorAt(p, in, inEnd) {
						in++
					}
				case (isSeparatorAt(p, in+2, inEnd) || in+2 == inEnd) && in+1 < inEnd && p[in+1] == '.':
					// ".." segment: collapse against the previous one.
					if len(segments) == 0 {
						isDotPath = true
						break dotLoop
					}
					outPos = segments[len(segments)-1]
					segments = segments[:len(segments)-1]
					in += 3
					for isSeparatorAt(p, in, inEnd) {
						in++
					}
				default:
					// A literal segment that merely starts with '.' (e.g. a
					// dotfile name): stop collapsing, let it fall through to
					// the generic segment-append loop below.
					break dotLoop
				}
			}
			if !isDotPath {
				segments = append(segments, outPos)
			} else if flags.Has(RequireRoot) {
				return "", RequireRoot
			}
		}

		for isNonSeparatorAt(p, in, inEnd) {
			c := p[in]
			if flags.Has(RequireLowercase) && isAsciiAlpha(c) {
				out[outPos] = toAsciiLower(c)
			} else {
				out[outPos] = c
			}
			outPos++
			in++
		}
	}

	result := string(out[:outPos])
	if len(result) > protocolSize+1 && result[len(result)-1] == '/' && !flags.Has(AllowTrailingSlash) {
		result = result[:len(result)-1]
	}
	return result, 0
}
