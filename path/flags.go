// Package path implements the pure, allocation-light path algebra that every
// higher layer of gbvfs builds on: protocol/host/root/filename splitting,
// joining, glob matching, and normalization against a flag set.
package path

// Flags selects which parts of a path are allowed or required by a given
// caller. Each caller picks a combination appropriate to its context;
// a root filesystem path and a host-qualified URL-shaped path normalize
// under different rules even though the grammar is shared.
type Flags uint

const (
	// RequireProtocol means the path must have a protocol.
	RequireProtocol Flags = 1 << iota
	// AllowProtocol means the path may have a protocol.
	AllowProtocol
	// RequireRoot means the path must be a root path (implied by RequireHost).
	RequireRoot
	// RequireHost means the path must have a host (leading // then a segment).
	RequireHost
	// AllowHost means the path may have a host (leading // then a segment).
	AllowHost
	// AllowTrailingSlash means non-root paths may also end in a slash.
	AllowTrailingSlash
	// RequireLowercase means the path must be lower case.
	RequireLowercase
)

// Preset flag combinations matching the common callers in this module.
const (
	LocalFlags    Flags = 0
	URLFlags      Flags = RequireProtocol | RequireHost
	GenericFlags  Flags = AllowProtocol | AllowHost
	ProtocolFlags Flags = RequireProtocol | AllowProtocol
	HostFlags     Flags = AllowHost | RequireHost
)

// Has reports whether any bit of other is set in f.
func (f Flags) Has(other Flags) bool {
	return f&other != 0
}

// String names the flag for use in PathError messages. Zero is reported as
// "none" since it represents a successful normalization.
func (f Flags) String() string {
	switch f {
	case 0:
		return "none"
	case RequireProtocol:
		return "RequireProtocol"
	case AllowProtocol:
		return "AllowProtocol"
	case RequireRoot:
		return "RequireRoot"
	case RequireHost:
		return "RequireHost"
	case AllowHost:
		return "AllowHost"
	case AllowTrailingSlash:
		return "AllowTrailingSlash"
	case RequireLowercase:
		return "RequireLowercase"
	default:
		return "multiple"
	}
}
