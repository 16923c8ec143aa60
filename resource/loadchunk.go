package resource

import (
	"bytes"

	"github.com/kelsonfs/gbvfs/chunk"
)

// chunkTypeResourceLoad is the chunk type of a resource file's optional
// dependency-declaration chunk.
var chunkTypeResourceLoad = chunk.NewType("GBRL")

// Dependency is one entry of a resource file's dependency-declaration
// chunk: the chunk type a dependency must be written/read with, the
// path-like name it is reachable under, and the id it was given when the
// file was written.
type Dependency struct {
	TypeName string
	Name     string
	ID       ID
}

// loadRecord is the fixed-layout on-disk record for one Dependency: two
// offset pointers into the chunk's extra region followed by the id,
// mirroring the original ResourceLoadChunk{type, name, id} layout.
type loadRecord struct {
	TypePtr chunk.Ptr
	NamePtr chunk.Ptr
	ID      uint64
}

func encodeLoadChunk(deps []Dependency) *chunk.Writer {
	w := chunk.NewWriter(chunkTypeResourceLoad, 1)
	w.SetCount(int32(len(deps)))

	type slots struct{ typeSlot, nameSlot int }
	reserved := make([]slots, len(deps))
	for i, dep := range deps {
		typeSlot := w.ReservePtr()
		nameSlot := w.ReservePtr()
		chunk.WriteValue(w, dep.ID)
		reserved[i] = slots{typeSlot, nameSlot}
	}
	for i, dep := range deps {
		typePtr := w.WriteExtra(cString(dep.TypeName))
		w.PatchPtr(reserved[i].typeSlot, typePtr)
		namePtr := w.WriteExtra(cString(dep.Name))
		w.PatchPtr(reserved[i].nameSlot, namePtr)
	}
	return w
}

func decodeLoadChunk(c *chunk.Reader) ([]Dependency, error) {
	records, err := chunk.TypedData[loadRecord](c)
	if err != nil {
		return nil, err
	}
	deps := make([]Dependency, len(records))
	for i, r := range records {
		deps[i] = Dependency{
			TypeName: readCString(c.Resolve(r.TypePtr)),
			Name:     readCString(c.Resolve(r.NamePtr)),
			ID:       ID(r.ID),
		}
	}
	return deps, nil
}

// cString returns s with a trailing NUL, aligned implicitly by the chunk
// writer's extra-region padding.
func cString(s string) []byte {
	return append([]byte(s), 0)
}

func readCString(b []byte) string {
	if b == nil {
		return ""
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
