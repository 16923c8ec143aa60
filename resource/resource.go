// Package resource implements the resource-file dialect built atop the
// chunk codec: a file-marker chunk naming the resource's type, an optional
// dependency-declaration chunk, and the chunks a registered writer emits
// for the resource itself.
package resource

import "reflect"

// ID identifies a resource within its originating file system, stable
// across save/load cycles.
type ID uint64

// Resource is anything the dialect can write to, or read back from, a
// chunk file.
type Resource interface {
	// ResourceType identifies which writer/chunk type a resource's own
	// chunks are written/read with.
	ResourceType() reflect.Type
	ResourceID() ID
	// ResourceName is the path-like name a Loader can find this resource
	// under, recorded in a dependent file's load chunk so the resource can
	// be relocated on a later read.
	ResourceName() string
	// ResourceDependencies lists other resources that must be loaded
	// before this one, and are declared in the file's load chunk.
	ResourceDependencies() []Resource
}

// Loader locates and loads a resource by its path-like name, for resolving
// the entries of a file's dependency-declaration chunk.
type Loader interface {
	LoadResource(name string) (Resource, error)
}

// Context accumulates state across a single file's chunk-by-chunk read:
// resources loaded from the dependency chunk (addressable by the id they
// were declared under) and a scratch area generic chunk readers can use to
// pass data forward to the chunks that follow them.
type Context struct {
	Dependencies map[ID]Resource
	Scratch      map[string]any
}

func newContext() *Context {
	return &Context{Dependencies: map[ID]Resource{}, Scratch: map[string]any{}}
}
