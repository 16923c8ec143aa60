package gbvfs

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/kelsonfs/gbvfs/chunk"
	"github.com/kelsonfs/gbvfs/protocol"
	"github.com/kelsonfs/gbvfs/protocol/memproto"
	"github.com/kelsonfs/gbvfs/resource"
)

// TestIntegrationFullWorkflow exercises FileSystem, File, chunk, and
// resource together: build a folder tree on one mount, copy it to another,
// open a copied file through the typed File façade, and round-trip a
// dependency-free resource through the chunk codec against the copied
// data.
func TestIntegrationFullWorkflow(t *testing.T) {
	fs := New()
	src, err := memproto.New()
	if err != nil {
		t.Fatalf("memproto.New failed: %v", err)
	}
	dst, err := memproto.New()
	if err != nil {
		t.Fatalf("memproto.New failed: %v", err)
	}
	if err := fs.Register(src, "src"); err != nil {
		t.Fatalf("Register src failed: %v", err)
	}
	if err := fs.Register(dst, "dst"); err != nil {
		t.Fatalf("Register dst failed: %v", err)
	}

	if err := fs.CreateFolder("src:/project/data", protocol.Recursive); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if err := fs.WriteFileString("src:/project/README.txt", "line one\nline two\n"); err != nil {
		t.Fatalf("WriteFileString failed: %v", err)
	}
	if err := fs.WriteFile("src:/project/data/raw.bin", []byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := fs.CopyFolder("src:/project", "dst:/project"); err != nil {
		t.Fatalf("CopyFolder failed: %v", err)
	}

	readme, err := fs.OpenFile("dst:/project/README.txt", protocol.Read)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer readme.Close()
	lines := readme.ReadRemainingLines()
	if len(lines) != 2 || lines[0] != "line one" || lines[1] != "line two" {
		t.Fatalf("got lines %v, want [line one, line two]", lines)
	}

	raw, err := fs.ReadFile("dst:/project/data/raw.bin")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(raw, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("got %v, want [1 2 3 4 5]", raw)
	}

	registry := resource.NewRegistry()
	table := newIntegrationTable(t, registry)
	record := &integrationRecord{id: 42, payload: raw}
	if err := registry.Write(&table.buf, record); err != nil {
		t.Fatalf("registry.Write failed: %v", err)
	}
	if err := fs.WriteFile("dst:/project/data.res", table.buf.Bytes()); err != nil {
		t.Fatalf("WriteFile (resource) failed: %v", err)
	}

	resBytes, err := fs.ReadFile("dst:/project/data.res")
	if err != nil {
		t.Fatalf("ReadFile (resource) failed: %v", err)
	}
	got, err := registry.Read(bytes.NewReader(resBytes), noopLoader{})
	if err != nil {
		t.Fatalf("registry.Read failed: %v", err)
	}
	gotRecord, ok := got.(*integrationRecord)
	if !ok {
		t.Fatalf("got %T, want *integrationRecord", got)
	}
	if gotRecord.id != 42 || !bytes.Equal(gotRecord.payload, raw) {
		t.Fatalf("got record %+v, want id=42 payload=%v", gotRecord, raw)
	}
}

type integrationRecord struct {
	id      uint64
	payload []byte
}

func (r *integrationRecord) ResourceType() reflect.Type                { return reflect.TypeOf(r) }
func (r *integrationRecord) ResourceID() resource.ID                   { return resource.ID(r.id) }
func (r *integrationRecord) ResourceName() string                      { return "integration-record" }
func (r *integrationRecord) ResourceDependencies() []resource.Resource { return nil }

var integrationRecordType = chunk.NewType("INTR")

type integrationTable struct {
	t   *testing.T
	buf bytes.Buffer
}

func newIntegrationTable(t *testing.T, registry *resource.Registry) *integrationTable {
	t.Helper()
	err := registry.RegisterWriter(integrationRecordType, reflect.TypeOf(&integrationRecord{}), func(res resource.Resource) ([]*chunk.Writer, error) {
		r := res.(*integrationRecord)
		w := chunk.NewWriter(integrationRecordType, 1)
		w.SetCount(1)
		chunk.WriteValue(w, r.id)
		slot := w.ReservePtr()
		chunk.WriteValue(w, int32(len(r.payload)))
		ptr := w.WriteExtra(r.payload)
		w.PatchPtr(slot, ptr)
		return []*chunk.Writer{w}, nil
	})
	if err != nil {
		t.Fatalf("RegisterWriter failed: %v", err)
	}
	err = registry.RegisterReader(integrationRecordType, 1, func(c *chunk.Reader, ctx *resource.Context) (resource.Resource, error) {
		type body struct {
			ID   uint64
			Ptr  chunk.Ptr
			Size int32
		}
		records, err := chunk.TypedData[body](c)
		if err != nil {
			return nil, err
		}
		b := records[0]
		payload := c.Resolve(b.Ptr)[:b.Size]
		return &integrationRecord{id: b.ID, payload: payload}, nil
	})
	if err != nil {
		t.Fatalf("RegisterReader failed: %v", err)
	}
	return &integrationTable{t: t}
}

type noopLoader struct{}

func (noopLoader) LoadResource(name string) (resource.Resource, error) {
	return nil, &resource.DependencyError{Message: "no dependencies expected: " + name}
}
