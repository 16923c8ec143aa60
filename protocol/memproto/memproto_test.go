package memproto

import (
	"testing"

	"github.com/kelsonfs/gbvfs/protocol"
)

func TestMemprotoBasicRoundTrip(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := p.CreateFolder("mem", "/data", protocol.Normal); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	rf, err := p.OpenFile("mem", "/data/note.txt", protocol.Write|protocol.Create)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if _, err := rf.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	rf.Close()

	info := p.GetPathInfo("mem", "/data/note.txt")
	if info.Type != protocol.File || info.Size != 11 {
		t.Fatalf("GetPathInfo = %+v, want File/11", info)
	}

	entries, err := p.List("mem", "/data", "", protocol.Normal, protocol.AllPathTypes)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0] != "mem:/data/note.txt" {
		t.Fatalf("List = %v, want [mem:/data/note.txt]", entries)
	}

	rf2, err := p.OpenFile("mem", "/data/note.txt", protocol.Read)
	if err != nil {
		t.Fatalf("reopen for read failed: %v", err)
	}
	defer rf2.Close()
	buf := make([]byte, 32)
	n, err := rf2.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(buf[:n]) != "hello world" {
		t.Fatalf("Read = %q, want %q", buf[:n], "hello world")
	}
}

func TestMemprotoDeleteFile(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rf, err := p.OpenFile("mem", "/x.txt", protocol.Write|protocol.Create)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	rf.Close()

	if err := p.DeleteFile("mem", "/x.txt"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if p.GetPathInfo("mem", "/x.txt").Type != protocol.Invalid {
		t.Fatalf("expected /x.txt to be gone")
	}
}
