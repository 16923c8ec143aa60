package gbvfs

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/kelsonfs/gbvfs/chunk"
	"github.com/kelsonfs/gbvfs/protocol/memproto"
)

func formatSize(size int) string {
	if size < 1024 {
		return fmt.Sprintf("%dB", size)
	}
	if size < 1024*1024 {
		return fmt.Sprintf("%dKB", size/1024)
	}
	return fmt.Sprintf("%dMB", size/(1024*1024))
}

// BenchmarkFileSystemWriteFile measures throughput of WriteFile against the
// in-memory protocol at a range of payload sizes.
func BenchmarkFileSystemWriteFile(b *testing.B) {
	sizes := []int{1024, 64 * 1024, 1024 * 1024}
	for _, size := range sizes {
		b.Run(formatSize(size), func(b *testing.B) {
			benchmarkWriteFile(b, size)
		})
	}
}

func benchmarkWriteFile(b *testing.B, size int) {
	fs := New()
	mem, err := memproto.New()
	if err != nil {
		b.Fatalf("memproto.New failed: %v", err)
	}
	if err := fs.Register(mem, "mem"); err != nil {
		b.Fatalf("Register failed: %v", err)
	}
	fs.SetDefaultProtocol("mem")
	data := make([]byte, size)

	b.ResetTimer()
	b.SetBytes(int64(size))
	for i := 0; i < b.N; i++ {
		if err := fs.WriteFile("mem:/bench.bin", data); err != nil {
			b.Fatalf("WriteFile failed: %v", err)
		}
	}
}

// BenchmarkFileSystemReadFile measures ReadFile throughput once a file of
// the given size already exists.
func BenchmarkFileSystemReadFile(b *testing.B) {
	sizes := []int{1024, 64 * 1024, 1024 * 1024}
	for _, size := range sizes {
		b.Run(formatSize(size), func(b *testing.B) {
			benchmarkReadFile(b, size)
		})
	}
}

func benchmarkReadFile(b *testing.B, size int) {
	fs := New()
	mem, err := memproto.New()
	if err != nil {
		b.Fatalf("memproto.New failed: %v", err)
	}
	if err := fs.Register(mem, "mem"); err != nil {
		b.Fatalf("Register failed: %v", err)
	}
	fs.SetDefaultProtocol("mem")
	data := make([]byte, size)
	if err := fs.WriteFile("mem:/bench.bin", data); err != nil {
		b.Fatalf("WriteFile failed: %v", err)
	}

	b.ResetTimer()
	b.SetBytes(int64(size))
	for i := 0; i < b.N; i++ {
		if _, err := fs.ReadFile("mem:/bench.bin"); err != nil {
			b.Fatalf("ReadFile failed: %v", err)
		}
	}
}

// BenchmarkChunkEncode measures Writer.Encode cost for chunks whose body
// holds a range of record counts.
func BenchmarkChunkEncode(b *testing.B) {
	counts := []int{16, 256, 4096}
	for _, count := range counts {
		b.Run(fmt.Sprintf("%drecords", count), func(b *testing.B) {
			chunkType := chunk.NewType("BNCH")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				w := chunk.NewWriter(chunkType, 1)
				w.SetCount(int32(count))
				for j := 0; j < count; j++ {
					chunk.WriteValue(w, int64(j))
				}
				_ = w.Encode()
			}
		})
	}
}

// BenchmarkChunkReadChunk measures ReadChunk decode cost for the same range
// of record counts BenchmarkChunkEncode produces.
func BenchmarkChunkReadChunk(b *testing.B) {
	counts := []int{16, 256, 4096}
	for _, count := range counts {
		b.Run(fmt.Sprintf("%drecords", count), func(b *testing.B) {
			chunkType := chunk.NewType("BNCH")
			w := chunk.NewWriter(chunkType, 1)
			w.SetCount(int32(count))
			for j := 0; j < count; j++ {
				chunk.WriteValue(w, int64(j))
			}
			encoded := w.Encode()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r := bytes.NewReader(encoded)
				if _, err := chunk.ReadChunk(r); err != nil {
					b.Fatalf("ReadChunk failed: %v", err)
				}
			}
		})
	}
}

// CopyFile across two in-memory mounts is the path nothing else on this
// FileSystem benchmarks: it exercises the generic copy loop rather than a
// protocol-native shortcut.
func BenchmarkFileSystemCrossProtocolCopyFile(b *testing.B) {
	sizes := []int{1024, 64 * 1024}
	for _, size := range sizes {
		b.Run(formatSize(size), func(b *testing.B) {
			benchmarkCrossProtocolCopyFile(b, size)
		})
	}
}

func benchmarkCrossProtocolCopyFile(b *testing.B, size int) {
	fs := New()
	memA, err := memproto.New()
	if err != nil {
		b.Fatalf("memproto.New failed: %v", err)
	}
	memB, err := memproto.New()
	if err != nil {
		b.Fatalf("memproto.New failed: %v", err)
	}
	if err := fs.Register(memA, "memA"); err != nil {
		b.Fatalf("Register failed: %v", err)
	}
	if err := fs.Register(memB, "memB"); err != nil {
		b.Fatalf("Register failed: %v", err)
	}
	data := make([]byte, size)
	if err := fs.WriteFile("memA:/bench.bin", data); err != nil {
		b.Fatalf("WriteFile failed: %v", err)
	}

	b.ResetTimer()
	b.SetBytes(int64(size))
	for i := 0; i < b.N; i++ {
		if err := fs.CopyFile("memA:/bench.bin", "memB:/bench.bin"); err != nil {
			b.Fatalf("CopyFile failed: %v", err)
		}
	}
}
