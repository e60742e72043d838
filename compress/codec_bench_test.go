package compress

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

// benchPayload builds an NDJSON corpus of roughly the requested size.
func benchPayload(size int) []byte {
	var buf bytes.Buffer
	for i := 0; buf.Len() < size; i++ {
		fmt.Fprintf(&buf, `{"type":"request","path":"/v1/items/%d","status":200,"ms":%d}`+"\n", i, i%97)
	}

	return buf.Bytes()
}

func BenchmarkAllCodecs_Compress(b *testing.B) {
	sizes := []int{16 << 10, 256 << 10, 4 << 20}

	for _, codec := range allCodecs() {
		for _, size := range sizes {
			payload := benchPayload(size)

			b.Run(fmt.Sprintf("%s/%dKB", codec.Type(), size/1024), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(payload)))

				for b.Loop() {
					w, err := codec.NewWriter(io.Discard)
					if err != nil {
						b.Fatal(err)
					}
					if _, err := w.Write(payload); err != nil {
						b.Fatal(err)
					}
					if err := w.Close(); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	sizes := []int{16 << 10, 256 << 10, 4 << 20}

	for _, codec := range allCodecs() {
		for _, size := range sizes {
			payload := benchPayload(size)

			var compressed bytes.Buffer
			w, err := codec.NewWriter(&compressed)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := w.Write(payload); err != nil {
				b.Fatal(err)
			}
			if err := w.Close(); err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%dKB", codec.Type(), size/1024), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(payload)))

				for b.Loop() {
					r, err := codec.NewReader(bytes.NewReader(compressed.Bytes()))
					if err != nil {
						b.Fatal(err)
					}
					if _, err := io.Copy(io.Discard, r); err != nil {
						b.Fatal(err)
					}
					if err := r.Close(); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
