//go:build cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader returns a reader decompressing the zstd stream r via libzstd.
func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{zr: gozstd.NewReader(r)}, nil
}

// NewWriter returns a writer compressing into w via libzstd.
func (c ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &gozstdWriter{zw: gozstd.NewWriterLevel(w, 3)}, nil
}

// gozstdReader adapts gozstd.Reader, whose resources are freed with Release
// rather than Close.
type gozstdReader struct {
	zr *gozstd.Reader
}

func (g *gozstdReader) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gozstdReader) Close() error {
	g.zr.Release()

	return nil
}

type gozstdWriter struct {
	zw *gozstd.Writer
}

func (g *gozstdWriter) Write(p []byte) (int, error) {
	return g.zw.Write(p)
}

func (g *gozstdWriter) Close() error {
	err := g.zw.Close()
	g.zw.Release()

	return err
}
