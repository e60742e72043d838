package input

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbenavides/word-counter/compress"
	"github.com/adrianbenavides/word-counter/errs"
	"github.com/adrianbenavides/word-counter/format"
)

var testPayload = []byte(`{"type":"alpha","x":1}
{"type":"beta","x":22}
{"type":"alpha","x":333}
`)

// compressBytes encodes data with the codec for ct.
func compressBytes(t *testing.T, ct format.CompressionType, data []byte) []byte {
	t.Helper()

	codec, err := compress.GetCodec(ct)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := codec.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestOpen_PlainFile(t *testing.T) {
	path := writeTempFile(t, "plain.ndjson", testPayload)

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, path, src.Path())
	assert.Equal(t, format.CompressionNone, src.Compression())
	assert.Equal(t, int64(len(testPayload)), src.Size())

	ra, size, ok := src.RandomAccess()
	require.True(t, ok)
	assert.Equal(t, int64(len(testPayload)), size)

	got := make([]byte, size)
	_, err = ra.ReadAt(got, 0)
	require.NoError(t, err)
	assert.Equal(t, testPayload, got)
}

func TestOpen_PlainFile_StreamReadsEverything(t *testing.T) {
	path := writeTempFile(t, "plain.ndjson", testPayload)

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	got, err := io.ReadAll(src.Stream())
	require.NoError(t, err)
	assert.Equal(t, testPayload, got)

	// The stream has its own cursor; random access is unaffected.
	ra, _, ok := src.RandomAccess()
	require.True(t, ok)
	head := make([]byte, 8)
	_, err = ra.ReadAt(head, 0)
	require.NoError(t, err)
	assert.Equal(t, testPayload[:8], head)
}

func TestOpen_CompressedFile(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			packed := compressBytes(t, ct, testPayload)
			path := writeTempFile(t, "input.bin", packed)

			src, err := Open(path)
			require.NoError(t, err)
			defer src.Close()

			assert.Equal(t, ct, src.Compression())
			assert.Equal(t, int64(len(packed)), src.Size())

			_, _, ok := src.RandomAccess()
			assert.False(t, ok, "compressed inputs must not offer random access")

			got, err := io.ReadAll(src.Stream())
			require.NoError(t, err)
			assert.Equal(t, testPayload, got)
		})
	}
}

func TestOpen_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty", nil)

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, format.CompressionNone, src.Compression())

	ra, size, ok := src.RandomAccess()
	require.True(t, ok)
	assert.Zero(t, size)
	assert.NotNil(t, ra)

	got, err := io.ReadAll(src.Stream())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpen_FileShorterThanSniffWindow(t *testing.T) {
	path := writeTempFile(t, "tiny", []byte("ab\n"))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, format.CompressionNone, src.Compression())

	got, err := io.ReadAll(src.Stream())
	require.NoError(t, err)
	assert.Equal(t, []byte("ab\n"), got)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpen_Stdin(t *testing.T) {
	src, err := Open(StdinPath)
	require.NoError(t, err)

	assert.Equal(t, StdinPath, src.Path())
	assert.Zero(t, src.Size())

	_, _, ok := src.RandomAccess()
	assert.False(t, ok)

	require.NoError(t, src.Close())
}

func TestOpenReader_Plain(t *testing.T) {
	src, err := OpenReader(bytes.NewReader(testPayload))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, format.CompressionNone, src.Compression())
	assert.Empty(t, src.Path())
	assert.Zero(t, src.Size())

	got, err := io.ReadAll(src.Stream())
	require.NoError(t, err)
	assert.Equal(t, testPayload, got)
}

func TestOpenReader_Compressed(t *testing.T) {
	packed := compressBytes(t, format.CompressionGzip, testPayload)

	src, err := OpenReader(bytes.NewReader(packed))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, format.CompressionGzip, src.Compression())

	got, err := io.ReadAll(src.Stream())
	require.NoError(t, err)
	assert.Equal(t, testPayload, got)
}

func TestOpenReader_Empty(t *testing.T) {
	src, err := OpenReader(bytes.NewReader(nil))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, format.CompressionNone, src.Compression())

	got, err := io.ReadAll(src.Stream())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenReader_Nil(t *testing.T) {
	_, err := OpenReader(nil)
	require.ErrorIs(t, err, errs.ErrNilReader)
}

func TestSource_Close_Idempotent(t *testing.T) {
	packed := compressBytes(t, format.CompressionGzip, testPayload)
	path := writeTempFile(t, "input.gz", packed)

	src, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}
