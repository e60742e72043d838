package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbenavides/word-counter/errs"
	"github.com/adrianbenavides/word-counter/format"
)

// testPayload returns a repetitive NDJSON corpus, the shape of data these
// codecs see in practice.
func testPayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&buf, `{"type":"request","path":"/v1/items/%d","status":200,"ms":%d}`+"\n", i, i%97)
	}

	return buf.Bytes()
}

func allCodecs() []Codec {
	return []Codec{
		NewNoOpCodec(),
		NewGzipCodec(),
		NewZstdCodec(),
		NewS2Codec(),
		NewLZ4Codec(),
	}
}

// roundTrip compresses payload through codec and decompresses it back.
func roundTrip(t *testing.T, codec Codec, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := codec.NewWriter(&buf)
	require.NoError(t, err)

	n, err := w.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.NoError(t, w.Close())

	r, err := codec.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return got
}

// =============================================================================
// Codec Tests
// =============================================================================

func TestAllCodecs_RoundTrip(t *testing.T) {
	payload := testPayload()

	for _, codec := range allCodecs() {
		t.Run(codec.Type().String(), func(t *testing.T) {
			got := roundTrip(t, codec, payload)
			require.Equal(t, payload, got)
		})
	}
}

func TestAllCodecs_CompressRepetitiveData(t *testing.T) {
	payload := testPayload()

	for _, codec := range allCodecs() {
		if codec.Type() == format.CompressionNone {
			continue
		}

		t.Run(codec.Type().String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := codec.NewWriter(&buf)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			assert.Less(t, buf.Len(), len(payload),
				"repetitive NDJSON should shrink under %s", codec.Type())
		})
	}
}

func TestAllCodecs_EmptyStream(t *testing.T) {
	for _, codec := range allCodecs() {
		t.Run(codec.Type().String(), func(t *testing.T) {
			got := roundTrip(t, codec, nil)
			require.Empty(t, got)
		})
	}
}

func TestAllCodecs_ChunkedWrites(t *testing.T) {
	// Compressing in many small writes must decode identically to one big
	// write, the streaming path never sees whole payloads.
	payload := testPayload()

	for _, codec := range allCodecs() {
		t.Run(codec.Type().String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := codec.NewWriter(&buf)
			require.NoError(t, err)

			for chunk := payload; len(chunk) > 0; {
				n := 37
				if n > len(chunk) {
					n = len(chunk)
				}
				_, err := w.Write(chunk[:n])
				require.NoError(t, err)
				chunk = chunk[n:]
			}
			require.NoError(t, w.Close())

			r, err := codec.NewReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, payload, got)
		})
	}
}

func TestAllCodecs_GarbageInput(t *testing.T) {
	garbage := []byte("definitely not a compressed stream of any kind whatsoever")

	for _, codec := range allCodecs() {
		if codec.Type() == format.CompressionNone {
			continue
		}

		t.Run(codec.Type().String(), func(t *testing.T) {
			r, err := codec.NewReader(bytes.NewReader(garbage))
			if err != nil {
				// Codecs that read the header eagerly fail here
				return
			}
			defer r.Close()

			_, err = io.ReadAll(r)
			require.Error(t, err)
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	// Codec values are shared across scan workers; every reader and writer
	// they hand out must be independent.
	payload := testPayload()

	var wg sync.WaitGroup
	for _, codec := range allCodecs() {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(codec Codec) {
				defer wg.Done()

				var buf bytes.Buffer
				w, err := codec.NewWriter(&buf)
				assert.NoError(t, err)
				_, err = w.Write(payload)
				assert.NoError(t, err)
				assert.NoError(t, w.Close())

				r, err := codec.NewReader(bytes.NewReader(buf.Bytes()))
				assert.NoError(t, err)
				got, err := io.ReadAll(r)
				assert.NoError(t, err)
				assert.NoError(t, r.Close())
				assert.Equal(t, payload, got)
			}(codec)
		}
	}
	wg.Wait()
}

func TestGetCodec(t *testing.T) {
	for _, typ := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		require.Equal(t, typ, codec.Type())
	}
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xEE))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported compression type")
}

// =============================================================================
// Sniff Tests
// =============================================================================

func TestSniff_MagicPrefixes(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want format.CompressionType
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, format.CompressionGzip},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0x24}, format.CompressionZstd},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18, 0x64}, format.CompressionLZ4},
		{"s2", []byte("\xff\x06\x00\x00S2sTwO...."), format.CompressionS2},
		{"snappy", []byte("\xff\x06\x00\x00sNaPpY...."), format.CompressionS2},
		{"plain json", []byte(`{"type":"a"}`), format.CompressionNone},
		{"empty", nil, format.CompressionNone},
		{"truncated gzip magic", []byte{0x1f}, format.CompressionNone},
		{"truncated s2 magic", []byte("\xff\x06\x00\x00S2"), format.CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Sniff(tt.head))
		})
	}
}

func TestSniff_DetectsOwnOutput(t *testing.T) {
	// Whatever each codec writes, Sniff must classify back to it. NoOp
	// output is the payload itself and sniffs as plain.
	payload := testPayload()

	for _, codec := range allCodecs() {
		t.Run(codec.Type().String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := codec.NewWriter(&buf)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			head := buf.Bytes()
			if len(head) > SniffLen {
				head = head[:SniffLen]
			}

			want := codec.Type()
			if want == format.CompressionNone {
				require.Equal(t, format.CompressionNone, Sniff(head))
				return
			}
			require.Equal(t, want, Sniff(head))
		})
	}
}

// =============================================================================
// Compression Type Tests
// =============================================================================

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		typ  format.CompressionType
		want string
	}{
		{format.CompressionNone, "None"},
		{format.CompressionGzip, "Gzip"},
		{format.CompressionZstd, "Zstd"},
		{format.CompressionS2, "S2"},
		{format.CompressionLZ4, "LZ4"},
		{format.CompressionType(0xEE), "Unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.typ.String())
	}
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		name string
		want format.CompressionType
	}{
		{"", format.CompressionNone},
		{"none", format.CompressionNone},
		{"gzip", format.CompressionGzip},
		{"gz", format.CompressionGzip},
		{"GZIP", format.CompressionGzip},
		{"zstd", format.CompressionZstd},
		{"zst", format.CompressionZstd},
		{"s2", format.CompressionS2},
		{"snappy", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
		{"LZ4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		got, err := format.ParseCompression(tt.name)
		require.NoError(t, err, "name %q", tt.name)
		require.Equal(t, tt.want, got, "name %q", tt.name)
	}
}

func TestParseCompression_Unknown(t *testing.T) {
	_, err := format.ParseCompression("brotli")
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
	require.Contains(t, err.Error(), "brotli")
}

func TestRoundTrip_AcrossChunkSizes(t *testing.T) {
	// Decoders must not care how the compressed bytes arrive
	payload := testPayload()
	codec := NewGzipCodec()

	var buf bytes.Buffer
	w, err := codec.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := codec.NewReader(iotest.OneByteReader(bytes.NewReader(buf.Bytes())))
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
