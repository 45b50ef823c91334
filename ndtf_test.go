package ndtf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// patternFile builds a file with a deterministic payload.
func patternFile(t testing.TB, dims int, format Format, extents ...uint16) *File {
	t.Helper()

	f, err := Create(dims, format, extents...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for i := range f.Data {
		f.Data[i] = byte((i*31 + i/7) & 0xff)
	}

	return f
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dims    int
		format  Format
		extents []uint16
	}{
		{name: "2d-rgba8", dims: 2, format: FormatRGBA8888, extents: []uint16{4, 4}},
		{name: "3d-rgb16", dims: 3, format: FormatRGB161616, extents: []uint16{3, 5, 7}},
		{name: "4d-r32f", dims: 4, format: FormatR32F, extents: []uint16{2, 3, 4, 5}},
		{name: "5d-rgba32", dims: 5, format: FormatRGBA32323232, extents: []uint16{2, 2, 2, 2, 2}},
		{name: "zero-extents", dims: 3, format: FormatR8, extents: []uint16{0, 0, 0}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := patternFile(t, tc.dims, tc.format, tc.extents...)

			data, err := Encode(f)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(data) != HeaderSize+len(f.Data) {
				t.Fatalf("stream size = %d", len(data))
			}

			got, stored, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if stored != tc.format {
				t.Fatalf("stored format = %s, want %s", stored, tc.format)
			}
			if got.Header != f.Header {
				t.Fatalf("header mismatch: %+v != %+v", got.Header, f.Header)
			}
			if !bytes.Equal(got.Data, f.Data) {
				t.Fatalf("payload mismatch")
			}
		})
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	t.Parallel()

	compressors := []struct {
		name string
		c    Compressor
	}{
		{name: "default", c: nil},
		{name: "zlib-best", c: ZlibCompressor{Level: 9}},
		{name: "zstd", c: ZstdCompressor{}},
		{name: "lz4", c: LZ4Compressor{}},
	}

	for _, tc := range compressors {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := patternFile(t, 3, FormatRGBA8888, 128, 128, 2)
			f.SetCompressed(true)

			data, err := EncodeWithOptions(f, &WriteOptions{Compressor: tc.c})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if bytes.Equal(data[HeaderSize:], f.Data) {
				t.Fatalf("payload was not compressed")
			}
			if n := binary.LittleEndian.Uint64(data[HeaderSize:]); n != uint64(len(f.Data)) {
				t.Fatalf("size prefix = %d, want %d", n, len(f.Data))
			}

			got, _, err := DecodeWithOptions(data, &ReadOptions{Compressor: tc.c})
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Compressed() || got.Header != f.Header {
				t.Fatalf("header mismatch after compressed round-trip")
			}
			if !bytes.Equal(got.Data, f.Data) {
				t.Fatalf("payload mismatch after compressed round-trip")
			}
		})
	}
}

func TestDecodeDesiredFormat(t *testing.T) {
	t.Parallel()

	f := patternFile(t, 2, FormatR8, 8, 8)
	data, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, stored, err := DecodeWithOptions(data, &ReadOptions{DesiredFormat: FormatRGBA16161616})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if stored != FormatR8 {
		t.Fatalf("stored = %s, want R8", stored)
	}
	if got.Format() != FormatRGBA16161616 || len(got.Data) != 8*8*8 {
		t.Fatalf("format=%s size=%d", got.Format(), len(got.Data))
	}
	vals, ok := TexelValues[uint16](got, Coord2D(1, 0))
	if !ok || vals[0] != uint16(f.Data[1])*257 || vals[3] != 65535 {
		t.Fatalf("converted texel = %v", vals)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	f := patternFile(t, 2, FormatRGB888, 4, 3)
	valid, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	fc := f.Clone()
	fc.SetCompressed(true)
	compressed, err := Encode(fc)
	if err != nil {
		t.Fatalf("Encode compressed: %v", err)
	}

	mutate := func(src []byte, fn func(b []byte) []byte) []byte {
		return fn(append([]byte(nil), src...))
	}

	tests := []struct {
		name    string
		data    []byte
		opts    *ReadOptions
		wantErr error
		reason  ReasonCode
	}{
		{name: "empty", data: nil, wantErr: ErrHeaderTooShort, reason: ReasonMalformedHeader},
		{name: "short-header", data: valid[:HeaderSize-1], wantErr: ErrHeaderTooShort, reason: ReasonMalformedHeader},
		{
			name: "bad-signature", wantErr: ErrBadSignature, reason: ReasonMalformedHeader,
			data: mutate(valid, func(b []byte) []byte { b[0] = 'X'; return b }),
		},
		{
			name: "newer-version", wantErr: ErrUnsupportedVersion, reason: ReasonMalformedHeader,
			data: mutate(valid, func(b []byte) []byte { binary.LittleEndian.PutUint16(b[4:], MakeVersion(1, 1)); return b }),
		},
		{
			name: "dims-low", wantErr: ErrInvalidDimensions, reason: ReasonMalformedHeader,
			data: mutate(valid, func(b []byte) []byte { b[6] = 1; return b }),
		},
		{
			name: "dims-high", wantErr: ErrInvalidDimensions, reason: ReasonMalformedHeader,
			data: mutate(valid, func(b []byte) []byte { b[6] = 6; return b }),
		},
		{name: "truncated-payload", data: valid[:len(valid)-1], wantErr: ErrSizeMismatch, reason: ReasonSizeMismatch},
		{name: "trailing-bytes", data: append(append([]byte(nil), valid...), 0), wantErr: ErrSizeMismatch, reason: ReasonSizeMismatch},
		{
			name: "zero-width", wantErr: ErrInvalidFile, reason: ReasonInvalidContainer,
			data: mutate(valid, func(b []byte) []byte { binary.LittleEndian.PutUint16(b[12:], 0); return b[:HeaderSize] }),
		},
		{name: "compressed-no-prefix", data: compressed[:HeaderSize+4], wantErr: ErrDecompress, reason: ReasonCompressionFailure},
		{
			name: "compressed-prefix-mismatch", wantErr: ErrSizeMismatch, reason: ReasonSizeMismatch,
			data: mutate(compressed, func(b []byte) []byte { binary.LittleEndian.PutUint64(b[HeaderSize:], 1); return b }),
		},
		{
			name: "compressed-corrupt", wantErr: ErrDecompress, reason: ReasonCompressionFailure,
			data: mutate(compressed, func(b []byte) []byte {
				for i := HeaderSize + sizePrefixLen; i < len(b); i++ {
					b[i] ^= 0xA5
				}
				return b
			}),
		},
		{name: "compressed-truncated", data: compressed[:len(compressed)-3], wantErr: ErrDecompress, reason: ReasonCompressionFailure},
		{
			name: "compressor-mismatch", data: compressed, opts: &ReadOptions{Compressor: ZstdCompressor{}},
			wantErr: ErrDecompress, reason: ReasonCompressionFailure,
		},
		{
			name: "bad-desired-format", data: valid, opts: &ReadOptions{DesiredFormat: Format(50)},
			wantErr: ErrInvalidFormat, reason: ReasonOther,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, stored, err := DecodeWithOptions(tc.data, tc.opts)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Decode() error = %v, want %v", err, tc.wantErr)
			}
			if got != nil || stored != FormatNone {
				t.Fatalf("failed decode must return nil file and FormatNone")
			}
			if r := Reason(err); r != tc.reason {
				t.Fatalf("Reason() = %s, want %s", r, tc.reason)
			}
		})
	}
}

func TestReservedBytesAndFlagsSurviveRewrite(t *testing.T) {
	t.Parallel()

	f := patternFile(t, 2, FormatR16, 3, 3)
	f.Header.Reserved = [10]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	f.Header.Flags = 0x80000000
	f.Header.Extents[AxisV] = 9

	data, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	again, err := Encode(got)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Fatalf("rewrite is not byte-identical")
	}
}

func TestEncodeRejectsInconsistentPayload(t *testing.T) {
	t.Parallel()

	f := patternFile(t, 2, FormatR8, 2, 2)
	f.Data = f.Data[:3]
	if _, err := Encode(f); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

type failingCompressor struct{}

func (failingCompressor) Compress([]byte) ([]byte, error) { return nil, errors.New("boom") }

func (failingCompressor) Decompress([]byte, int) ([]byte, error) { return nil, errors.New("boom") }

func TestEncodeCompressorFailure(t *testing.T) {
	t.Parallel()

	f := patternFile(t, 2, FormatR8, 2, 2)
	f.SetCompressed(true)
	_, err := EncodeWithOptions(f, &WriteOptions{Compressor: failingCompressor{}})
	if !errors.Is(err, ErrCompress) || Reason(err) != ReasonCompressionFailure {
		t.Fatalf("expected ErrCompress, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "volume.ndtf")

	f := patternFile(t, 3, FormatRGBA16161616, 9, 7, 5)
	f.SetCompressed(true)
	if err := Save(path, f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	hdr, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if hdr != f.Header {
		t.Fatalf("ReadConfig header mismatch")
	}

	got, stored, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored != FormatRGBA16161616 || !bytes.Equal(got.Data, f.Data) {
		t.Fatalf("Load mismatch")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestSaveInvalidKeepsExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "keep.ndtf")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := patternFile(t, 2, FormatR8, 2, 2)
	f.Release()
	if err := Save(path, f); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "previous" {
		t.Fatalf("existing file changed: %q, %v", data, err)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, _, err := Load(filepath.Join(dir, "missing.ndtf")); !errors.Is(err, ErrOpenFile) || Reason(err) != ReasonIO {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}
	if _, err := ReadConfig(filepath.Join(dir, "missing.ndtf")); !errors.Is(err, ErrOpenFile) {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}

	short := filepath.Join(dir, "short.ndtf")
	if err := os.WriteFile(short, []byte("NDTF"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadConfig(short); !errors.Is(err, ErrHeaderTooShort) {
		t.Fatalf("expected ErrHeaderTooShort, got %v", err)
	}
}

func TestWriteSingleCall(t *testing.T) {
	t.Parallel()

	f := patternFile(t, 2, FormatRGB888, 3, 3)
	w := &countingWriter{}
	if err := Write(w, f, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if w.calls != 1 || w.buf.Len() != HeaderSize+len(f.Data) {
		t.Fatalf("calls=%d bytes=%d", w.calls, w.buf.Len())
	}

	got, _, err := Read(&w.buf, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got.Data, f.Data) {
		t.Fatalf("Read mismatch")
	}

	if err := Write(errWriter{}, f, nil); !errors.Is(err, ErrWriteFile) {
		t.Fatalf("expected ErrWriteFile, got %v", err)
	}
}

type countingWriter struct {
	buf   bytes.Buffer
	calls int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.calls++
	return w.buf.Write(p)
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestReasonCodes(t *testing.T) {
	t.Parallel()

	if Reason(nil) != ReasonNone {
		t.Fatalf("Reason(nil)")
	}
	if Reason(ErrOutOfRange) != ReasonOutOfRange || Reason(ErrSizeOverflow) != ReasonAllocationFailure {
		t.Fatalf("unexpected reason mapping")
	}
	if ReasonMalformedHeader.String() != "malformed header" || ReasonCode(200).String() != "unknown" {
		t.Fatalf("unexpected reason names")
	}
}

// forgedStream builds a compressed stream whose header and size prefix claim
// a payload the body cannot hold.
func forgedStream(t *testing.T, dims int, format Format, extents [MaxDimensions]uint16, stated uint64, body []byte) []byte {
	t.Helper()

	h := newHeader(dims, format, extents)
	h.Flags = FlagCompressed
	header, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	out := append(header, make([]byte, sizePrefixLen)...)
	binary.LittleEndian.PutUint64(out[HeaderSize:], stated)
	return append(out, body...)
}

func TestDecodeForgedSizes(t *testing.T) {
	t.Parallel()

	small := compressiblePayload(1000)
	compressors := []struct {
		name string
		c    Compressor
	}{
		{name: "zlib", c: ZlibCompressor{}},
		{name: "zstd", c: ZstdCompressor{}},
		{name: "lz4", c: LZ4Compressor{}},
	}

	for _, tc := range compressors {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := &ReadOptions{Compressor: tc.c}

			// 65535^3 RGBA32F texels with six junk bytes: 46 bytes in total.
			huge := forgedStream(t, 3, FormatRGBA32323232F,
				[MaxDimensions]uint16{0xffff, 0xffff, 0xffff, 1, 1},
				4503393472086000, []byte{1, 2, 3, 4, 5, 6})
			if len(huge) != 46 {
				t.Fatalf("forged stream is %d bytes", len(huge))
			}
			f, _, err := DecodeWithOptions(huge, opts)
			if !errors.Is(err, ErrSizeOverflow) || f != nil {
				t.Fatalf("huge claim: file=%v err=%v, want ErrSizeOverflow", f, err)
			}
			if Reason(err) != ReasonAllocationFailure {
				t.Fatalf("Reason() = %s", Reason(err))
			}

			// Under the ceiling, a real but short body must fail by content.
			packed, err := tc.c.Compress(small)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			claimed := uint64(0xffff) * 0xffff
			short := forgedStream(t, 2, FormatR8,
				[MaxDimensions]uint16{0xffff, 0xffff, 1, 1, 1}, claimed, packed)
			f, _, err = DecodeWithOptions(short, opts)
			if !errors.Is(err, ErrDecompress) || !errors.Is(err, ErrSizeMismatch) || f != nil {
				t.Fatalf("short body: file=%v err=%v", f, err)
			}
			if Reason(err) != ReasonSizeMismatch {
				t.Fatalf("Reason() = %s, want size mismatch", Reason(err))
			}

			junk := forgedStream(t, 2, FormatR8,
				[MaxDimensions]uint16{0xffff, 0xffff, 1, 1, 1}, claimed, []byte{1, 2, 3, 4, 5, 6})
			if f, _, err := DecodeWithOptions(junk, opts); !errors.Is(err, ErrDecompress) || f != nil {
				t.Fatalf("junk body: file=%v err=%v", f, err)
			}
		})
	}
}

func TestDecompressWrongLengthReportsSizeMismatch(t *testing.T) {
	t.Parallel()

	f := patternFile(t, 2, FormatR8, 16, 16)
	f.SetCompressed(true)
	data, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Grow the header extents and the prefix together so only the body disagrees.
	binary.LittleEndian.PutUint16(data[14:], 17)
	binary.LittleEndian.PutUint64(data[HeaderSize:], 16*17)

	_, _, err = Decode(data)
	if !errors.Is(err, ErrSizeMismatch) || Reason(err) != ReasonSizeMismatch {
		t.Fatalf("expected size mismatch, got %v (%s)", err, Reason(err))
	}
}
