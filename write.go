package ndtf

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteOptions configures NDTF encoding.
type WriteOptions struct {
	// Compressor deflates the payload when the file's compression flag is
	// set. Nil uses DefaultCompressor.
	Compressor Compressor
}

func (o *WriteOptions) compressor() Compressor {
	if o == nil || o.Compressor == nil {
		return DefaultCompressor()
	}
	return o.Compressor
}

// Encode serializes f. The payload is compressed when f.Compressed().
func Encode(f *File) ([]byte, error) {
	return EncodeWithOptions(f, nil)
}

// EncodeWithOptions serializes f with the given options. The header is
// written verbatim, reserved bytes and flags included.
func EncodeWithOptions(f *File, opts *WriteOptions) ([]byte, error) {
	if !f.Valid() {
		return nil, ErrInvalidFile
	}

	expected, err := f.Header.DataSize()
	if err != nil {
		return nil, err
	}
	if len(f.Data) != expected {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, expected, len(f.Data))
	}

	header, err := f.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if !f.Compressed() {
		out := make([]byte, 0, HeaderSize+len(f.Data))
		out = append(out, header...)
		return append(out, f.Data...), nil
	}

	compressed, err := opts.compressor().Compress(f.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompress, err)
	}

	out := make([]byte, HeaderSize+sizePrefixLen, HeaderSize+sizePrefixLen+len(compressed))
	copy(out, header)
	binary.LittleEndian.PutUint64(out[HeaderSize:], uint64(len(f.Data)))

	return append(out, compressed...), nil
}

// Write encodes f fully in memory and writes it with a single call.
func Write(w io.Writer, f *File, opts *WriteOptions) error {
	data, err := EncodeWithOptions(f, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFile, err)
	}

	return nil
}

// Save writes f to path.
func Save(path string, f *File) error {
	return SaveWithOptions(path, f, nil)
}

// SaveWithOptions writes f to path with the given options. The file is
// written to a temporary sibling and renamed into place, so a failed save
// leaves any existing file untouched.
func SaveWithOptions(path string, f *File, opts *WriteOptions) error {
	data, err := EncodeWithOptions(f, opts)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	committed = true

	return nil
}
