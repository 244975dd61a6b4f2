package huffzip

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// Stats summarizes one compression.
type Stats struct {
	InputBytes  int  `json:"inputBytes"`
	OutputBytes int  `json:"outputBytes"`
	Symbols     int  `json:"symbols"`
	EncodedBits int  `json:"encodedBits"`
	Padding     byte `json:"padding"`
	MinCodeSize byte `json:"minCodeSize"`
	MaxCodeSize byte `json:"maxCodeSize"`
}

// Ratio returns OutputBytes / InputBytes, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

// Compress encodes data into a Container and returns its serialized form.
// It fails with ErrInvalidInput if data is empty.
func Compress(data []byte) ([]byte, error) {
	out, _, err := CompressStats(data)
	return out, err
}

// CompressStats is like Compress, but also reports what happened.
func CompressStats(data []byte) ([]byte, Stats, error) {
	if len(data) == 0 {
		return nil, Stats{}, fmt.Errorf("%w: nothing to compress", ErrInvalidInput)
	}

	freqs := CountFrequencies(data)
	e, err := NewEncoder(freqs)
	if err != nil {
		return nil, Stats{}, err
	}

	payload, padding, err := e.EncodeAll(data)
	if err != nil {
		return nil, Stats{}, err
	}

	c := &Container{
		Table:   e.Table(),
		Padding: padding,
		Payload: payload,
	}
	out, err := c.MarshalBinary()
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		InputBytes:  len(data),
		OutputBytes: len(out),
		Symbols:     e.NumSymbols(),
		EncodedBits: c.NumBits(),
		Padding:     padding,
		MinCodeSize: e.MinSize(),
		MaxCodeSize: e.MaxSize(),
	}
	return out, stats, nil
}

// Decompress parses a serialized Container and returns the original bytes.
// It fails with ErrCorruptContainer if the container is malformed.
func Decompress(data []byte) ([]byte, error) {
	c, err := ParseContainer(data)
	if err != nil {
		return nil, err
	}

	d, err := NewDecoder(c.Table)
	if err != nil {
		return nil, err
	}

	return d.DecodeAll(c.Payload, c.Padding)
}

// CompressFile compresses the file at inputPath into outputPath.  The
// destination is replaced atomically once the whole container is ready; on
// error it is left untouched.
func CompressFile(inputPath, outputPath string) error {
	_, err := CompressFileStats(inputPath, outputPath)
	return err
}

// CompressFileStats is like CompressFile, but also reports what happened.
func CompressFileStats(inputPath, outputPath string) (Stats, error) {
	var stats Stats
	err := transformFile(inputPath, outputPath, func(in []byte) ([]byte, error) {
		out, s, err := CompressStats(in)
		stats = s
		return out, err
	})
	return stats, err
}

// DecompressFile decompresses the container at inputPath into outputPath.
// The destination is replaced atomically once the whole output is ready; on
// error it is left untouched.
func DecompressFile(inputPath, outputPath string) error {
	return transformFile(inputPath, outputPath, Decompress)
}

func transformFile(inputPath, outputPath string, fn func([]byte) ([]byte, error)) error {
	in, err := os.ReadFile(inputPath)
	if err != nil {
		return &ioError{op: "read", path: inputPath, err: err}
	}

	out, err := fn(in)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	if err := renameio.WriteFile(outputPath, out, 0o644); err != nil {
		return &ioError{op: "write", path: outputPath, err: err}
	}
	return nil
}
