package image

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/s2"
	"github.com/litebase/memvfs/pkg/buffer"
)

// Format is the on-disk encoding of a database image.
type Format string

const (
	FormatRaw Format = "raw"
	FormatS2  Format = "s2"
)

var ErrUnknownFormat = errors.New("image: unknown format")

// FormatFromPath picks s2 for paths ending in .s2 and raw otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".s2") {
		return FormatS2
	}

	return FormatRaw
}

// ParseFormat validates a format name. An empty name selects the format from
// path.
func ParseFormat(name, path string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "":
		return FormatFromPath(path), nil
	case FormatRaw:
		return FormatRaw, nil
	case FormatS2:
		return FormatS2, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Decode turns stored bytes back into a database image.
func Decode(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatRaw:
		return data, nil
	case FormatS2:
		if len(data) == 0 {
			return data, nil
		}

		return s2.Decode(nil, data)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Encode serializes a database image for storage.
func Encode(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatRaw:
		return data, nil
	case FormatS2:
		return s2.Encode(make([]byte, 0, s2.MaxEncodedLen(len(data))), data), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Load reads the image at path into a new buffer. A missing file yields an
// empty buffer so a new database can be created in its place.
func Load(path string, format Format) (*buffer.Buffer, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return buffer.New(), nil
		}

		return nil, err
	}

	image, err := Decode(data, format)

	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", path, err)
	}

	return buffer.FromBytes(image), nil
}

// Save writes the used bytes of mem to path.
func Save(path string, mem *buffer.Buffer, format Format) error {
	data, err := Encode(mem.Bytes(), format)

	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
