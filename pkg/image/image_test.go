package image_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/litebase/memvfs/pkg/image"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	require.Equal(t, image.FormatS2, image.FormatFromPath("backup.db.s2"))
	require.Equal(t, image.FormatS2, image.FormatFromPath("BACKUP.S2"))
	require.Equal(t, image.FormatRaw, image.FormatFromPath("backup.db"))
}

func TestParseFormat(t *testing.T) {
	format, err := image.ParseFormat("", "data.s2")
	require.NoError(t, err)
	require.Equal(t, image.FormatS2, format)

	format, err = image.ParseFormat("RAW", "data.s2")
	require.NoError(t, err)
	require.Equal(t, image.FormatRaw, format)

	_, err = image.ParseFormat("zip", "data.db")
	require.ErrorIs(t, err, image.ErrUnknownFormat)
}

func TestEncodeDecode(t *testing.T) {
	data := bytes.Repeat([]byte("SQLite format 3\x00"), 256)

	encoded, err := image.Encode(data, image.FormatS2)
	require.NoError(t, err)
	require.Less(t, len(encoded), len(data))

	decoded, err := image.Decode(encoded, image.FormatS2)
	require.NoError(t, err)
	require.Equal(t, data, decoded)

	_, err = image.Decode([]byte("not s2"), image.FormatS2)
	require.Error(t, err)

	_, err = image.Encode(data, image.Format("zip"))
	require.ErrorIs(t, err, image.ErrUnknownFormat)
}

func TestLoadMissingFile(t *testing.T) {
	mem, err := image.Load(filepath.Join(t.TempDir(), "missing.db"), image.FormatRaw)
	require.NoError(t, err)
	require.Equal(t, int64(0), mem.Used())
}

func TestSaveAndLoad(t *testing.T) {
	for _, format := range []image.Format{image.FormatRaw, image.FormatS2} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "image.db")
			mem := buffer.FromBytes([]byte("database contents"))

			require.NoError(t, mem.Truncate(8))
			require.NoError(t, image.Save(path, mem, format))

			loaded, err := image.Load(path, format)
			require.NoError(t, err)
			require.Equal(t, []byte("database"), loaded.Bytes())

			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0600), info.Mode().Perm())
		})
	}
}
