package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litebase/memvfs/internal/test"
	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/litebase/memvfs/pkg/cli/cmd"
	"github.com/litebase/memvfs/pkg/image"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRoot(nil)
	out := &bytes.Buffer{}

	root.SetArgs(append(args, "--vfs", "memvfs-cli-"+test.CreateHash(8)))
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestExecCreatesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	_, err := run(t, "",
		"exec", path,
		"CREATE TABLE user (name TEXT, age INTEGER)",
		"INSERT INTO user VALUES ('abc', 10)",
	)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("SQLite format 3\x00")))

	out, err := run(t, "", "exec", path, "SELECT name, age FROM user")
	require.NoError(t, err)
	require.Contains(t, out, "name")
	require.Contains(t, out, "abc")
	require.Contains(t, out, "10")
}

func TestExecScriptFromStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.db")

	_, err := run(t, "CREATE TABLE t (v INTEGER); INSERT INTO t VALUES (1); INSERT INTO t VALUES (2);", "exec", path)
	require.NoError(t, err)

	out, err := run(t, "", "exec", path, "SELECT count(*) AS total FROM t")
	require.NoError(t, err)
	require.Contains(t, out, "total")
	require.Contains(t, out, "2")
}

func TestExecDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dry.db")

	out, err := run(t, "", "exec", "--dry-run", path, "CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)
	require.Contains(t, out, "Dry run")

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestExecS2Image(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compressed.db.s2")

	_, err := run(t, "", "exec", path, "CREATE TABLE t (v TEXT)", "INSERT INTO t VALUES ('compressed')")
	require.NoError(t, err)

	mem, err := image.Load(path, image.FormatS2)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(mem.Bytes(), []byte("SQLite format 3\x00")))

	out, err := run(t, "", "exec", path, "SELECT v FROM t")
	require.NoError(t, err)
	require.Contains(t, out, "compressed")
}

func TestExecErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.db")

	_, err := run(t, "", "exec", path, "SELECT * FROM missing")
	require.Error(t, err)

	_, err = run(t, "", "exec", "--format", "zip", path, "SELECT 1")
	require.ErrorIs(t, err, image.ErrUnknownFormat)

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	require.NoError(t, image.Save(corrupt, buffer.FromBytes(bytes.Repeat([]byte("x"), 4096)), image.FormatRaw))

	_, err = run(t, "", "exec", corrupt, "SELECT 1")
	require.Error(t, err)

	_, err = run(t, "", "exec")
	require.Error(t, err)
}

func TestStress(t *testing.T) {
	out, err := run(t, "", "stress", "--databases", "10", "--iterations", "100", "--rounds", "2", "--workers", "2", "--seed", "7")
	require.NoError(t, err)
	require.Contains(t, out, "2 rounds without leaked entries")
	require.Contains(t, out, "Opens")
}

func TestStressInvalidOptions(t *testing.T) {
	_, err := run(t, "", "stress", "--workers", "-1")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, cmd.Version)
}

func TestRoot(t *testing.T) {
	out, err := run(t, "")
	require.NoError(t, err)
	require.Contains(t, out, "memvfs help")
}
