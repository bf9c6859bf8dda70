package test

import (
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"io"
	"testing"

	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/litebase/memvfs/pkg/database"
	"github.com/litebase/memvfs/pkg/vfs"
)

func CreateHash(length int) string {
	randomBytes := make([]byte, length)
	io.ReadFull(rand.Reader, randomBytes)
	hash := sha1.New()
	hash.Write(randomBytes)
	hashBytes := hash.Sum(nil)

	return fmt.Sprintf("%x", hashBytes)
}

// OpenDatabase opens path in env and fails the test on error. Closing the
// database is left to the test so it can inspect the hand-back.
func OpenDatabase(t testing.TB, env *vfs.Environment, path string, mem *buffer.Buffer) *database.Database {
	t.Helper()

	db, err := database.Open(env, path, mem)

	if err != nil {
		t.Fatalf("failed to open database %q: %v", path, err)
	}

	return db
}

func RunQuery(t testing.TB, db *database.Database, query string, args ...any) *database.Result {
	t.Helper()

	result, err := db.Query(query, args...)

	if err != nil {
		t.Fatalf("query %q failed: %v", query, err)
	}

	return result
}
