package test

import (
	"fmt"
	"testing"

	"github.com/litebase/memvfs/pkg/config"
	"github.com/litebase/memvfs/pkg/vfs"
)

// NewConfig returns a test configuration with a VFS name no other test uses.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	setTestEnvVariable(t)

	c := config.NewConfig()
	c.VFSName = fmt.Sprintf("memvfs-test-%s", CreateHash(16))

	return c
}

// NewEnvironment registers a fresh environment that is closed when the test
// finishes.
func NewEnvironment(t testing.TB) *vfs.Environment {
	t.Helper()

	env := vfs.NewEnvironment(NewConfig(t))

	if err := env.Register(); err != nil {
		t.Fatalf("failed to register environment: %v", err)
	}

	t.Cleanup(func() {
		env.Close()
	})

	return env
}
