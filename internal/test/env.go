package test

import (
	"os"
	"testing"
)

func setTestEnvVariable(t testing.TB) {
	envVars := map[string]string{
		"MEMVFS_DEBUG":         "false",
		"MEMVFS_ENV":           "test",
		"MEMVFS_MAX_FILE_SIZE": "1073741824",
		"MEMVFS_SECTOR_SIZE":   "4096",
	}

	for key, value := range envVars {
		if os.Getenv(key) == "" {
			t.Setenv(key, value)
		}
	}
}
