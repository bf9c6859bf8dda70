package config_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/litebase/memvfs/pkg/config"
)

func TestNewConfig(t *testing.T) {
	c := config.NewConfig()

	if c == nil {
		t.Fatalf("The config instance was not created")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("MEMVFS_DEBUG", "")
	t.Setenv("MEMVFS_ENV", "")
	t.Setenv("MEMVFS_MAX_FILE_SIZE", "")
	t.Setenv("MEMVFS_SECTOR_SIZE", "")
	t.Setenv("MEMVFS_VFS_NAME", "")

	c := config.NewConfig()

	if c.Debug {
		t.Errorf("NewConfig() failed, expected debug to be off")
	}

	if c.Env != config.EnvProduction {
		t.Errorf("NewConfig() failed, expected %s, got %s", config.EnvProduction, c.Env)
	}

	if c.MaxFileSize != buffer.DefaultLimit {
		t.Errorf("NewConfig() failed, expected %d, got %d", buffer.DefaultLimit, c.MaxFileSize)
	}

	if c.SectorSize != config.DefaultSectorSize {
		t.Errorf("NewConfig() failed, expected %d, got %d", config.DefaultSectorSize, c.SectorSize)
	}

	if c.VFSName != config.DefaultVFSName {
		t.Errorf("NewConfig() failed, expected %s, got %s", config.DefaultVFSName, c.VFSName)
	}

	if err := c.Validate(); err != nil {
		t.Errorf("Validate() failed, expected nil, got %v", err)
	}
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("MEMVFS_DEBUG", "true")
	t.Setenv("MEMVFS_ENV", config.EnvTest)
	t.Setenv("MEMVFS_MAX_FILE_SIZE", "1048576")
	t.Setenv("MEMVFS_SECTOR_SIZE", "512")
	t.Setenv("MEMVFS_VFS_NAME", "memvfs-test")

	c := config.NewConfig()

	if !c.Debug {
		t.Errorf("NewConfig() failed, expected debug to be on")
	}

	if c.Env != config.EnvTest {
		t.Errorf("NewConfig() failed, expected test, got %s", c.Env)
	}

	if c.MaxFileSize != 1048576 {
		t.Errorf("NewConfig() failed, expected 1048576, got %d", c.MaxFileSize)
	}

	if c.SectorSize != 512 {
		t.Errorf("NewConfig() failed, expected 512, got %d", c.SectorSize)
	}

	if c.VFSName != "memvfs-test" {
		t.Errorf("NewConfig() failed, expected memvfs-test, got %s", c.VFSName)
	}
}

func TestNewConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MEMVFS_SECTOR_SIZE", "large")

	c := config.NewConfig()

	if c.SectorSize != config.DefaultSectorSize {
		t.Errorf("NewConfig() failed, expected default sector size, got %d", c.SectorSize)
	}
}

func TestValidate(t *testing.T) {
	c := &config.Config{
		Env:         "staging",
		MaxFileSize: 0,
		SectorSize:  1000,
		VFSName:     "mem?vfs",
	}

	err := c.Validate()

	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("Validate() failed, expected ErrInvalidConfig, got %v", err)
	}

	for _, message := range []string{
		"The env must be one of development, production or test",
		"The max file size must be greater than zero",
		"The sector size must be a power of two",
		"The VFS name cannot contain URI delimiters",
	} {
		if !strings.Contains(err.Error(), message) {
			t.Errorf("Validate() failed, expected %q in %q", message, err.Error())
		}
	}
}
