package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/litebase/memvfs/internal/validation"
	"github.com/litebase/memvfs/pkg/buffer"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DefaultSectorSize int64 = 4096
	DefaultVFSName          = "memvfs"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Debug       bool   `json:"debug"`
	Env         string `json:"env" validate:"oneof=development production test"`
	MaxFileSize int64  `json:"max_file_size" validate:"gt=0"`
	SectorSize  int64  `json:"sector_size" validate:"min=512,max=65536"`
	VFSName     string `json:"vfs_name" validate:"required,excludesall=?&#/"`
}

func env(key string, defaultValue string) any {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}

	return defaultValue
}

func envInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(env(key, "").(string), 10, 64)

	if err != nil {
		return defaultValue
	}

	return value
}

func NewConfig() *Config {
	return &Config{
		Debug:       env("MEMVFS_DEBUG", "false") == "true",
		Env:         env("MEMVFS_ENV", EnvProduction).(string),
		MaxFileSize: envInt64("MEMVFS_MAX_FILE_SIZE", buffer.DefaultLimit),
		SectorSize:  envInt64("MEMVFS_SECTOR_SIZE", DefaultSectorSize),
		VFSName:     env("MEMVFS_VFS_NAME", DefaultVFSName).(string),
	}
}

// Validate reports every invalid field in a single error.
func (c *Config) Validate() error {
	failures := validation.Validate(c, map[string]string{
		"env.oneof":            "The env must be one of development, production or test",
		"max_file_size.gt":     "The max file size must be greater than zero",
		"sector_size.min":      "The sector size must be at least 512 bytes",
		"sector_size.max":      "The sector size must be at most 65536 bytes",
		"vfs_name.required":    "The VFS name is required",
		"vfs_name.excludesall": "The VFS name cannot contain URI delimiters",
	})

	messages := make([]string, 0)

	for _, fieldMessages := range failures {
		messages = append(messages, fieldMessages...)
	}

	if c.SectorSize > 0 && c.SectorSize&(c.SectorSize-1) != 0 {
		messages = append(messages, "The sector size must be a power of two")
	}

	if len(messages) == 0 {
		return nil
	}

	slices.Sort(messages)

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}
