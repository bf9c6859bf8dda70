package vfs

import "errors"

var (
	ErrAnonymousName     = errors.New("vfs: anonymous files cannot be registered")
	ErrEnvironmentExists = errors.New("vfs: an environment with this name is already registered")
	ErrInvalidHandle     = errors.New("vfs: invalid file handle")
	ErrOpen              = errors.New("vfs: open error")
)
