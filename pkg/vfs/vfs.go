package vfs

import (
	"github.com/psanford/sqlite3vfs"

	_ "github.com/mattn/go-sqlite3"
)

// engineVFS is the provider SQLite calls into. It is registered once per
// VFS name and forwards to whichever environment currently holds that name.
type engineVFS struct {
	name string
}

var _ sqlite3vfs.VFS = (*engineVFS)(nil)

// Access reports whether a named file is currently open. Journals are never
// registered, so SQLite never finds a hot journal to roll back.
func (v *engineVFS) Access(name string, flags sqlite3vfs.AccessFlag) (bool, error) {
	env, ok := lookupEnvironment(v.name)

	if !ok {
		return false, nil
	}

	return env.registry.Contains(name), nil
}

// Delete is a no-op. Anonymous files disappear when they are closed and
// named files disappear with their last handle.
func (v *engineVFS) Delete(name string, dirSync bool) error {
	return nil
}

func (v *engineVFS) FullPathname(name string) string {
	return name
}

// Open serves main database files from the registry so every connection to
// the same name shares one buffer. Journals, temp databases and other
// auxiliary files get a private buffer that is freed on close.
func (v *engineVFS) Open(name string, flags sqlite3vfs.OpenFlag) (sqlite3vfs.File, sqlite3vfs.OpenFlag, error) {
	env, ok := lookupEnvironment(v.name)

	if !ok {
		return nil, 0, sqlite3vfs.CantOpenError
	}

	var file *File

	if flags&sqlite3vfs.OpenMainDB != 0 && name != AnonymousName {
		f, err := env.OpenFile(name, nil)

		if err != nil {
			env.logger.Debug("Failed to open file", "name", name, "error", err)

			return nil, 0, sqlite3vfs.CantOpenError
		}

		file = f
	} else {
		file = env.openAnonymous(name, nil)
	}

	file.flags = flags

	return file, flags, nil
}
