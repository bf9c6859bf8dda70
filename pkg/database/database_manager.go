package database

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/litebase/memvfs/pkg/vfs"
)

var ErrDatabaseNotOpen = errors.New("database: not open")

// DatabaseManager keeps at most one open Database per path in an
// environment.
type DatabaseManager struct {
	databases map[string]*Database
	env       *vfs.Environment
	mutex     *sync.Mutex
}

// Create a new instance of the database manager.
func NewDatabaseManager(env *vfs.Environment) *DatabaseManager {
	return &DatabaseManager{
		databases: make(map[string]*Database),
		env:       env,
		mutex:     &sync.Mutex{},
	}
}

// Return the paths of all open databases in sorted order.
func (d *DatabaseManager) All() []string {
	d.mutex.Lock()
	paths := make([]string, 0, len(d.databases))

	for path := range d.databases {
		paths = append(paths, path)
	}

	d.mutex.Unlock()

	slices.Sort(paths)

	return paths
}

// Close the database at path and remove it from the manager.
func (d *DatabaseManager) Close(path string) (vfs.Handoff, error) {
	d.mutex.Lock()
	db, ok := d.databases[path]
	delete(d.databases, path)
	d.mutex.Unlock()

	if !ok {
		return vfs.Handoff{}, fmt.Errorf("%w: %q", ErrDatabaseNotOpen, path)
	}

	return db.Close()
}

// Close every open database. The first error is returned after all of them
// have been attempted.
func (d *DatabaseManager) CloseAll() error {
	var errs []error

	for _, path := range d.All() {
		if _, err := d.Close(path); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (d *DatabaseManager) Environment() *vfs.Environment {
	return d.env
}

// Get the open database at path.
func (d *DatabaseManager) Get(path string) (*Database, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	db, ok := d.databases[path]

	return db, ok
}

func (d *DatabaseManager) Len() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return len(d.databases)
}

// Open the database at path, or return it when it is already open. mem is
// only used when the path is opened for the first time.
func (d *DatabaseManager) Open(path string, mem *buffer.Buffer) (*Database, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if db, ok := d.databases[path]; ok {
		return db, nil
	}

	db, err := Open(d.env, path, mem)

	if err != nil {
		return nil, err
	}

	d.databases[path] = db

	return db, nil
}
