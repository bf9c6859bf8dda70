package vfs

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/litebase/memvfs/pkg/config"
	"github.com/psanford/sqlite3vfs"
)

var environmentsMutex = &sync.RWMutex{}
var environments = make(map[string]*Environment)

// SQLite cannot unregister a VFS, so a dispatcher registered once per name
// outlives the environments attached to it.
var registeredVFS = make(map[string]bool)

var defaultMutex = &sync.Mutex{}
var defaultEnvironment *Environment

// Environment is a memory VFS together with the registry of the files open
// through it. Files opened by the engine under the environment's VFS name
// are served from its registry while the environment is registered.
type Environment struct {
	closed   atomic.Bool
	config   *config.Config
	logger   *slog.Logger
	name     string
	registry *Registry
}

// NewEnvironment creates an environment from c. A nil config is read from
// the process environment.
func NewEnvironment(c *config.Config) *Environment {
	if c == nil {
		c = config.NewConfig()
	}

	return &Environment{
		config:   c,
		logger:   slog.Default().With("vfs", c.VFSName),
		name:     c.VFSName,
		registry: NewRegistry(c.MaxFileSize),
	}
}

// Init registers the default environment, configured from the process
// environment. Calling it again returns the same environment.
func Init() (*Environment, error) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()

	if defaultEnvironment != nil {
		return defaultEnvironment, nil
	}

	env := NewEnvironment(nil)

	if err := env.Register(); err != nil {
		return nil, err
	}

	defaultEnvironment = env

	return env, nil
}

// Fini closes the default environment. It is a no-op when Init has not been
// called.
func Fini() error {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()

	if defaultEnvironment == nil {
		return nil
	}

	err := defaultEnvironment.Close()
	defaultEnvironment = nil

	return err
}

func lookupEnvironment(name string) (*Environment, bool) {
	environmentsMutex.RLock()
	defer environmentsMutex.RUnlock()

	env, ok := environments[name]

	return env, ok
}

// Bind takes a registry reference on name on behalf of a caller that is not
// a file handle, such as a database that must stay bound between engine
// opens. It returns the buffer that is shared under name.
func (e *Environment) Bind(name string, mem *buffer.Buffer) (*buffer.Buffer, error) {
	if e.closed.Load() {
		return nil, fmt.Errorf("%w: environment %q is closed", ErrOpen, e.name)
	}

	return e.registry.Acquire(name, mem)
}

// Close detaches the environment from its VFS name. Handles that are still
// open keep working; new engine opens fail until another environment with
// the same name is registered. Closing twice is a no-op.
func (e *Environment) Close() error {
	environmentsMutex.Lock()
	defer environmentsMutex.Unlock()

	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	if environments[e.name] == e {
		delete(environments, e.name)
	}

	if n := e.registry.Len(); n > 0 {
		e.logger.Warn("Closed memory VFS with open files", "files", n)
	} else {
		e.logger.Debug("Closed memory VFS")
	}

	return nil
}

func (e *Environment) Config() *config.Config {
	return e.config
}

func (e *Environment) Name() string {
	return e.name
}

// OpenFile opens a handle on name. Handles on the same name share a buffer;
// mem seeds it when name is not open yet and is ignored otherwise. The
// anonymous name yields a private buffer that never enters the registry.
func (e *Environment) OpenFile(name string, mem *buffer.Buffer) (*File, error) {
	if e.closed.Load() {
		return nil, fmt.Errorf("%w: environment %q is closed", ErrOpen, e.name)
	}

	if name == AnonymousName {
		return e.openAnonymous(name, mem), nil
	}

	shared, err := e.registry.Acquire(name, mem)

	if err != nil {
		return nil, err
	}

	file := newFile(e, name, shared)

	e.logger.Debug("Opened file", "file", file.id, "name", name)

	return file, nil
}

// Register attaches the environment to its VFS name so the engine can open
// files through it. Registering the same environment twice is a no-op.
func (e *Environment) Register() error {
	environmentsMutex.Lock()
	defer environmentsMutex.Unlock()

	if e.closed.Load() {
		return fmt.Errorf("%w: environment %q is closed", ErrOpen, e.name)
	}

	if existing, ok := environments[e.name]; ok {
		if existing == e {
			return nil
		}

		return fmt.Errorf("%w: %q", ErrEnvironmentExists, e.name)
	}

	if !registeredVFS[e.name] {
		if err := sqlite3vfs.RegisterVFS(e.name, &engineVFS{name: e.name}); err != nil {
			return fmt.Errorf("failed to register vfs %q: %w", e.name, err)
		}

		registeredVFS[e.name] = true
	}

	environments[e.name] = e

	e.logger.Debug("Registered memory VFS")

	return nil
}

func (e *Environment) Registry() *Registry {
	return e.registry
}

// SetLogger replaces the logger used for lifecycle events.
func (e *Environment) SetLogger(logger *slog.Logger) {
	e.logger = logger.With("vfs", e.name)
}

// Unbind drops a reference taken with Bind.
func (e *Environment) Unbind(name string) (Handoff, error) {
	released, err := e.registry.Release(name)

	if err != nil {
		return Handoff{}, err
	}

	return handoff(released), nil
}

// openAnonymous creates a handle that is never shared. The label is only
// used for logging; SQLite passes the journal name here.
func (e *Environment) openAnonymous(label string, mem *buffer.Buffer) *File {
	ownership := Borrowed

	if mem == nil {
		mem = buffer.New()
		mem.SetLimit(e.config.MaxFileSize)
		ownership = Owned
	}

	file := newFile(e, label, mem)
	file.anonymous = true
	file.ownership = ownership

	return file
}
