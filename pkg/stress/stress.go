package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/litebase/memvfs/internal/validation"
	"github.com/litebase/memvfs/pkg/database"
	"github.com/litebase/memvfs/pkg/vfs"
)

var (
	ErrInvalidOptions = errors.New("stress: invalid options")
	ErrLeakedEntries  = errors.New("stress: registry entries leaked")
)

// Options configures a stress run. Zero values are replaced with defaults.
type Options struct {
	// Databases is the number of distinct database names in use.
	Databases int `json:"databases" validate:"gte=0"`
	// Iterations is the number of random operations per round.
	Iterations int `json:"iterations" validate:"gte=0"`
	// Rounds is the number of times every database is closed and the
	// registry checked for leaks.
	Rounds int `json:"rounds" validate:"gte=0"`
	// Workers is the number of goroutines sharing the registry.
	Workers int `json:"workers" validate:"gte=0"`
	// Seed seeds the operation sequence. Zero picks a time based seed.
	Seed int64 `json:"seed"`
}

// Report summarizes a stress run.
type Report struct {
	Closes   int64
	Duration time.Duration
	Inserts  int64
	Opens    int64
	Rounds   int
}

type counters struct {
	closes  atomic.Int64
	inserts atomic.Int64
	opens   atomic.Int64
}

// Name returns the database name used for slot i.
func Name(i int) string {
	return fmt.Sprintf("éàü€_%d", i)
}

// Validate reports negative counts.
func (o Options) Validate() error {
	errs := validation.Validate(o, map[string]string{
		"databases.gte":  "The number of databases cannot be negative",
		"iterations.gte": "The number of iterations cannot be negative",
		"rounds.gte":     "The number of rounds cannot be negative",
		"workers.gte":    "The number of workers cannot be negative",
	})

	if errs == nil {
		return nil
	}

	messages := make([]string, 0, len(errs))

	for _, fieldErrors := range errs {
		messages = append(messages, fieldErrors...)
	}

	slices.Sort(messages)

	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(messages, "; "))
}

func (o Options) withDefaults() Options {
	if o.Databases == 0 {
		o.Databases = 100
	}

	if o.Iterations == 0 {
		o.Iterations = o.Databases * 10
	}

	if o.Rounds == 0 {
		o.Rounds = 3
	}

	if o.Workers == 0 {
		o.Workers = 4
	}

	if o.Workers > o.Databases {
		o.Workers = o.Databases
	}

	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}

	return o
}

// Run opens, fills and closes databases at random. Each worker owns the
// slots i where i%Workers equals its index, so a buffer is never written by
// two goroutines while the registry is shared by all of them. After every
// round all databases are closed and the registry must be empty.
func Run(ctx context.Context, env *vfs.Environment, opts Options) (Report, error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}

	opts = opts.withDefaults()
	start := time.Now()
	stats := &counters{}
	manager := database.NewDatabaseManager(env)
	report := Report{}

	defer manager.CloseAll()

	for round := 0; round < opts.Rounds; round++ {
		if err := runRound(ctx, manager, opts, round, stats); err != nil {
			return report, err
		}

		if err := manager.CloseAll(); err != nil {
			return report, err
		}

		if n := env.Registry().Len(); n > 0 {
			return report, fmt.Errorf("%w: %d after round %d: %v", ErrLeakedEntries, n, round, env.Registry().Names())
		}

		report.Rounds++
	}

	report.Closes = stats.closes.Load()
	report.Duration = time.Since(start)
	report.Inserts = stats.inserts.Load()
	report.Opens = stats.opens.Load()

	return report, nil
}

func runRound(ctx context.Context, manager *database.DatabaseManager, opts Options, round int, stats *counters) error {
	wg := sync.WaitGroup{}
	errs := make([]error, opts.Workers)
	perWorker := opts.Iterations / opts.Workers

	for worker := 0; worker < opts.Workers; worker++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			random := rand.New(rand.NewSource(opts.Seed + int64(round*opts.Workers+worker)))
			slots := (opts.Databases - worker + opts.Workers - 1) / opts.Workers

			for i := 0; i < perWorker; i++ {
				if ctx.Err() != nil {
					errs[worker] = ctx.Err()
					return
				}

				slot := worker + random.Intn(slots)*opts.Workers

				if err := step(manager, Name(slot), random, stats); err != nil {
					errs[worker] = err
					return
				}
			}
		}(worker)
	}

	wg.Wait()

	return errors.Join(errs...)
}

// step opens a closed slot and creates its table, or inserts into an open
// slot with 80% probability and closes it otherwise.
func step(manager *database.DatabaseManager, name string, random *rand.Rand, stats *counters) error {
	db, ok := manager.Get(name)

	if !ok {
		opened, err := manager.Open(name, nil)

		if err != nil {
			return err
		}

		stats.opens.Add(1)

		_, err = opened.Exec("CREATE TABLE user (name TEXT, age INTEGER)")

		return err
	}

	if random.Intn(100) < 80 {
		if _, err := db.Exec("INSERT INTO user VALUES ('abc', ?)", random.Intn(100)); err != nil {
			return fmt.Errorf("insert into %q: %w", name, err)
		}

		stats.inserts.Add(1)

		return nil
	}

	h, err := manager.Close(name)

	if err != nil {
		return err
	}

	if h.State != vfs.HandoffReturned {
		return fmt.Errorf("close %q: expected the buffer back, got %s", name, h.State)
	}

	stats.closes.Add(1)

	return nil
}
