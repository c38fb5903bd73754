package water

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// TableKey and RegistryKey name the two cached datasets.
	TableKey    = "tableData"
	RegistryKey = "registry"
)

var (
	// ErrNotFound is returned when a site id is not part of the registry.
	ErrNotFound = errors.New("bathing site not found")

	errNoSourceSucceeded = errors.New("no source returned data")
)

// Service orchestrates the sources, the caches and the execution guard. It is
// the data API consumed by the presentation layer.
type Service struct {
	registry Registry
	sources  []Source

	tableCache    Cache[[]Entry]
	registryCache Cache[[]Site]

	timeout  time.Duration
	recorder Recorder
}

// Options configures optional collaborators of a Service.
type Options struct {
	// Timeout bounds each top-level call; zero means DefaultExecutionTimeout.
	Timeout  time.Duration
	Recorder Recorder
}

// NewService creates a new Service. Sources are merged in the given order
// before sorting, so ties on site name keep that order.
func NewService(registry Registry, sources []Source, tableCache Cache[[]Entry], registryCache Cache[[]Site], opts Options) *Service {
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		registry:      registry,
		sources:       sources,
		tableCache:    tableCache,
		registryCache: registryCache,
		timeout:       opts.Timeout,
		recorder:      rec,
	}
}

// Table returns the merged, name-sorted entries of all sources. It never
// fails: unavailable sources and timeouts yield fewer (or no) entries.
func (s *Service) Table(ctx context.Context) []Entry {
	return guarded(ctx, s.timeout, "table", s.recorder, func(ctx context.Context) ([]Entry, error) {
		entries, err := s.tableCache.GetOrCompute(TableKey, func() ([]Entry, error) {
			return s.aggregate(ctx)
		})
		if errors.Is(err, errNoSourceSucceeded) {
			return []Entry{}, nil
		}
		return entries, err
	})
}

// Registry returns the flat, name-sorted listing of the official registry.
func (s *Service) Registry(ctx context.Context) []Site {
	return guarded(ctx, s.timeout, "registry", s.recorder, func(ctx context.Context) ([]Site, error) {
		return s.registryCache.GetOrCompute(RegistryKey, func() ([]Site, error) {
			if s.registry == nil {
				return nil, fmt.Errorf("no registry configured")
			}
			sites, err := s.registry.FetchSites(ctx)
			s.recorder.SourceFetched("registry", err)
			if err != nil {
				return nil, err
			}
			return sites, nil
		})
	})
}

// Site looks up a registry record by its identifier.
func (s *Service) Site(ctx context.Context, id string) (Site, error) {
	for _, site := range s.Registry(ctx) {
		if site.ID == id {
			return site, nil
		}
	}
	return Site{}, ErrNotFound
}

// Warm calls both entry points so stale cache slots are recomputed.
func (s *Service) Warm(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Table(ctx)
	}()
	go func() {
		defer wg.Done()
		s.Registry(ctx)
	}()
	wg.Wait()
}

// aggregate fetches all sources concurrently and waits for every one of them
// to settle before merging. Results of a cancelled run, or of a run where all
// sources failed, are reported as errors so they are not cached.
func (s *Service) aggregate(ctx context.Context) ([]Entry, error) {
	run := uuid.NewString()
	started := time.Now()

	if len(s.sources) == 0 {
		slog.Error("no sources configured", "run", run)
		return []Entry{}, errNoSourceSucceeded
	}

	results := make([]SourceResult, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			entries, err := src.Fetch(ctx)
			s.recorder.SourceFetched(src.Name(), err)
			results[i] = SourceResult{Source: src.Name(), Entries: entries, Err: err}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregation %s aborted: %w", run, err)
	}

	merged := Merge(results)
	ok, failed := Partition(results)

	slog.Info("aggregation finished",
		"run", run,
		"entries", len(merged),
		"succeeded", len(ok),
		"failed", len(failed),
		"took", time.Since(started),
	)
	s.recorder.Aggregated(len(merged))

	if len(ok) == 0 {
		return merged, errNoSourceSucceeded
	}
	return merged, nil
}
