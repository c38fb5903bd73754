package water

import (
	"context"
)

// Source abstracts one upstream feed that contributes normalized entries
// (official registry, regional time series, tourism-board table).
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Entry, error)
}

// Registry is the official feed's raw listing view.
type Registry interface {
	FetchSites(ctx context.Context) ([]Site, error)
}

// Cache memoizes a producer's result under a key.
type Cache[T any] interface {
	GetOrCompute(key string, producer func() (T, error)) (T, error)
}

// Recorder receives aggregation events for metrics. All methods must be safe
// for concurrent use.
type Recorder interface {
	SourceFetched(source string, err error)
	GuardTimedOut(operation string)
	Aggregated(entries int)
}

type nopRecorder struct{}

func (nopRecorder) SourceFetched(string, error) {}
func (nopRecorder) GuardTimedOut(string)        {}
func (nopRecorder) Aggregated(int)              {}
