package water

import (
	"log/slog"
	"sort"
)

// SourceResult is the settled outcome of one source fetch.
type SourceResult struct {
	Source  string
	Entries []Entry
	Err     error
}

// Partition splits settled results into successes and failures, keeping
// their relative order.
func Partition(results []SourceResult) (ok, failed []SourceResult) {
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		ok = append(ok, r)
	}
	return ok, failed
}

// Merge concatenates the entries of all successful results in input order,
// logs the failed ones and returns the collection sorted by site name.
// The result is never nil.
func Merge(results []SourceResult) []Entry {
	ok, failed := Partition(results)

	for _, r := range failed {
		// Log and continue; partial data beats no data.
		slog.Warn("source fetch failed", "source", r.Source, "err", r.Err)
	}

	total := 0
	for _, r := range ok {
		total += len(r.Entries)
	}

	merged := make([]Entry, 0, total)
	for _, r := range ok {
		merged = append(merged, r.Entries...)
	}

	SortByName(merged)
	return merged
}

// SortByName orders entries by site name using byte-wise comparison.
// Entries with equal names keep their relative order.
func SortByName(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SiteName < entries[j].SiteName
	})
}

// SortSitesByName orders registry records by name, stable on ties.
func SortSitesByName(sites []Site) {
	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].Name < sites[j].Name
	})
}
