package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/i474232898/bathing-water-aggregation/internal/water"
)

// DefaultRegistryURL is the national bathing-water registry (AGES).
// https://www.data.gv.at/katalog/dataset/2646025c-8ab9-4850-b76c-c2f508b34798
const DefaultRegistryURL = "https://www.ages.at/typo3temp/badegewaesser_db.json"

// RegistrySource reads the official registry feed. It serves both the raw
// listing (water.Registry) and the merged table (water.Source).
type RegistrySource struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewRegistrySource(cfg HTTPClientConfig, url string) *RegistrySource {
	if url == "" {
		url = DefaultRegistryURL
	}
	return &RegistrySource{
		name:    "ages",
		url:     url,
		httpCfg: cfg,
		circuit: newBreaker("ages", cfg.OnStateChange),
	}
}

func (s *RegistrySource) Name() string {
	return s.name
}

// FetchSites returns every site of every region, annotated with its region
// and sorted by name.
func (s *RegistrySource) FetchSites(ctx context.Context) ([]water.Site, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}

	sites := Flatten(doc)
	water.SortSitesByName(sites)
	return sites, nil
}

// Fetch maps every site to an entry using its first (newest) measurement.
func (s *RegistrySource) Fetch(ctx context.Context) ([]water.Entry, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}
	return RegistryEntries(doc, s.httpCfg.Recency), nil
}

func (s *RegistrySource) document(ctx context.Context) (water.RegistryDocument, error) {
	body, err := fetch(ctx, s.httpCfg.Client, s.circuit, s.url)
	if err != nil {
		return water.RegistryDocument{}, err
	}

	var doc water.RegistryDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return water.RegistryDocument{}, fmt.Errorf("decode registry: %w", err)
	}
	return doc, nil
}

// Flatten turns the region -> sites nesting into one list in feed order.
func Flatten(doc water.RegistryDocument) []water.Site {
	var sites []water.Site
	for _, group := range doc.Regions {
		for _, site := range group.Sites {
			site.Region = group.Region
			sites = append(sites, site)
		}
	}
	return sites
}

// RegistryEntries builds one official entry per site from its first
// measurement. Sites without measurements are skipped.
func RegistryEntries(doc water.RegistryDocument, recency water.Recency) []water.Entry {
	var entries []water.Entry
	for _, group := range doc.Regions {
		for _, site := range group.Sites {
			if len(site.Measurements) == 0 {
				slog.Debug("registry site has no measurements", "site", site.Name, "id", site.ID)
				continue
			}
			current := site.Measurements[0]

			date, ok := water.ISODate(current.Date)
			if !ok {
				date = current.Date
			}

			entries = append(entries, water.Entry{
				Region:          group.Region,
				SiteID:          site.ID,
				Official:        true,
				SiteName:        site.Name,
				ReadingDate:     date,
				Recent:          recency.IsRecent(date),
				Temperature:     current.WaterTemperature,
				VisibilityDepth: current.VisibilityDepth,
				QualityCode:     current.QualityCode(),
			})
		}
	}
	return entries
}
