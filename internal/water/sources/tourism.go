package sources

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/i474232898/bathing-water-aggregation/internal/htmltable"
	"github.com/i474232898/bathing-water-aggregation/internal/water"
)

// DefaultTourismURL is the Ausseerland tourism board's lake temperature page.
// There is no API; the table is maintained by hand about three times a week.
const DefaultTourismURL = "https://www.steiermark.com/de/Ausseerland-Salzkammergut/Region/Sommerfrische/Seen-im-Ausseerland/Wassertemperaturen"

// TourismSource scrapes a third-party HTML temperature table.
type TourismSource struct {
	name    string
	url     string
	region  water.Region
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewTourismSource(cfg HTTPClientConfig, url string, region water.Region) *TourismSource {
	if url == "" {
		url = DefaultTourismURL
	}
	if region == "" {
		region = water.RegionStyria
	}
	return &TourismSource{
		name:    "ausseerland",
		url:     url,
		region:  region,
		httpCfg: cfg,
		circuit: newBreaker("ausseerland", cfg.OnStateChange),
	}
}

func (s *TourismSource) Name() string {
	return s.name
}

func (s *TourismSource) Fetch(ctx context.Context) ([]water.Entry, error) {
	body, err := fetch(ctx, s.httpCfg.Client, s.circuit, s.url)
	if err != nil {
		return nil, err
	}

	table, err := htmltable.Extract(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extract table: %w", err)
	}
	return TableEntries(table, s.region, s.httpCfg.Recency), nil
}

// TableEntries tags every row with the document's reporting date.
func TableEntries(table htmltable.Table, region water.Region, recency water.Recency) []water.Entry {
	recent := recency.IsRecent(table.Date)

	entries := make([]water.Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, water.Entry{
			Region:      region,
			SiteName:    row.Name,
			ReadingDate: table.Date,
			Recent:      recent,
			Temperature: row.Temperature,
		})
	}
	return entries
}
