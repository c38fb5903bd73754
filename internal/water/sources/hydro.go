package sources

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sony/gobreaker"
	"golang.org/x/text/encoding/charmap"

	"github.com/i474232898/bathing-water-aggregation/internal/water"
	"github.com/i474232898/bathing-water-aggregation/internal/zrxp"
)

// DefaultHydroURL is the Upper Austrian hydrographic service's water
// temperature export.
// https://www.data.gv.at/katalog/dataset/586e08a5-1ca6-400b-b2e2-dfd8fd3f429d
const DefaultHydroURL = "https://data.ooe.gv.at/files/hydro/HDOOE_Export_WT.zrxp"

// HydroSource reads a regional ZRXP export. The upstream file is Latin-1
// encoded, not UTF-8.
type HydroSource struct {
	name    string
	url     string
	region  water.Region
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewHydroSource(cfg HTTPClientConfig, url string, region water.Region) *HydroSource {
	if url == "" {
		url = DefaultHydroURL
	}
	if region == "" {
		region = water.RegionUpperAustria
	}
	return &HydroSource{
		name:    "hydro-ooe",
		url:     url,
		region:  region,
		httpCfg: cfg,
		circuit: newBreaker("hydro-ooe", cfg.OnStateChange),
	}
}

func (s *HydroSource) Name() string {
	return s.name
}

func (s *HydroSource) Fetch(ctx context.Context) ([]water.Entry, error) {
	body, err := fetch(ctx, s.httpCfg.Client, s.circuit, s.url)
	if err != nil {
		return nil, err
	}

	// Browsers label ISO-8859-1 as windows-1252; match that.
	decoded := charmap.Windows1252.NewDecoder().Reader(bytes.NewReader(body))

	stations, err := zrxp.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse zrxp: %w", err)
	}
	return StationEntries(stations, s.region, s.httpCfg.Recency), nil
}

// StationEntries converts parsed stations to entries. A station without any
// in-range sample keeps an empty reading date and no temperature.
func StationEntries(stations []zrxp.Station, region water.Region, recency water.Recency) []water.Entry {
	entries := make([]water.Entry, 0, len(stations))
	for _, st := range stations {
		e := water.Entry{
			Region:    region,
			SiteID:    st.Number,
			SiteName:  st.Name(),
			RawSeries: make([]water.Reading, 0, len(st.Samples)),
		}
		for _, sample := range st.Samples {
			e.RawSeries = append(e.RawSeries, water.Reading{Timestamp: sample.Timestamp, Value: sample.Value})
		}

		if st.Latest != nil {
			if date, ok := zrxp.FormatTimestamp(st.Latest.Timestamp); ok {
				temp := st.Latest.Value
				e.Temperature = &temp
				e.ReadingDate = date
				e.Recent = recency.IsRecent(date)
			}
		}

		entries = append(entries, e)
	}
	return entries
}
