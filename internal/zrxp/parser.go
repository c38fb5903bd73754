// Package zrxp reads the line-oriented ZRXP time-series exchange format.
//
// Station headers start with "#SANR" and carry "|"-separated fields such as
// SNAME (site), SWATER (water body) and CNAME (parameter). Data lines hold a
// timestamp and a value separated by whitespace. Every other "#" line is a
// comment.
package zrxp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	headerPrefix = "#SANR"

	// MinValue and MaxValue bound plausible readings; anything outside is
	// sensor noise or a missing-value marker.
	MinValue = -50.0
	MaxValue = 50.0

	maxLineSize = 1024 * 1024
)

var (
	metaPattern      = regexp.MustCompile(`SNAME(.*?)\|.*?SWATER(.*?)\|.*?CNAME(.*?)\|`)
	numberPattern    = regexp.MustCompile(`^#SANR([^|;]*)`)
	timestampPattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})(\d{2})(\d{2})(\d{2})?$`)
)

// Sample is one in-range reading of a station.
type Sample struct {
	Timestamp string // raw, YYYYMMDDHHMMSS
	Value     float64
}

// Station is one header block and the samples that followed it.
type Station struct {
	Number    string
	Site      string
	Water     string
	Parameter string
	Samples   []Sample

	// Latest is set when the block is closed and holds the last sample, if any.
	Latest *Sample
}

// Name is the display name "<water body>, <site>".
func (s Station) Name() string {
	return s.Water + ", " + s.Site
}

type state int

const (
	noBlockOpen state = iota
	blockOpen
)

type parser struct {
	state    state
	current  Station
	stations []Station
}

// Parse reads all stations from r in file order. Malformed lines are skipped;
// only read errors are returned.
func Parse(r io.Reader) ([]Station, error) {
	p := &parser{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.line(strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("zrxp: read: %w", err)
	}

	p.finalize()
	return p.stations, nil
}

func (p *parser) line(line string) {
	if strings.HasPrefix(line, headerPrefix) {
		if st, ok := parseHeader(line); ok {
			p.finalize()
			p.current = st
			p.state = blockOpen
			return
		}
	}
	if strings.HasPrefix(line, "#") {
		return
	}
	if p.state != blockOpen {
		return
	}
	if sample, ok := parseSample(line); ok {
		p.current.Samples = append(p.current.Samples, sample)
	}
}

// finalize closes the open block, if any, and records its latest sample.
func (p *parser) finalize() {
	if p.state != blockOpen {
		return
	}
	st := p.current
	if n := len(st.Samples); n > 0 {
		latest := st.Samples[n-1]
		st.Latest = &latest
	}
	p.stations = append(p.stations, st)
	p.current = Station{}
	p.state = noBlockOpen
}

func parseHeader(line string) (Station, bool) {
	m := metaPattern.FindStringSubmatch(line)
	if m == nil {
		return Station{}, false
	}
	st := Station{
		Site:      m[1],
		Water:     m[2],
		Parameter: m[3],
	}
	if n := numberPattern.FindStringSubmatch(line); n != nil {
		st.Number = strings.TrimSpace(n[1])
	}
	return st, true
}

func parseSample(line string) (Sample, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Sample{}, false
	}
	if !timestampPattern.MatchString(fields[0]) {
		return Sample{}, false
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(v) {
		return Sample{}, false
	}
	if v < MinValue || v > MaxValue {
		return Sample{}, false
	}
	return Sample{Timestamp: fields[0], Value: v}, true
}

// FormatTimestamp rewrites a YYYYMMDDHHMM[SS] token as "YYYY-MM-DD HH:MM".
func FormatTimestamp(ts string) (string, bool) {
	m := timestampPattern.FindStringSubmatch(ts)
	if m == nil {
		return "", false
	}
	return m[1] + "-" + m[2] + "-" + m[3] + " " + m[4] + ":" + m[5], true
}
