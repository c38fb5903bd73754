package water

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// DefaultRecencyWindow is how old a reading may be before it is flagged stale.
	DefaultRecencyWindow = 14 * 24 * time.Hour

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var dottedDate = regexp.MustCompile(`^\s*(\d{1,2})\.(\d{1,2})\.(\d{4})\s*$`)

// Recency flags readings older than Window as stale.
//
// Date-only values are read as UTC midnight; values with a time of day are
// read in Location (local wall-clock time of the upstream station).
type Recency struct {
	Window   time.Duration
	Location *time.Location
	Now      func() time.Time
}

// NewRecency returns a Recency with the given window and location, using the
// wall clock. A nil location falls back to UTC.
func NewRecency(window time.Duration, loc *time.Location) Recency {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	if loc == nil {
		loc = time.UTC
	}
	return Recency{Window: window, Location: loc, Now: time.Now}
}

// IsRecent reports whether date lies less than Window in the past.
// Unparseable dates are never recent.
func (r Recency) IsRecent(date string) bool {
	ts, err := r.Parse(date)
	if err != nil {
		return false
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return now().Sub(ts) < r.Window
}

// Parse reads a reading date in either "YYYY-MM-DD" or "YYYY-MM-DD HH:MM" form.
func (r Recency) Parse(date string) (time.Time, error) {
	if ts, err := time.Parse(dateLayout, date); err == nil {
		return ts, nil
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	ts, err := time.ParseInLocation(dateTimeLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reading date %q: %w", date, err)
	}
	return ts, nil
}

// ISODate rewrites a "DD.MM.YYYY" date as "YYYY-MM-DD". ok is false when the
// input does not have that shape.
func ISODate(dotted string) (iso string, ok bool) {
	m := dottedDate.FindStringSubmatch(dotted)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
}
