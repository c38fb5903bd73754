package water

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecency(t *testing.T) {
	vienna, err := time.LoadLocation("Europe/Vienna")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	now := time.Date(2024, 6, 29, 10, 0, 0, 0, time.UTC)
	r := Recency{Window: DefaultRecencyWindow, Location: vienna, Now: func() time.Time { return now }}

	assert.True(t, r.IsRecent("2024-06-15 14:30"))
	assert.True(t, r.IsRecent("2024-06-16"))
	assert.False(t, r.IsRecent("2024-06-15"))
	assert.False(t, r.IsRecent("2024-05-01 08:00"))
	assert.False(t, r.IsRecent(""))
	assert.False(t, r.IsRecent("15.06.2024"))
}

func TestNewRecencyDefaults(t *testing.T) {
	r := NewRecency(0, nil)
	assert.Equal(t, DefaultRecencyWindow, r.Window)
	assert.Equal(t, time.UTC, r.Location)
	assert.True(t, r.IsRecent(time.Now().UTC().Format("2006-01-02 15:04")))
}

func TestISODate(t *testing.T) {
	got, ok := ISODate("15.06.2024")
	assert.True(t, ok)
	assert.Equal(t, "2024-06-15", got)

	got, ok = ISODate("1.7.2024")
	assert.True(t, ok)
	assert.Equal(t, "2024-07-01", got)

	_, ok = ISODate("2024-06-15")
	assert.False(t, ok)
}

func TestRegionValid(t *testing.T) {
	assert.True(t, RegionStyria.Valid())
	assert.False(t, Region("Bayern").Valid())
	assert.False(t, Region("").Valid())
}
