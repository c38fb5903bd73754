package zrxp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `#REXCHANGE5102WT|*|
#SANR5102|*|SNAMEMondsee|*|SWATERMondsee|*|CNAMEWT|*|
#TZUTC+1|*|RINVAL-777|*|
#LAYOUT(timestamp,value)|*|
20240614120000 17.9
20240615143000 18.5
#SANR5210|*|SNAMEUnterach|*|SWATERAttersee|*|CNAMEWT|*|
20240615120000 19.25
20240615130000 -777
20240615140000 19.5
`

func TestParseNamesAndLatestReading(t *testing.T) {
	stations, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, stations, 2)

	first := stations[0]
	assert.Equal(t, "5102", first.Number)
	assert.Equal(t, "Mondsee, Mondsee", first.Name())
	assert.Equal(t, "WT", first.Parameter)
	require.NotNil(t, first.Latest)
	assert.Equal(t, 18.5, first.Latest.Value)
	assert.Equal(t, "20240615143000", first.Latest.Timestamp)

	date, ok := FormatTimestamp(first.Latest.Timestamp)
	require.True(t, ok)
	assert.Equal(t, "2024-06-15 14:30", date)
}

func TestParseFinalizesLastBlock(t *testing.T) {
	stations, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	last := stations[len(stations)-1]
	assert.Equal(t, "Attersee, Unterach", last.Name())
	require.NotNil(t, last.Latest)
	assert.Equal(t, 19.5, last.Latest.Value)
}

func TestParseDropsOutOfRangeValues(t *testing.T) {
	input := "#SANR1|*|SNAMEFoo|*|SWATERBar|*|CNAMEWT|*|\n" +
		"20240601000000 -50\n" +
		"20240601010000 -50.1\n" +
		"20240601020000 50\n" +
		"20240601030000 50.01\n" +
		"20240601040000 NaN\n" +
		"20240601050000 -777\n"

	stations, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stations, 1)

	st := stations[0]
	assert.Equal(t, "Bar, Foo", st.Name())
	require.Len(t, st.Samples, 2)
	for _, s := range st.Samples {
		assert.GreaterOrEqual(t, s.Value, MinValue)
		assert.LessOrEqual(t, s.Value, MaxValue)
	}
	assert.Equal(t, 50.0, st.Latest.Value)
}

func TestParseSkipsLinesWithoutOpenBlock(t *testing.T) {
	input := "garbage line\n20240601000000 12.0\n" +
		"#SANR7|*|SNAMEFoo|*|SWATERBar|*|CNAMEWT|*|\r\n" +
		"20240601000000 13.0\r\n" +
		"not a reading\n" +
		"20240601010000\n"

	stations, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stations, 1)
	require.Len(t, stations[0].Samples, 1)
	assert.Equal(t, 13.0, stations[0].Samples[0].Value)
}

func TestParseStationWithoutSamples(t *testing.T) {
	input := "#SANR1|*|SNAMEA|*|SWATERB|*|CNAMEWT|*|\n" +
		"#SANR2|*|SNAMEC|*|SWATERD|*|CNAMEWT|*|\n" +
		"20240601000000 10\n"

	stations, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Nil(t, stations[0].Latest)
	assert.Empty(t, stations[0].Samples)
	require.NotNil(t, stations[1].Latest)
	assert.Equal(t, 10.0, stations[1].Latest.Value)
}

func TestParseUnmatchedHeaderKeepsBlockOpen(t *testing.T) {
	input := "#SANR1|*|SNAMEA|*|SWATERB|*|CNAMEWT|*|\n" +
		"20240601000000 10\n" +
		"#SANR2|*|incomplete header\n" +
		"20240601010000 11\n"

	stations, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Len(t, stations[0].Samples, 2)
}

func TestParseEmptyInput(t *testing.T) {
	stations, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, stations)
}

func TestFormatTimestamp(t *testing.T) {
	got, ok := FormatTimestamp("202406151430")
	require.True(t, ok)
	assert.Equal(t, "2024-06-15 14:30", got)

	_, ok = FormatTimestamp("2024-06-15")
	assert.False(t, ok)
}
