package common

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+([.,]\d*)?|[.,]\d+)`)

// ParseLeadingFloat parses the numeric prefix of s, e.g. "19,5 °C" or "21°".
// A comma is accepted as decimal separator. ok is false if s has no numeric
// prefix.
func ParseLeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
