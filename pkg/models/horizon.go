package models

import "strings"

// TimeHorizon is the coarse planning window of a plan.
type TimeHorizon string

const (
	// HorizonMonth plans roughly one month ahead.
	HorizonMonth TimeHorizon = "month"
	// HorizonQuarter plans roughly three months ahead.
	HorizonQuarter TimeHorizon = "quarter"
	// HorizonHalfYear plans roughly six months ahead.
	HorizonHalfYear TimeHorizon = "half_year"
	// HorizonYear plans roughly twelve months ahead.
	HorizonYear TimeHorizon = "year"
)

// Valid returns true if the horizon is a known value.
func (h TimeHorizon) Valid() bool {
	switch h {
	case HorizonMonth, HorizonQuarter, HorizonHalfYear, HorizonYear:
		return true
	default:
		return false
	}
}

// ParseTimeHorizon normalizes user input into a TimeHorizon.
// Unknown values are returned as-is so callers can decide how to treat them;
// check Valid() on the result.
func ParseTimeHorizon(s string) TimeHorizon {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "half-year", "halfyear", "half year", "half_year":
		return HorizonHalfYear
	}
	return TimeHorizon(normalized)
}
