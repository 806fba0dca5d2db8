package profile

import "time"

// Season is one of the four calendar-season buckets a PV day belongs to.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// Seasons lists all season buckets in their canonical order.
var Seasons = []Season{Spring, Summer, Autumn, Winter}

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	}
	return "unknown"
}

// SeasonOf maps a calendar month to its season bucket:
// {3,4,5} spring, {6,7,8} summer, {9,10,11} autumn, {12,1,2} winter.
func SeasonOf(month time.Month) Season {
	switch month {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Autumn
	default:
		return Winter
	}
}

// SeasonRuns groups runs by season bucket.
type SeasonRuns map[Season][]Run
