package segment

import (
	"fmt"
	"time"

	"github.com/hauslab/powerprofiles/internal/profile"
)

// minutesPerDay is the expected span of one complete PV day.
const minutesPerDay = 1440

// Days splits a PV unit's cumulative production series into calendar-day
// runs, buckets the surviving days by season, and rebases each kept run to
// start at 0.
//
// A day boundary is a sample whose local wall-clock time is exactly 00:00.
// The buffer accumulated up to the boundary is one completed day: it is
// discarded if IsNoise reports it as noise, otherwise appended to the season
// bucket of the completed day's start month, with the UTC timestamp of its
// first sample attached. The buffer still open when the series ends is
// discarded, never flushed.
//
// localTimes and utcTimes are the wall-clock and UTC timestamp columns of
// the input table ("2006-01-02T15:04:05..." prefixed) and must parallel the
// power series.
func Days(power []float64, localTimes, utcTimes []string, minuteRes int) (profile.SeasonRuns, error) {
	if len(localTimes) != len(power) || len(utcTimes) != len(power) {
		return nil, fmt.Errorf("segment: power has %d samples but %d local and %d utc timestamps",
			len(power), len(localTimes), len(utcTimes))
	}

	seasons := make(profile.SeasonRuns)
	var current []float64
	startLocal, startUTC := "", ""

	for i, local := range localTimes {
		if startUTC == "" {
			startLocal, startUTC = local, utcTimes[i]
		}

		if isLocalMidnight(local) {
			if !IsNoise(current, minuteRes) {
				month, err := localMonth(startLocal)
				if err != nil {
					return nil, err
				}
				start, err := parseUTC(startUTC)
				if err != nil {
					return nil, err
				}
				season := profile.SeasonOf(month)
				seasons[season] = append(seasons[season], profile.Run{Values: current, Start: start})
			}
			current = nil
			startLocal, startUTC = local, utcTimes[i]
		}

		current = append(current, power[i])
	}

	for _, runs := range seasons {
		for _, r := range runs {
			r.Rebase()
		}
	}
	return seasons, nil
}

// IsNoise reports whether a candidate PV day must be excluded: any adjacent
// rise of more than 1 kWh (meter artifact), a constant signal (no
// production), or a length other than a full day at the given resolution.
func IsNoise(run []float64, minuteRes int) bool {
	if len(run) == 0 {
		return true
	}

	noProduction := true
	prev := run[0]
	for _, v := range run {
		if v > prev+1 {
			return true
		}
		if v != prev {
			noProduction = false
		}
		prev = v
	}
	if noProduction {
		return true
	}

	return len(run) != minutesPerDay/minuteRes
}

// isLocalMidnight checks the hour and minute fields of an ISO-8601-style
// timestamp string without parsing the whole value.
func isLocalMidnight(ts string) bool {
	return len(ts) >= 16 && ts[11:13] == "00" && ts[14:16] == "00"
}

func localMonth(ts string) (time.Month, error) {
	if len(ts) < 7 {
		return 0, fmt.Errorf("segment: malformed local timestamp %q", ts)
	}
	m := int(ts[5]-'0')*10 + int(ts[6]-'0')
	if m < 1 || m > 12 {
		return 0, fmt.Errorf("segment: malformed local timestamp %q", ts)
	}
	return time.Month(m), nil
}

// utcLayouts covers the timestamp shapes seen in the household exports.
var utcLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

func parseUTC(ts string) (time.Time, error) {
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("segment: malformed utc timestamp %q", ts)
}
