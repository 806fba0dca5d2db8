// Package dataset reads the CoSSMic-style household CSV exports and writes
// the pipeline's run and category files. It is the I/O collaborator around
// the numeric core: nothing here makes algorithmic decisions.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Column positions of the two timestamp columns in the household exports.
const (
	utcColumn   = 0
	localColumn = 1
)

// UnitSeries is one named unit's slice of the household table: power samples
// at a fixed minute resolution with the parallel timestamp columns and a
// relative minute counter.
type UnitSeries struct {
	Name    string
	Minutes []int
	Power   []float64
	UTC     []string
	Local   []string
}

// ReadHousehold reads the household CSV and extracts a series per requested
// unit. A requested unit missing from the header fails immediately, before
// any row is consumed. Empty power cells are forward-filled from the last
// known value, or 0 if none has been observed yet.
func ReadHousehold(r io.Reader, units []string, minuteRes int) (map[string]*UnitSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: reading header: %w", err)
	}

	columns := make(map[string]int, len(units))
	for _, unit := range units {
		found := false
		for i, name := range header {
			if name == unit {
				columns[unit] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("dataset: unit %q not present in header", unit)
		}
	}

	series := make(map[string]*UnitSeries, len(units))
	for _, unit := range units {
		series[unit] = &UnitSeries{Name: unit}
	}

	minutes := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: reading row: %w", err)
		}

		for _, unit := range units {
			s := series[unit]
			col := columns[unit]

			s.Minutes = append(s.Minutes, minutes)
			s.UTC = append(s.UTC, field(row, utcColumn))
			s.Local = append(s.Local, field(row, localColumn))

			if col < len(row) && row[col] != "" {
				v, err := strconv.ParseFloat(row[col], 64)
				if err != nil {
					return nil, fmt.Errorf("dataset: unit %q at minute %d: %w", unit, minutes, err)
				}
				s.Power = append(s.Power, v)
			} else if len(s.Power) > 0 {
				s.Power = append(s.Power, s.Power[len(s.Power)-1])
			} else {
				s.Power = append(s.Power, 0)
			}
		}
		minutes += minuteRes
	}

	return series, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
