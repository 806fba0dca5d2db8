package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hauslab/powerprofiles/internal/profile"
)

// WriteApplianceRuns writes one appliance's runs as CSV: a single header
// line with the display name, then one comma-separated run per line.
func WriteApplianceRuns(w io.Writer, displayName string, runs []profile.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{displayName}); err != nil {
		return fmt.Errorf("dataset: writing run header: %w", err)
	}
	for _, r := range runs {
		if err := cw.Write(formatValues(r.Values)); err != nil {
			return fmt.Errorf("dataset: writing run: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadApplianceRuns reads the format written by WriteApplianceRuns.
func ReadApplianceRuns(r io.Reader) (displayName string, runs []profile.Run, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return "", nil, fmt.Errorf("dataset: reading run header: %w", err)
	}
	displayName = header[0]

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("dataset: reading runs: %w", err)
		}
		values, err := parseValues(row)
		if err != nil {
			return "", nil, err
		}
		runs = append(runs, profile.Run{Values: values})
	}
	return displayName, runs, nil
}

// WriteSeasonRuns writes one PV season's runs as CSV: a header line with the
// unit name and display name, then one run per line with its UTC start
// timestamp as the first field.
func WriteSeasonRuns(w io.Writer, name, displayName string, runs []profile.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{name, displayName}); err != nil {
		return fmt.Errorf("dataset: writing season header: %w", err)
	}
	for _, r := range runs {
		row := append([]string{r.Start.UTC().Format(time.RFC3339)}, formatValues(r.Values)...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("dataset: writing season run: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSeasonRuns reads the format written by WriteSeasonRuns.
func ReadSeasonRuns(r io.Reader) (name, displayName string, runs []profile.Run, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return "", "", nil, fmt.Errorf("dataset: reading season header: %w", err)
	}
	if len(header) < 2 {
		return "", "", nil, fmt.Errorf("dataset: season header has %d fields, want 2", len(header))
	}
	name, displayName = header[0], header[1]

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", nil, fmt.Errorf("dataset: reading season runs: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		start, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return "", "", nil, fmt.Errorf("dataset: run start %q: %w", row[0], err)
		}
		values, err := parseValues(row[1:])
		if err != nil {
			return "", "", nil, err
		}
		runs = append(runs, profile.Run{Values: values, Start: start})
	}
	return name, displayName, runs, nil
}

// ProfileRecord is one categorized PV day in the weather JSON documents.
type ProfileRecord struct {
	PVName        string    `json:"pvName"`
	PVTilt        int       `json:"pvTilt"`
	PVOrientation int       `json:"pvOrientation"`
	UnixStartUTC  int64     `json:"unixStartUTC"`
	MinuteRes     int       `json:"minuteRes"`
	Profile       []float64 `json:"profile"`
}

// ProfileDocument is the on-disk shape of one season+weather category.
type ProfileDocument struct {
	Data []ProfileRecord `json:"data"`
}

// WriteProfileDocument writes a weather category document as indented JSON.
func WriteProfileDocument(w io.Writer, doc ProfileDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dataset: encoding profile document: %w", err)
	}
	return nil
}

// ClusterDocument is the on-disk shape of one appliance cluster: the
// training runs followed by the successfully classified verification runs.
type ClusterDocument struct {
	MinuteRes int         `json:"minuteRes"`
	Data      [][]float64 `json:"data"`
}

// WriteClusterDocument writes a cluster document as indented JSON.
func WriteClusterDocument(w io.Writer, doc ClusterDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dataset: encoding cluster document: %w", err)
	}
	return nil
}

func formatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

func parseValues(fields []string) ([]float64, error) {
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: parsing value %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
