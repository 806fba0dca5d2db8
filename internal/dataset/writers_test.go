package dataset

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hauslab/powerprofiles/internal/profile"
)

func TestApplianceRunsRoundTrip(t *testing.T) {
	runs := []profile.Run{
		{Values: []float64{0, 1, 2, 3}},
		{Values: []float64{0, 0.5}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteApplianceRuns(&buf, "Washing Machine 1", runs))

	name, got, err := ReadApplianceRuns(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Washing Machine 1", name)
	require.Len(t, got, 2)
	assert.Equal(t, runs[0].Values, got[0].Values)
	assert.Equal(t, runs[1].Values, got[1].Values)
}

func TestSeasonRunsRoundTrip(t *testing.T) {
	start := time.Date(2016, 3, 1, 23, 0, 0, 0, time.UTC)
	runs := []profile.Run{
		{Values: []float64{0, 0.5, 1}, Start: start},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSeasonRuns(&buf, "DE_KN_residential1_pv", "Photovoltaic 1", runs))

	name, display, got, err := ReadSeasonRuns(&buf)
	require.NoError(t, err)
	assert.Equal(t, "DE_KN_residential1_pv", name)
	assert.Equal(t, "Photovoltaic 1", display)
	require.Len(t, got, 1)
	assert.Equal(t, runs[0].Values, got[0].Values)
	assert.True(t, got[0].Start.Equal(start))
}

func TestWriteProfileDocument(t *testing.T) {
	doc := ProfileDocument{
		Data: []ProfileRecord{
			{
				PVName:        "DE_KN_residential1_pv",
				PVTilt:        30,
				PVOrientation: -5,
				UnixStartUTC:  1456786800,
				MinuteRes:     3,
				Profile:       []float64{0, 0.5, 1},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProfileDocument(&buf, doc))

	var got ProfileDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, doc, got)
}

func TestWriteClusterDocument(t *testing.T) {
	doc := ClusterDocument{
		MinuteRes: 1,
		Data:      [][]float64{{0, 1, 2}, {0, 0.5, 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteClusterDocument(&buf, doc))

	var got ClusterDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, doc, got)
}

func TestPVMeta(t *testing.T) {
	meta := PVMeta("DE_KN_residential1_pv")
	assert.Equal(t, 30, meta.Tilt)
	assert.Equal(t, -5, meta.Orientation)

	// Unknown units get zero metadata, not an error.
	assert.Equal(t, PVMetadata{}, PVMeta("DE_KN_residential9_pv"))
}
