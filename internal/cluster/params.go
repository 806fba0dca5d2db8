package cluster

import (
	"encoding/json"
	"fmt"
	"io"
)

// Hand-calibrated cluster rectangles for the CoSSMic household appliances.
// The values were tuned manually against the training scatter of each
// appliance type and are treated as opaque configuration by the classifier.

// WashingMachineClusters returns the parameter set for washing machine runs.
func WashingMachineClusters() []*Cluster {
	return []*Cluster{
		{MinDuration: 158, MaxDuration: 185, MinConsumption: 0.5, MaxConsumption: 0.82},
		{MinDuration: 86, MaxDuration: 110, MinConsumption: 0.40, MaxConsumption: 0.85},
		{MinDuration: 110, MaxDuration: 130, MinConsumption: 0.40, MaxConsumption: 0.82},
		{MinDuration: 10, MaxDuration: 40, MinConsumption: 0.00, MaxConsumption: 0.12},
		{MinDuration: 130, MaxDuration: 152, MinConsumption: 0.40, MaxConsumption: 0.82},
		{MinDuration: 111, MaxDuration: 135, MinConsumption: 0.82, MaxConsumption: 1.55},
		{MinDuration: 40, MaxDuration: 71, MinConsumption: 0.16, MaxConsumption: 0.38},
		{MinDuration: 91, MaxDuration: 130, MinConsumption: 1.55, MaxConsumption: 2.31},
		{MinDuration: 40, MaxDuration: 70, MinConsumption: 0.04, MaxConsumption: 0.16},
		{MinDuration: 46, MaxDuration: 111, MinConsumption: 0.85, MaxConsumption: 1.55},
		{MinDuration: 71, MaxDuration: 95, MinConsumption: 0.10, MaxConsumption: 0.40},
		{MinDuration: 68, MaxDuration: 86, MinConsumption: 0.40, MaxConsumption: 0.85},
		{MinDuration: 10, MaxDuration: 40, MinConsumption: 0.12, MaxConsumption: 0.46},
		{MinDuration: 30, MaxDuration: 68, MinConsumption: 0.38, MaxConsumption: 0.77},
		{MinDuration: 95, MaxDuration: 130, MinConsumption: 0.12, MaxConsumption: 0.40},
		{MinDuration: 135, MaxDuration: 185, MinConsumption: 0.82, MaxConsumption: 1.41},
		{MinDuration: 200, MaxDuration: 255, MinConsumption: 0.39, MaxConsumption: 1.24},
	}
}

// DishwasherClusters returns the parameter set for dishwasher runs.
func DishwasherClusters() []*Cluster {
	return []*Cluster{
		{MinDuration: 92, MaxDuration: 115, MinConsumption: 0.67, MaxConsumption: 1.17},
		{MinDuration: 117, MaxDuration: 135, MinConsumption: 0.80, MaxConsumption: 1.20},
		{MinDuration: 73, MaxDuration: 103, MinConsumption: 1.10, MaxConsumption: 1.65},
		{MinDuration: 51, MaxDuration: 66, MinConsumption: 0.99, MaxConsumption: 1.32},
		{MinDuration: 66, MaxDuration: 90, MinConsumption: 0.62, MaxConsumption: 1.02},
		{MinDuration: 55, MaxDuration: 68, MinConsumption: 0.53, MaxConsumption: 0.98},
		{MinDuration: 47, MaxDuration: 80, MinConsumption: 0.24, MaxConsumption: 0.48},
		{MinDuration: 28, MaxDuration: 48, MinConsumption: 0.35, MaxConsumption: 0.82},
	}
}

// paramRecord is the JSON shape for caller-supplied parameter tables.
type paramRecord struct {
	MinDuration    int     `json:"minDuration"`
	MaxDuration    int     `json:"maxDuration"`
	MinConsumption float64 `json:"minConsumption"`
	MaxConsumption float64 `json:"maxConsumption"`
}

// LoadParams reads an ordered JSON array of cluster rectangles. The order is
// preserved: it determines the first-match-wins training assignment.
func LoadParams(r io.Reader) ([]*Cluster, error) {
	var records []paramRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("cluster: decoding parameter table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("cluster: parameter table is empty")
	}

	clusters := make([]*Cluster, 0, len(records))
	for i, rec := range records {
		if rec.MinDuration > rec.MaxDuration || rec.MinConsumption > rec.MaxConsumption {
			return nil, fmt.Errorf("cluster: parameter %d has inverted bounds", i)
		}
		clusters = append(clusters, &Cluster{
			MinDuration:    rec.MinDuration,
			MaxDuration:    rec.MaxDuration,
			MinConsumption: rec.MinConsumption,
			MaxConsumption: rec.MaxConsumption,
		})
	}
	return clusters, nil
}
