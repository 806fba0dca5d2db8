// Command split-appliance reads a household data export and splits each
// appliance's power time series into individual runs (wash cycles). Runs are
// saved as CSV files and rendered as HTML charts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hauslab/powerprofiles/internal/charts"
	"github.com/hauslab/powerprofiles/internal/config"
	"github.com/hauslab/powerprofiles/internal/dataset"
	"github.com/hauslab/powerprofiles/internal/log"
	"github.com/hauslab/powerprofiles/internal/segment"
)

// defaultUnits are the CoSSMic washing machines.
var defaultUnits = []unit{
	{"DE_KN_residential1_washing_machine", "Washing Machine 1"},
	{"DE_KN_residential2_washing_machine", "Washing Machine 2"},
	{"DE_KN_residential3_washing_machine", "Washing Machine 3"},
	{"DE_KN_residential4_washing_machine", "Washing Machine 4"},
	{"DE_KN_residential5_washing_machine", "Washing Machine 5"},
	{"DE_KN_residential6_washing_machine", "Washing Machine 6"},
}

type unit struct {
	name    string
	display string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dataFile := flag.String("data", cfg.DataFile, "Household CSV export to read")
	minuteRes := flag.Int("res", cfg.MinuteRes, "Sampling resolution of the data file in minutes")
	outDir := flag.String("out", filepath.Join(cfg.OutputDir, "wm_runs"), "Directory for run CSV files")
	chartsDir := flag.String("charts", filepath.Join(cfg.OutputDir, "charts"), "Directory for HTML charts")
	unitList := flag.String("units", "", "Comma-separated column=display overrides for the units to split")
	maxPause := flag.Int("max-pause", 1, "Longest flat stretch (samples) allowed inside a run")
	minDuration := flag.Int("min-duration", 10, "Sample count a run must exceed to be kept")
	maxRise := flag.Float64("max-rise", 5, "Total rise (kWh) a run must stay below to be kept")
	debug := flag.Bool("debug", cfg.Debug, "Enable debug logging")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	units := defaultUnits
	if *unitList != "" {
		units, err = parseUnits(*unitList)
		if err != nil {
			log.Fatalf("parsing -units: %v", err)
		}
	}

	log.Infof("reading from %s", *dataFile)
	f, err := os.Open(*dataFile)
	if err != nil {
		log.Fatalf("opening data file: %v", err)
	}

	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.name
	}
	series, err := dataset.ReadHousehold(f, names, *minuteRes)
	f.Close()
	if err != nil {
		log.Fatalf("reading household data: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}
	if err := os.MkdirAll(*chartsDir, 0o755); err != nil {
		log.Fatalf("creating charts directory: %v", err)
	}

	params := segment.ApplianceParams{
		MaxPauseAllowed: *maxPause,
		MinDuration:     *minDuration,
		MaxRise:         *maxRise,
	}

	for _, u := range units {
		s := series[u.name]
		runs := segment.Appliance(s.Power, params)
		log.Infof("%s: %d runs", u.display, len(runs))

		out, err := os.Create(filepath.Join(*outDir, u.display+".csv"))
		if err != nil {
			log.Fatalf("creating run file for %s: %v", u.display, err)
		}
		err = dataset.WriteApplianceRuns(out, u.display, runs)
		out.Close()
		if err != nil {
			log.Fatalf("writing runs for %s: %v", u.display, err)
		}

		tsChart := filepath.Join(*chartsDir, u.display+"_time_series.html")
		if err := charts.TimeSeries(tsChart, u.display+" cumulative energy consumption", s.Minutes, s.Power); err != nil {
			log.Fatalf("rendering time series for %s: %v", u.display, err)
		}
		profileChart := filepath.Join(*chartsDir, u.display+"_profiles.html")
		if err := charts.RunProfiles(profileChart, u.display+" runs", runs, *minuteRes); err != nil {
			log.Fatalf("rendering profiles for %s: %v", u.display, err)
		}
	}

	log.Infof("runs saved to %s", *outDir)
}

func parseUnits(list string) ([]unit, error) {
	var units []unit
	for _, entry := range strings.Split(list, ",") {
		name, display, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q is not column=display", entry)
		}
		units = append(units, unit{strings.TrimSpace(name), strings.TrimSpace(display)})
	}
	return units, nil
}
