// Command split-pv reads a household data export and splits each PV unit's
// cumulative production series into 24 hour runs, bucketed by season. Runs
// are converted to per-sample production, normalized against the season's
// optimal profile, saved as CSV files, and rendered as HTML charts.
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
	"github.com/hauslab/powerprofiles/internal/normalize"
	"github.com/hauslab/powerprofiles/internal/profile"
	"github.com/hauslab/powerprofiles/internal/segment"
)

// defaultUnits are the CoSSMic PV units.
var defaultUnits = []unit{
	{"DE_KN_residential1_pv", "Photovoltaic 1"},
	{"DE_KN_residential3_pv", "Photovoltaic 3"},
	{"DE_KN_residential4_pv", "Photovoltaic 4"},
	{"DE_KN_residential6_pv", "Photovoltaic 6"},
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
	minuteRes := flag.Int("res", 3, "Sampling resolution of the data file in minutes")
	outDir := flag.String("out", filepath.Join(cfg.OutputDir, "pv_runs"), "Directory for season run CSV files")
	chartsDir := flag.String("charts", filepath.Join(cfg.OutputDir, "charts"), "Directory for HTML charts")
	unitList := flag.String("units", "", "Comma-separated column=display overrides for the units to split")
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

	for _, u := range units {
		s := series[u.name]

		seasons, err := segment.Days(s.Power, s.Local, s.UTC, *minuteRes)
		if err != nil {
			log.Fatalf("splitting %s by day: %v", u.display, err)
		}
		log.Infof("%s: %d spring, %d summer, %d autumn, %d winter days",
			u.display, len(seasons[profile.Spring]), len(seasons[profile.Summer]),
			len(seasons[profile.Autumn]), len(seasons[profile.Winter]))

		tsChart := filepath.Join(*chartsDir, u.display+"_time_series.html")
		if err := charts.TimeSeries(tsChart, u.display+" cumulative energy production", s.Minutes, s.Power); err != nil {
			log.Fatalf("rendering time series for %s: %v", u.display, err)
		}
		cumulativeChart := filepath.Join(*chartsDir, u.display+"_seasons_cumulative.html")
		if err := charts.SeasonProfiles(cumulativeChart, u.display+" cumulative production profiles", seasons, *minuteRes); err != nil {
			log.Fatalf("rendering season profiles for %s: %v", u.display, err)
		}

		// Per-sample production, then envelope normalization per season.
		for _, season := range profile.Seasons {
			runs := seasons[season]
			for i, r := range runs {
				runs[i] = r.NonCumulative()
			}

			envelope, err := normalize.Runs(runs)
			if err != nil {
				log.Fatalf("normalizing %s %s: %v", u.display, season, err)
			}
			if envelope != nil {
				optimalChart := filepath.Join(*chartsDir,
					fmt.Sprintf("%s_%s_optimal.html", u.display, season))
				if err := charts.OptimalProfile(optimalChart,
					fmt.Sprintf("%s (%s) optimal production profile", u.display, season),
					runs, envelope, *minuteRes); err != nil {
					log.Fatalf("rendering optimal profile for %s %s: %v", u.display, season, err)
				}
			}

			out, err := os.Create(filepath.Join(*outDir,
				fmt.Sprintf("%s_%s_normalized.csv", u.display, season)))
			if err != nil {
				log.Fatalf("creating season file for %s %s: %v", u.display, season, err)
			}
			err = dataset.WriteSeasonRuns(out, u.name, u.display, runs)
			out.Close()
			if err != nil {
				log.Fatalf("writing season runs for %s %s: %v", u.display, season, err)
			}
		}
	}

	log.Infof("normalized profiles saved to %s", *outDir)
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
