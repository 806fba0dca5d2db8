// Command categorize-pv reads the season-separated, normalized PV runs
// produced by split-pv and assigns each run a weather type (sunny, partially
// cloudy, cloudy, rainy) from its accumulated production. Categories are
// written as JSON documents, recorded in the local results store, optionally
// archived to Postgres, and rendered as HTML charts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hauslab/powerprofiles/internal/charts"
	"github.com/hauslab/powerprofiles/internal/config"
	"github.com/hauslab/powerprofiles/internal/dataset"
	"github.com/hauslab/powerprofiles/internal/log"
	"github.com/hauslab/powerprofiles/internal/profile"
	"github.com/hauslab/powerprofiles/internal/storage/postgres"
	"github.com/hauslab/powerprofiles/internal/storage/sqlite"
	"github.com/hauslab/powerprofiles/internal/weather"
)

var defaultDisplays = []string{
	"Photovoltaic 1",
	"Photovoltaic 3",
	"Photovoltaic 4",
	"Photovoltaic 6",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runsDir := flag.String("runs", filepath.Join(cfg.OutputDir, "pv_runs"), "Directory with normalized season run CSVs")
	outDir := flag.String("out", filepath.Join(cfg.OutputDir, "pv_categories"), "Directory for category JSON documents")
	chartsDir := flag.String("charts", filepath.Join(cfg.OutputDir, "charts"), "Directory for HTML charts")
	resultsDB := flag.String("db", cfg.ResultsDB, "Path of the local results store")
	minuteRes := flag.Int("res", 3, "Sampling resolution the PV runs were split with")
	debug := flag.Bool("debug", cfg.Debug, "Enable debug logging")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	displays := defaultDisplays
	if flag.NArg() > 0 {
		displays = flag.Args()
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}
	if err := os.MkdirAll(*chartsDir, 0o755); err != nil {
		log.Fatalf("creating charts directory: %v", err)
	}

	store, err := sqlite.Open(*resultsDB)
	if err != nil {
		log.Fatalf("opening results store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// One JSON document per season and weather type, merged across units.
	documents := make(map[string]*dataset.ProfileDocument)
	var stored []sqlite.RunRecord

	for _, display := range displays {
		for _, season := range profile.Seasons {
			path := filepath.Join(*runsDir, fmt.Sprintf("%s_%s_normalized.csv", display, season))
			f, err := os.Open(path)
			if err != nil {
				log.Fatalf("opening season runs: %v", err)
			}
			name, _, runs, err := dataset.ReadSeasonRuns(f)
			f.Close()
			if err != nil {
				log.Fatalf("reading %s: %v", path, err)
			}

			byWeather := weather.Categorize(runs)
			if len(byWeather) == 0 {
				log.Infof("%s %s: no runs, season skipped", display, season)
				continue
			}

			meta := dataset.PVMeta(name)
			for _, w := range profile.WeatherTypes {
				for _, r := range byWeather[w] {
					key := fmt.Sprintf("%s_%s", season, w)
					doc := documents[key]
					if doc == nil {
						doc = &dataset.ProfileDocument{}
						documents[key] = doc
					}
					doc.Data = append(doc.Data, dataset.ProfileRecord{
						PVName:        name,
						PVTilt:        meta.Tilt,
						PVOrientation: meta.Orientation,
						UnixStartUTC:  r.Start.Unix(),
						MinuteRes:     *minuteRes,
						Profile:       r.Values,
					})

					rec := sqlite.RunRecord{
						Unit:      name,
						Kind:      sqlite.KindPVDay,
						Season:    season.String(),
						Weather:   w.String(),
						StartUTC:  r.Start,
						MinuteRes: *minuteRes,
						Samples:   r.Values,
					}
					if rec.ID, err = store.InsertRun(ctx, rec); err != nil {
						log.Fatalf("storing run: %v", err)
					}
					stored = append(stored, rec)
				}
			}

			log.Infof("%s %s: %d sunny, %d partially cloudy, %d cloudy, %d rainy",
				display, season, len(byWeather[profile.Sunny]), len(byWeather[profile.PartiallyCloudy]),
				len(byWeather[profile.Cloudy]), len(byWeather[profile.Rainy]))

			chartPath := filepath.Join(*chartsDir,
				fmt.Sprintf("%s_%s_weather_cumulative.html", display, season))
			title := fmt.Sprintf("%s (%s) accumulated normalized profiles by weather type", display, season)
			if err := charts.WeatherAccumulated(chartPath, title, byWeather, *minuteRes); err != nil {
				log.Fatalf("rendering weather chart for %s %s: %v", display, season, err)
			}
		}
	}

	for key, doc := range documents {
		f, err := os.Create(filepath.Join(*outDir, key+".json"))
		if err != nil {
			log.Fatalf("creating category document: %v", err)
		}
		err = dataset.WriteProfileDocument(f, *doc)
		f.Close()
		if err != nil {
			log.Fatalf("writing category document %s: %v", key, err)
		}
	}
	log.Infof("category documents saved to %s", *outDir)

	if cfg.ArchiveDSN != "" {
		client, err := postgres.NewClient(cfg.ArchiveDSN, log.GetSugaredLogger())
		if err != nil {
			log.Fatalf("connecting to archive: %v", err)
		}
		if err := client.ArchiveRuns(stored); err != nil {
			log.Fatalf("archiving runs: %v", err)
		}
	}
}
