// Command classify-appliance reads the single-run CSVs produced by
// split-appliance and classifies the runs into operating-mode clusters: two
// thirds of the runs are assigned to hand-parameterized cluster rectangles
// (training), a Mahalanobis admission threshold is derived per cluster, and
// the remaining third is classified against those thresholds. Clusters are
// written as JSON documents, recorded in the local results store, optionally
// archived to Postgres, and rendered as an HTML scatter chart.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hauslab/powerprofiles/internal/charts"
	"github.com/hauslab/powerprofiles/internal/cluster"
	"github.com/hauslab/powerprofiles/internal/config"
	"github.com/hauslab/powerprofiles/internal/dataset"
	"github.com/hauslab/powerprofiles/internal/log"
	"github.com/hauslab/powerprofiles/internal/profile"
	"github.com/hauslab/powerprofiles/internal/storage/postgres"
	"github.com/hauslab/powerprofiles/internal/storage/sqlite"
)

var defaultDisplays = []string{
	"Dishwasher 1",
	"Dishwasher 2",
	"Dishwasher 3",
	"Dishwasher 4",
	"Dishwasher 5",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runsDir := flag.String("runs", filepath.Join(cfg.OutputDir, "dw_runs"), "Directory with single-run CSVs")
	outDir := flag.String("out", filepath.Join(cfg.OutputDir, "dw_clusters"), "Directory for cluster JSON documents")
	chartsDir := flag.String("charts", filepath.Join(cfg.OutputDir, "charts"), "Directory for HTML charts")
	resultsDB := flag.String("db", cfg.ResultsDB, "Path of the local results store")
	paramsFile := flag.String("params", "", "JSON cluster parameter table (default: built-in dishwasher table)")
	applianceType := flag.String("type", "dishwasher", "Built-in parameter table to use: dishwasher or washing-machine")
	unitName := flag.String("unit", "dishwashers", "Unit name used in the results store")
	minuteRes := flag.Int("res", 1, "Sampling resolution the runs were split with")
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

	clusters, err := loadClusters(*paramsFile, *applianceType)
	if err != nil {
		log.Fatalf("loading cluster parameters: %v", err)
	}

	// Collect runs from every appliance of this type.
	var allRuns []profile.Run
	for _, display := range displays {
		f, err := os.Open(filepath.Join(*runsDir, display+".csv"))
		if err != nil {
			log.Fatalf("opening runs: %v", err)
		}
		_, runs, err := dataset.ReadApplianceRuns(f)
		f.Close()
		if err != nil {
			log.Fatalf("reading runs for %s: %v", display, err)
		}
		allRuns = append(allRuns, runs...)
	}
	log.Infof("%d runs read from %s", len(allRuns), *runsDir)

	training, verification := cluster.Split(allRuns)

	unclassified := cluster.AssignTraining(clusters, training)
	if err := cluster.DeriveThresholds(clusters); err != nil {
		log.Fatalf("deriving thresholds: %v", err)
	}
	unclassified = append(unclassified, cluster.Classify(clusters, verification)...)

	for i, c := range clusters {
		log.Infof("cluster %d: %d training, %d classified, threshold %.3f",
			i+1, len(c.TrainingRuns), len(c.ClassifiedRuns), c.Threshold)
	}
	log.Infof("%d runs not classified", len(unclassified))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}
	if err := os.MkdirAll(*chartsDir, 0o755); err != nil {
		log.Fatalf("creating charts directory: %v", err)
	}

	for i, c := range clusters {
		doc := dataset.ClusterDocument{MinuteRes: *minuteRes}
		for _, r := range c.TrainingRuns {
			doc.Data = append(doc.Data, r.Values)
		}
		for _, r := range c.ClassifiedRuns {
			doc.Data = append(doc.Data, r.Values)
		}

		name := fmt.Sprintf("cluster %d (%d-%d min, %g-%g kWh).json",
			i+1, c.MinDuration, c.MaxDuration, c.MinConsumption, c.MaxConsumption)
		f, err := os.Create(filepath.Join(*outDir, name))
		if err != nil {
			log.Fatalf("creating cluster document: %v", err)
		}
		err = dataset.WriteClusterDocument(f, doc)
		f.Close()
		if err != nil {
			log.Fatalf("writing cluster document: %v", err)
		}
	}
	log.Infof("cluster documents saved to %s", *outDir)

	scatterPath := filepath.Join(*chartsDir, *unitName+"_clusters.html")
	if err := charts.ClusterScatter(scatterPath, "Clusters for appliance runs", clusters, unclassified); err != nil {
		log.Fatalf("rendering cluster chart: %v", err)
	}

	store, err := sqlite.Open(*resultsDB)
	if err != nil {
		log.Fatalf("opening results store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	stored, thresholds, err := persist(ctx, store, *unitName, *minuteRes, clusters, unclassified)
	if err != nil {
		log.Fatalf("storing results: %v", err)
	}

	if cfg.ArchiveDSN != "" {
		client, err := postgres.NewClient(cfg.ArchiveDSN, log.GetSugaredLogger())
		if err != nil {
			log.Fatalf("connecting to archive: %v", err)
		}
		if err := client.ArchiveRuns(stored); err != nil {
			log.Fatalf("archiving runs: %v", err)
		}
		if err := client.ArchiveThresholds(thresholds); err != nil {
			log.Fatalf("archiving thresholds: %v", err)
		}
	}
}

func loadClusters(paramsFile, applianceType string) ([]*cluster.Cluster, error) {
	if paramsFile != "" {
		f, err := os.Open(paramsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return cluster.LoadParams(f)
	}

	switch applianceType {
	case "dishwasher":
		return cluster.DishwasherClusters(), nil
	case "washing-machine":
		return cluster.WashingMachineClusters(), nil
	default:
		return nil, fmt.Errorf("unknown appliance type %q", applianceType)
	}
}

// persist records every run (clustered and unclassified) and every cluster
// threshold in the results store.
func persist(ctx context.Context, store *sqlite.Store, unit string, minuteRes int,
	clusters []*cluster.Cluster, unclassified []profile.Run) ([]sqlite.RunRecord, []sqlite.ThresholdRecord, error) {

	var stored []sqlite.RunRecord
	var thresholds []sqlite.ThresholdRecord

	insert := func(r profile.Run, clusterIdx *int) error {
		rec := sqlite.RunRecord{
			Unit:         unit,
			Kind:         sqlite.KindAppliance,
			ClusterIndex: clusterIdx,
			MinuteRes:    minuteRes,
			Samples:      r.Values,
		}
		id, err := store.InsertRun(ctx, rec)
		if err != nil {
			return err
		}
		rec.ID = id
		stored = append(stored, rec)
		return nil
	}

	for i, c := range clusters {
		idx := i
		for _, r := range c.TrainingRuns {
			if err := insert(r, &idx); err != nil {
				return nil, nil, err
			}
		}
		for _, r := range c.ClassifiedRuns {
			if err := insert(r, &idx); err != nil {
				return nil, nil, err
			}
		}

		t := sqlite.ThresholdRecord{
			Unit:            unit,
			ClusterIndex:    i,
			Threshold:       c.Threshold,
			TrainingCount:   len(c.TrainingRuns),
			ClassifiedCount: len(c.ClassifiedRuns),
		}
		if err := store.UpsertThreshold(ctx, t); err != nil {
			return nil, nil, err
		}
		thresholds = append(thresholds, t)
	}

	for _, r := range unclassified {
		if err := insert(r, nil); err != nil {
			return nil, nil, err
		}
	}

	return stored, thresholds, nil
}
