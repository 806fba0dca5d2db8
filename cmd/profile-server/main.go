// Command profile-server serves pipeline results over HTTP: run records and
// cluster thresholds from the local results store, and the rendered chart
// files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hauslab/powerprofiles/internal/config"
	"github.com/hauslab/powerprofiles/internal/log"
	"github.com/hauslab/powerprofiles/internal/report"
	"github.com/hauslab/powerprofiles/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	addr := flag.String("listen", cfg.ListenAddr, "Address to listen on")
	resultsDB := flag.String("db", cfg.ResultsDB, "Path of the local results store")
	chartsDir := flag.String("charts", filepath.Join(cfg.OutputDir, "charts"), "Directory with rendered HTML charts")
	debug := flag.Bool("debug", cfg.Debug, "Enable debug logging")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := sqlite.Open(*resultsDB)
	if err != nil {
		log.Fatalf("opening results store: %v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := report.New(*addr, store, *chartsDir, log.GetSugaredLogger())
	if err := server.Run(ctx); err != nil {
		log.Fatalf("profile server: %v", err)
	}
}
