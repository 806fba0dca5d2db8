// Package config loads pipeline configuration from the environment,
// optionally seeded from a .env file. Values the cmd tools expose as flags
// take precedence over the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by the pipeline tools.
type Config struct {
	// DataFile is the household CSV export to read.
	DataFile string `envconfig:"PP_DATA_FILE" default:"./data/original/household_data_1min_singleindex.csv"`

	// MinuteRes is the sampling resolution of DataFile in minutes.
	MinuteRes int `envconfig:"PP_MINUTE_RES" default:"1"`

	// OutputDir is the root for run CSVs, category JSON, and charts.
	OutputDir string `envconfig:"PP_OUTPUT_DIR" default:"./out"`

	// ResultsDB is the path of the local SQLite results store.
	ResultsDB string `envconfig:"PP_RESULTS_DB" default:"./out/powerprofiles.db"`

	// ArchiveDSN is an optional Postgres DSN; when set, tools archive
	// their results there after writing local output.
	ArchiveDSN string `envconfig:"PP_ARCHIVE_DSN"`

	// ListenAddr is the profile-server bind address.
	ListenAddr string `envconfig:"PP_LISTEN_ADDR" default:":8086"`

	// Debug switches the logger to development mode.
	Debug bool `envconfig:"PP_DEBUG" default:"false"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; a missing file is not an
// error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: processing environment: %w", err)
	}
	if cfg.MinuteRes <= 0 || 1440%cfg.MinuteRes != 0 {
		return nil, fmt.Errorf("config: minute resolution %d must divide a day evenly", cfg.MinuteRes)
	}
	return &cfg, nil
}
