// Package postgres archives pipeline results to a central Postgres
// database. Archival is optional: tools only connect when a DSN is
// configured, and local output never depends on it.
package postgres

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hauslab/powerprofiles/internal/log"
	"github.com/hauslab/powerprofiles/internal/storage/sqlite"
)

// Client holds the connection to the archive database
type Client struct {
	DB     *gorm.DB
	logger *zap.SugaredLogger
}

// NewClient connects to the archive database and migrates its schema.
func NewClient(dsn string, lg *zap.SugaredLogger) (*Client, error) {
	dbLogger := logger.New(
		zap.NewStdLog(log.GetSugaredLogger().Desugar()),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to archive database: %w", err)
	}

	if err := db.AutoMigrate(&ArchivedRun{}, &ArchivedThreshold{}); err != nil {
		return nil, fmt.Errorf("unable to migrate archive schema: %w", err)
	}

	return &Client{DB: db, logger: lg}, nil
}

// ArchiveRuns copies run records into the archive, replacing rows that share
// a run ID from an earlier archival of the same results database.
func (c *Client) ArchiveRuns(records []sqlite.RunRecord) error {
	for _, rec := range records {
		row := ArchivedRun{
			RunID:      rec.ID,
			Unit:       rec.Unit,
			Kind:       rec.Kind,
			Season:     rec.Season,
			Weather:    rec.Weather,
			ClusterIdx: rec.ClusterIndex,
			MinuteRes:  rec.MinuteRes,
		}
		if !rec.StartUTC.IsZero() {
			start := rec.StartUTC
			row.StartUTC = &start
		}
		if err := row.Samples.Set(rec.Samples); err != nil {
			return fmt.Errorf("encoding samples for run %s: %w", rec.ID, err)
		}

		err := c.DB.Where("run_id = ?", rec.ID).Delete(&ArchivedRun{}).Error
		if err != nil {
			return fmt.Errorf("replacing archived run %s: %w", rec.ID, err)
		}
		if err := c.DB.Create(&row).Error; err != nil {
			return fmt.Errorf("archiving run %s: %w", rec.ID, err)
		}
	}

	c.logger.Infof("archived %d runs", len(records))
	return nil
}

// ArchiveThresholds copies cluster threshold records into the archive.
func (c *Client) ArchiveThresholds(records []sqlite.ThresholdRecord) error {
	for _, rec := range records {
		err := c.DB.Where("unit = ? AND cluster_idx = ?", rec.Unit, rec.ClusterIndex).
			Delete(&ArchivedThreshold{}).Error
		if err != nil {
			return fmt.Errorf("replacing archived threshold: %w", err)
		}

		row := ArchivedThreshold{
			Unit:            rec.Unit,
			ClusterIdx:      rec.ClusterIndex,
			Threshold:       rec.Threshold,
			TrainingCount:   rec.TrainingCount,
			ClassifiedCount: rec.ClassifiedCount,
		}
		if err := c.DB.Create(&row).Error; err != nil {
			return fmt.Errorf("archiving threshold: %w", err)
		}
	}
	return nil
}
