// Package sqlite is the local results store: segmented runs, their category
// labels, and derived cluster thresholds, kept in a single SQLite file so
// the profile server and later tool invocations can read earlier results.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run kinds stored in the runs table.
const (
	KindAppliance = "appliance"
	KindPVDay     = "pv_day"
)

type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the results database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			unit         TEXT NOT NULL,
			kind         TEXT NOT NULL,
			season       TEXT,
			weather      TEXT,
			cluster_idx  INTEGER,
			start_utc    TIMESTAMP,
			minute_res   INTEGER,
			samples      TEXT NOT NULL,
			created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS runs_unit_kind ON runs(unit, kind);
		CREATE TABLE IF NOT EXISTS cluster_thresholds (
			unit             TEXT NOT NULL,
			cluster_idx      INTEGER NOT NULL,
			threshold        DOUBLE NOT NULL,
			training_count   BIGINT NOT NULL,
			classified_count BIGINT NOT NULL,
			created_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (unit, cluster_idx)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &Store{db}, nil
}

// RunRecord is one stored run. Season, Weather, and ClusterIndex are
// optional labels; a nil ClusterIndex and empty strings mean unlabeled.
type RunRecord struct {
	ID           string
	Unit         string
	Kind         string
	Season       string
	Weather      string
	ClusterIndex *int
	StartUTC     time.Time
	MinuteRes    int
	Samples      []float64
}

// InsertRun stores a run, assigning it a fresh ID when none is set.
func (s *Store) InsertRun(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	samples, err := json.Marshal(rec.Samples)
	if err != nil {
		return "", fmt.Errorf("failed to encode samples: %w", err)
	}

	var clusterIdx sql.NullInt64
	if rec.ClusterIndex != nil {
		clusterIdx = sql.NullInt64{Int64: int64(*rec.ClusterIndex), Valid: true}
	}
	var start sql.NullTime
	if !rec.StartUTC.IsZero() {
		start = sql.NullTime{Time: rec.StartUTC.UTC(), Valid: true}
	}

	_, err = s.ExecContext(ctx,
		`INSERT INTO runs (id, unit, kind, season, weather, cluster_idx, start_utc, minute_res, samples)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Unit, rec.Kind, nullString(rec.Season), nullString(rec.Weather),
		clusterIdx, start, rec.MinuteRes, string(samples),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return rec.ID, nil
}

// ListRuns returns the stored runs for a unit, oldest start first. An empty
// kind matches all kinds.
func (s *Store) ListRuns(ctx context.Context, unit, kind string) ([]RunRecord, error) {
	query := `SELECT id, unit, kind, season, weather, cluster_idx, start_utc, minute_res, samples
		  FROM runs WHERE unit = ?`
	args := []any{unit}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY start_utc`

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var season, weather sql.NullString
		var clusterIdx sql.NullInt64
		var start sql.NullTime
		var samples string

		if err := rows.Scan(&rec.ID, &rec.Unit, &rec.Kind, &season, &weather,
			&clusterIdx, &start, &rec.MinuteRes, &samples); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.Season = season.String
		rec.Weather = weather.String
		if clusterIdx.Valid {
			idx := int(clusterIdx.Int64)
			rec.ClusterIndex = &idx
		}
		if start.Valid {
			rec.StartUTC = start.Time.UTC()
		}
		if err := json.Unmarshal([]byte(samples), &rec.Samples); err != nil {
			return nil, fmt.Errorf("failed to decode samples for run %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListUnits returns the distinct unit names present in the store.
func (s *Store) ListUnits(ctx context.Context) ([]string, error) {
	rows, err := s.QueryContext(ctx, `SELECT DISTINCT unit FROM runs ORDER BY unit`)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []string
	for rows.Next() {
		var unit string
		if err := rows.Scan(&unit); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

// ThresholdRecord is one cluster's derived admission threshold and counts.
type ThresholdRecord struct {
	Unit            string
	ClusterIndex    int
	Threshold       float64
	TrainingCount   int
	ClassifiedCount int
}

// UpsertThreshold stores or replaces a cluster threshold row.
func (s *Store) UpsertThreshold(ctx context.Context, rec ThresholdRecord) error {
	_, err := s.ExecContext(ctx,
		`INSERT INTO cluster_thresholds (unit, cluster_idx, threshold, training_count, classified_count)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (unit, cluster_idx) DO UPDATE SET
			threshold = excluded.threshold,
			training_count = excluded.training_count,
			classified_count = excluded.classified_count`,
		rec.Unit, rec.ClusterIndex, rec.Threshold, rec.TrainingCount, rec.ClassifiedCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert threshold: %w", err)
	}
	return nil
}

// ListThresholds returns the stored thresholds for a unit in cluster order.
func (s *Store) ListThresholds(ctx context.Context, unit string) ([]ThresholdRecord, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT unit, cluster_idx, threshold, training_count, classified_count
		 FROM cluster_thresholds WHERE unit = ? ORDER BY cluster_idx`, unit)
	if err != nil {
		return nil, fmt.Errorf("failed to query thresholds: %w", err)
	}
	defer rows.Close()

	var records []ThresholdRecord
	for rows.Next() {
		var rec ThresholdRecord
		if err := rows.Scan(&rec.Unit, &rec.ClusterIndex, &rec.Threshold,
			&rec.TrainingCount, &rec.ClassifiedCount); err != nil {
			return nil, fmt.Errorf("failed to scan threshold: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
