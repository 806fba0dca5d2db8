package postgres

import (
	"time"

	"github.com/jackc/pgtype"
	"gorm.io/gorm"
)

// ArchivedRun is one labeled run archived to Postgres. Samples are stored as
// a JSONB array so downstream consumers can query profiles without a join.
type ArchivedRun struct {
	gorm.Model
	RunID      string       `gorm:"column:run_id;uniqueIndex;not null"`
	Unit       string       `gorm:"column:unit;index;not null"`
	Kind       string       `gorm:"column:kind;not null"`
	Season     string       `gorm:"column:season"`
	Weather    string       `gorm:"column:weather"`
	ClusterIdx *int         `gorm:"column:cluster_idx"`
	StartUTC   *time.Time   `gorm:"column:start_utc"`
	MinuteRes  int          `gorm:"column:minute_res;not null"`
	Samples    pgtype.JSONB `gorm:"column:samples;type:jsonb;default:'[]';not null"`
}

// TableName implements the GORM Tabler interface
func (ArchivedRun) TableName() string {
	return "archived_runs"
}

// ArchivedThreshold is one cluster's derived admission threshold.
type ArchivedThreshold struct {
	gorm.Model
	Unit            string  `gorm:"column:unit;index:idx_unit_cluster,unique;not null"`
	ClusterIdx      int     `gorm:"column:cluster_idx;index:idx_unit_cluster,unique;not null"`
	Threshold       float64 `gorm:"column:threshold;not null"`
	TrainingCount   int     `gorm:"column:training_count;not null"`
	ClassifiedCount int     `gorm:"column:classified_count;not null"`
}

// TableName implements the GORM Tabler interface
func (ArchivedThreshold) TableName() string {
	return "archived_thresholds"
}
