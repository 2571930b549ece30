package model

import (
	"fmt"
	"time"
)

// ProcessKind identifies what kind of run a ProcessingLog records.
type ProcessKind string

const (
	ProcessImport         ProcessKind = "import"
	ProcessClassification ProcessKind = "classification"
)

// ProcessingLog records one import or classification run. Entries are
// append-only: counts are filled in once at the end of the run and the
// row is never touched again. RunID correlates the import run with the
// classification run it triggers.
type ProcessingLog struct {
	ID                uint        `gorm:"primaryKey" json:"log_id"`
	RunID             string      `gorm:"size:36;index" json:"run_id"`
	Kind              ProcessKind `gorm:"not null;size:20" json:"process_type"`
	FileName          string      `gorm:"size:200" json:"file_name"`
	RecordsProcessed  int         `gorm:"not null;default:0" json:"records_processed"`
	RecordsSuccessful int         `gorm:"not null;default:0" json:"records_successful"`
	RecordsFailed     int         `gorm:"not null;default:0" json:"records_failed"`
	ErrorMessage      string      `json:"error_message"`
	CreatedAt         time.Time   `json:"created_at"`
}

func (ProcessingLog) TableName() string {
	return "processing_logs"
}

// Report renders the human-readable run summary shown to users.
func (l ProcessingLog) Report() string {
	return fmt.Sprintf("%d succeeded, %d failed", l.RecordsSuccessful, l.RecordsFailed)
}
