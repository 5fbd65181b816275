package interview

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is one queued transcript-analysis request.
type Job struct {
	ID string `gorm:"primaryKey;size:26"` // ULID length

	SessionID string `gorm:"size:64;index;not null"`
	Category  string `gorm:"type:varchar(32);not null"`

	// Speaker-labelled transcript captured at enqueue time, so the job is
	// self-contained even after the live session ends.
	Transcript string `gorm:"type:text;not null"`

	Status JobStatus `gorm:"type:varchar(16);index;not null"`

	// Filled when succeeded: the analysis as a JSON blob.
	Result *string `gorm:"type:text"`

	// Filled when failed
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Job) TableName() string { return "analysis_jobs" }

// ArchiveRecord is the durable row behind the session archive: one
// session-id-keyed JSON blob of turns plus list-view columns.
type ArchiveRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	SessionID string    `gorm:"size:64;uniqueIndex;not null"`
	Category  string    `gorm:"type:varchar(32);not null"`
	Topic     string    `gorm:"type:text"`
	Turns     string    `gorm:"type:text;not null"`
	TurnCount int       `gorm:"not null"`
	SavedAt   time.Time `gorm:"not null"`
}

func (ArchiveRecord) TableName() string { return "archived_sessions" }
