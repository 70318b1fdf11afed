package domain

import "time"

type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunNoRecords RunStatus = "no_records"
)

type PublishStatus string

const (
	PublishSkipped   PublishStatus = "skipped"
	PublishPublished PublishStatus = "published"
	PublishDegraded  PublishStatus = "degraded"
	PublishFailed    PublishStatus = "failed"
)

// PublishResult is the outcome of the spreadsheet stage. A failed publish is
// reported here and never turns into a run error.
type PublishResult struct {
	Status PublishStatus
	Sheet  string
	Range  string
	Rows   int
	Err    error
}

func (r PublishResult) OK() bool {
	return r.Status == PublishPublished || r.Status == PublishDegraded
}

type ExportResult struct {
	Path string
	Rows int
	Err  error
}

// TimePeriod represents the date window queried from the source
type TimePeriod struct {
	Start time.Time
	End   time.Time
}

// RunReport summarises a single pipeline run
type RunReport struct {
	Pipeline   string
	Status     RunStatus
	Period     *TimePeriod
	Fetched    int
	Rows       int
	Lookups    []LookupSummary
	Publish    PublishResult
	Export     *ExportResult
	StartedAt  time.Time
	FinishedAt time.Time
}

func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
