package sitepatch

import (
	"context"
	"time"
)

// Job is one page to regenerate: a backup source, a site target and the
// recipe that connects them.
type Job struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Target string `json:"target"`
	Recipe string `json:"recipe"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.Name == "" {
		return Errorf(EINVALID, "job name required")
	}
	if j.Source == "" {
		return Errorf(EINVALID, "job %q: source path required", j.Name)
	}
	if j.Target == "" {
		return Errorf(EINVALID, "job %q: target path required", j.Name)
	}
	if j.Recipe == "" {
		return Errorf(EINVALID, "job %q: recipe required", j.Name)
	}
	return nil
}

// Status is the result of processing one job.
type Status string

// Job statuses.
const (
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome reports what happened to one job.
type Outcome struct {
	Job      Job    `json:"job"`
	Status   Status `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Sections int    `json:"sections"`
	Images   int    `json:"images"`

	// Checksum fingerprints the target content after the job.
	Checksum string `json:"checksum,omitempty"`
}

// Report collects the outcomes of a batch run in job order.
type Report struct {
	RunID      string    `json:"runId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	DryRun     bool      `json:"dryRun"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Counts returns the number of updated, skipped and failed jobs.
func (r *Report) Counts() (updated, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusUpdated:
			updated++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return updated, skipped, failed
}

// Failed returns the outcomes with StatusFailed.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// Progress reports a finished job during a batch run.
type Progress struct {
	Outcome   Outcome
	Completed int
	Total     int
}

// ProgressFunc is called as jobs finish.
type ProgressFunc func(Progress)

// BatchRunner processes jobs and reports their outcomes. One job's failure
// never stops the others; the returned error is reserved for invalid input
// or cancellation.
type BatchRunner interface {
	Run(ctx context.Context, jobs []Job, progress ProgressFunc) (*Report, error)
}
