package pipeline

import "github.com/mamadbah2/lfs-pipeline/internal/domain/models"

// Status categorizes how a pipeline run ended.
type Status string

const (
	StatusSucceeded       Status = "succeeded"
	StatusFetchFailed     Status = "fetch_failed"
	StatusTransformFailed Status = "transform_failed"
	StatusLoadFailed      Status = "load_failed"
)

// Outcome is the result of a single Run.
type Outcome struct {
	Status Status
	Err    error
	Report models.QualityReport
	Loaded int
}

// Succeeded reports whether every stage completed.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	if o.Succeeded() {
		return 0
	}
	return 1
}
