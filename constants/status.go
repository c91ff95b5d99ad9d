package constants

// JobStatus is the canonical lifecycle status for rows in jobs.
type JobStatus string

// Stable values (store and serve these exact strings).
const (
	JobStatusProcessing JobStatus = "processing" // queued or in progress
	JobStatusCompleted  JobStatus = "completed"  // output stored, download URL set
	JobStatusFailed     JobStatus = "failed"     // terminal failure
)
