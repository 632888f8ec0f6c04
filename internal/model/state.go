package model

// JobState represents the lifecycle state of a download job
type JobState string

const (
	// JobStateIdle means the job was created but not handed to the runner
	JobStateIdle JobState = "Idle"

	// JobStateRunning means the worker is transferring data
	JobStateRunning JobState = "Running"

	// JobStateCompleted means the transfer finished successfully
	JobStateCompleted JobState = "Completed"

	// JobStateFailed means the transfer failed for a reason other than cancellation
	JobStateFailed JobState = "Failed"

	// JobStateCancelled means the user cancelled the transfer
	JobStateCancelled JobState = "Cancelled"
)

// String returns the string representation of JobState
func (s JobState) String() string {
	return string(s)
}

// IsActive returns true if the job is running
func (s JobState) IsActive() bool {
	return s == JobStateRunning
}

// IsFinished returns true if the job reached a terminal state
func (s JobState) IsFinished() bool {
	return s == JobStateCompleted || s == JobStateFailed || s == JobStateCancelled
}

// CanTransition reports whether the state machine allows from -> to.
// Cancelled additionally requires a cancel request, which DownloadJob checks.
func CanTransition(from, to JobState) bool {
	switch from {
	case JobStateIdle:
		return to == JobStateRunning
	case JobStateRunning:
		return to == JobStateCompleted || to == JobStateFailed || to == JobStateCancelled
	default:
		return false
	}
}
