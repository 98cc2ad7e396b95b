package model

// RunState represents the lifecycle state of the download runner
type RunState string

const (
	// RunStateIdle means no run is in progress
	RunStateIdle RunState = "Idle"

	// RunStateRunning means a run is processing its job
	RunStateRunning RunState = "Running"

	// RunStateStopping means a stop was requested and the worker has not yet
	// reached a checkpoint
	RunStateStopping RunState = "Stopping"
)

// String returns the string representation of RunState
func (rs RunState) String() string {
	return string(rs)
}

// IsActive returns true while a worker owns the browser session
func (rs RunState) IsActive() bool {
	return rs == RunStateRunning || rs == RunStateStopping
}

// CanStart returns true if a new run may be started from this state
func (rs RunState) CanStart() bool {
	return rs == RunStateIdle || rs == ""
}
