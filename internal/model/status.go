package model

// SessionStatus represents the status of a mirror session
type SessionStatus string

const (
	// SessionStatusPending means the session is created but not launched
	SessionStatusPending SessionStatus = "Pending"

	// SessionStatusStarting means the mirror process is being launched
	SessionStatusStarting SessionStatus = "Starting"

	// SessionStatusRunning means the mirror process is up
	SessionStatusRunning SessionStatus = "Running"

	// SessionStatusStopping means a stop was requested
	SessionStatusStopping SessionStatus = "Stopping"

	// SessionStatusStopped means the session was stopped by the user
	SessionStatusStopped SessionStatus = "Stopped"

	// SessionStatusExited means the process ended on its own
	SessionStatusExited SessionStatus = "Exited"

	// SessionStatusError means the launch failed or the process died with an error
	SessionStatusError SessionStatus = "Error"
)

// String returns the string representation of SessionStatus
func (ss SessionStatus) String() string {
	return string(ss)
}

// IsActive returns true if the session is in an active state
func (ss SessionStatus) IsActive() bool {
	return ss == SessionStatusStarting || ss == SessionStatusRunning || ss == SessionStatusStopping
}

// IsFinished returns true if the session is in a finished state
func (ss SessionStatus) IsFinished() bool {
	return ss == SessionStatusStopped || ss == SessionStatusExited || ss == SessionStatusError
}
