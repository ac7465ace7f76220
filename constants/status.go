package constants

// RunStatus is the canonical status for rows in the run history.
type RunStatus string

// Stable values (store these exact strings in DB).
const (
	RunStatusRunning RunStatus = "RUNNING" // in progress
	RunStatusOK      RunStatus = "OK"      // record extracted and written
	RunStatusFailed  RunStatus = "FAILED"  // terminal failure
)
