package domain

import "time"

// Status is the record reported to the supervisor on every transition.
type Status struct {
	State                   State         `json:"state"`
	Accepts                 Accepts       `json:"accepts"`
	ExitCode                ExitCode      `json:"exit_code"`
	ServiceSpecificExitCode uint32        `json:"service_specific_exit_code"`
	CheckPoint              uint32        `json:"checkpoint"`
	WaitHint                time.Duration `json:"wait_hint"`
}

// Snapshot is the persisted view of a service status, written on every
// transition so that other processes can inspect a running instance.
type Snapshot struct {
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
	RunID     string    `json:"run_id"`
	PID       int       `json:"pid"`
	State     string    `json:"state"`
	Accepts   string    `json:"accepts"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEmpty returns true if the snapshot has never been written.
func (s Snapshot) IsEmpty() bool {
	return s.RunID == ""
}

// Mode is the execution mode selected from the startup arguments.
type Mode int

const (
	ModeManaged Mode = iota
	ModeInteractive
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeManaged:
		return "managed"
	case ModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}
