// internal/common/status/event.go
package status

import "time"

type Phase string

const (
	PhasePending  Phase = "pending"
	PhaseProgress Phase = "progress"
	PhaseComplete Phase = "complete"
	PhaseError    Phase = "error"
)

// Terminal reports whether the phase ends an operation.
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseError
}

// Stage names the agent and task shown for an operation.
type Stage struct {
	TaskType     string `json:"taskType"`
	Agent        string `json:"agent"`
	Task         string `json:"task"`
	CompleteTask string `json:"completeTask,omitempty"`
	Reroute      string `json:"reroute,omitempty"`
}

// Event is one status notification. At most one is live at a time.
type Event struct {
	ID          string    `json:"id"`
	OperationID string    `json:"operationId"`
	TaskType    string    `json:"taskType"`
	Agent       string    `json:"agent"`
	Task        string    `json:"task"`
	Phase       Phase     `json:"phase"`
	Percent     int       `json:"percent"`
	Message     string    `json:"message,omitempty"`
	Reroute     string    `json:"reroute,omitempty"`
	EmittedAt   time.Time `json:"emittedAt"`
}

// Listener receives every new live event, or nil when the live event is
// dismissed.
type Listener func(current *Event)
