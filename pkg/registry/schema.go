// pkg/registry/schema.go
package registry

import (
	"time"

	"loan-assistant/internal/common/status"
)

type AgentRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one simulated backend agent: what it shows while it runs
// and how long it takes.
type Activity struct {
	ID           string         `json:"id"`
	DisplayName  string         `json:"displayName"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	TaskType     string         `json:"taskType"`
	Agent        string         `json:"agent"`
	Task         string         `json:"task"`
	CompleteTask string         `json:"completeTask"`
	Reroute      string         `json:"reroute,omitempty"`
	LatencyMs    int            `json:"latencyMs"`
	Progress     []ProgressStep `json:"progress"`
	ErrorCodes   []string       `json:"errorCodes"`
	Tags         []string       `json:"tags"`
}

type ProgressStep struct {
	AtMs    int    `json:"atMs"`
	Percent int    `json:"percent"`
	Message string `json:"message,omitempty"`
}

func (a Activity) Stage() status.Stage {
	return status.Stage{
		TaskType:     a.TaskType,
		Agent:        a.Agent,
		Task:         a.Task,
		CompleteTask: a.CompleteTask,
		Reroute:      a.Reroute,
	}
}

func (a Activity) Latency() time.Duration {
	return time.Duration(a.LatencyMs) * time.Millisecond
}

func (a Activity) Steps() []status.Step {
	steps := make([]status.Step, len(a.Progress))
	for i, p := range a.Progress {
		steps[i] = status.Step{
			After:   time.Duration(p.AtMs) * time.Millisecond,
			Percent: p.Percent,
			Message: p.Message,
		}
	}
	return steps
}

// WithLatency returns a copy resolving after ms milliseconds, with progress
// steps rescaled to keep their relative position.
func (a Activity) WithLatency(ms int) Activity {
	if ms <= 0 || ms == a.LatencyMs {
		return a
	}
	out := a
	out.Progress = make([]ProgressStep, len(a.Progress))
	for i, p := range a.Progress {
		p.AtMs = p.AtMs * ms / a.LatencyMs
		out.Progress[i] = p
	}
	out.LatencyMs = ms
	return out
}
