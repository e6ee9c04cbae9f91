package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxStepDetail bounds the detail stored per step so large model payloads
// never bloat the log.
const maxStepDetail = 1000

// RunState is a state of the workflow orchestrator's state machine.
type RunState string

// Workflow states. Failed is terminal and reachable from any
// non-terminal state; Persisted is the only successful terminal state.
const (
	StateAccepted             RunState = "accepted"
	StateExtracting           RunState = "extracting_requirements"
	StateClarificationPending RunState = "clarification_pending"
	StateDrafting             RunState = "drafting"
	StateFinalizing           RunState = "finalizing"
	StatePersisted            RunState = "persisted"
	StateFailed               RunState = "failed"
)

// StepStatus is the outcome of a single logged step.
type StepStatus string

// Step outcomes.
const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepRecord is one timestamped entry in a run log.
type StepRecord struct {
	Step       string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     StepStatus
	Detail     string
}

// RunLog is the append-only audit trail of one generation run.
// Concurrent drafting tasks append to it, so access is serialised.
type RunLog struct {
	RunID     string
	StartedAt time.Time

	mu    sync.Mutex
	steps []StepRecord
}

// NewRunLog creates a run log for the given run ID.
func NewRunLog(runID string) *RunLog {
	return &RunLog{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
	}
}

// Append records a completed step. Detail is truncated to a fixed size.
func (l *RunLog) Append(step string, startedAt time.Time, status StepStatus, detail string) {
	if len(detail) > maxStepDetail {
		detail = detail[:maxStepDetail] +
			fmt.Sprintf("... [truncated %d chars]", len(detail)-maxStepDetail)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, StepRecord{
		Step:       step,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Status:     status,
		Detail:     detail,
	})
}

// Steps returns a copy of the recorded steps in append order.
func (l *RunLog) Steps() []StepRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]StepRecord, len(l.steps))
	copy(out, l.steps)
	return out
}

// Render produces the run log text artifact.
func (l *RunLog) Render() string {
	var b strings.Builder
	b.WriteString("RUN LOG\n")
	b.WriteString("Run ID: " + l.RunID + "\n")
	b.WriteString("Started: " + l.StartedAt.Format(time.RFC3339) + "\n")
	b.WriteString(strings.Repeat("=", 70) + "\n\n")

	for _, s := range l.Steps() {
		b.WriteString(fmt.Sprintf("Step:   %s\n", s.Step))
		b.WriteString(fmt.Sprintf("Start:  %s\n", s.StartedAt.Format(time.RFC3339Nano)))
		b.WriteString(fmt.Sprintf("End:    %s\n", s.FinishedAt.Format(time.RFC3339Nano)))
		b.WriteString(fmt.Sprintf("Status: %s\n", s.Status))
		if s.Detail != "" {
			b.WriteString(fmt.Sprintf("Detail: %s\n", s.Detail))
		}
		b.WriteString(strings.Repeat("-", 70) + "\n\n")
	}
	return b.String()
}

// RunRecord is the persisted summary of a run, stored in run history.
type RunRecord struct {
	ID            string
	Request       string
	State         RunState
	DocumentTypes []DocumentType
	OutputDir     string
	Error         string
	StartedAt     time.Time
	FinishedAt    time.Time
}
