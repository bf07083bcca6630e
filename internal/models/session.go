package models

import "time"

// WorkflowState represents the conversion state of a workflow.
type WorkflowState string

const (
	StateIdle    WorkflowState = "idle"
	StateLoading WorkflowState = "loading"
	StateDone    WorkflowState = "done"
	StateFailed  WorkflowState = "failed"
)

// Snapshot is the read-only view of a workflow sent to the browser.
type Snapshot struct {
	SessionID  string        `json:"sessionId" msgpack:"sessionId"`
	State      WorkflowState `json:"state" msgpack:"state"`
	CanConvert bool          `json:"canConvert" msgpack:"canConvert"`
	File       *SelectedFile `json:"file,omitempty" msgpack:"file,omitempty"`
	HasResult  bool          `json:"hasResult" msgpack:"hasResult"`
	HTML       string        `json:"html,omitempty" msgpack:"html,omitempty"`
	Error      string        `json:"error,omitempty" msgpack:"error,omitempty"`
	SourceName string        `json:"sourceName,omitempty" msgpack:"sourceName,omitempty"`
	Model      string        `json:"model,omitempty" msgpack:"model,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt" msgpack:"updatedAt"`
}
