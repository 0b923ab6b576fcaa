package types

import "time"

type StepStatus string

const (
	StepStarted   StepStatus = "started"
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// StepEvent reports a pipeline step changing status.
type StepEvent struct {
	RunID  string
	Step   string
	Status StepStatus
	// Error is the failure text of a failed step.
	Error string
	Time  time.Time
}

type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

type RunReport struct {
	ID          string
	MatterRepo  string
	ZapFile     string
	ClusterName string
	Started     time.Time
	Finished    time.Time
	Status      RunStatus
	Error       string
	Steps       []StepEvent
}
