package mqtt

import "time"

type StepMessage struct {
	RunID  string    `json:"runId"`
	Step   string    `json:"step"`
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	Time   time.Time `json:"time"`
}

type RunMessage struct {
	RunID       string        `json:"runId"`
	MatterRepo  string        `json:"matterRepo"`
	ZapFile     string        `json:"zapFile"`
	ClusterName string        `json:"clusterName,omitempty"`
	Status      string        `json:"status"`
	Error       string        `json:"error,omitempty"`
	Started     time.Time     `json:"started"`
	Finished    time.Time     `json:"finished"`
	Steps       []StepMessage `json:"steps"`
}
