package mqtt

import (
	"encoding/json"
	"fmt"

	"github.com/supby/zclext/internal/logger"
	"github.com/supby/zclext/internal/types"
)

// ProgressPublisher announces pipeline progress under <rootTopic>/runs/<runId>.
// Publishing is best effort: failures are logged and never fail the run.
type ProgressPublisher interface {
	PublishStep(e types.StepEvent)
	PublishRun(r types.RunReport)
}

// NewProgressPublisher returns a publisher over client. A nil client gives a publisher that
// drops everything, for runs without a broker configured.
func NewProgressPublisher(client MqttClient, progressLogger logger.Logger) ProgressPublisher {
	if client == nil {
		return noopPublisher{}
	}
	return &progressPublisher{client: client, logger: progressLogger}
}

type progressPublisher struct {
	client MqttClient
	logger logger.Logger
}

func (p *progressPublisher) PublishStep(e types.StepEvent) {
	p.publish(fmt.Sprintf("runs/%s/steps/%s", e.RunID, e.Step), toStepMessage(e))
}

func (p *progressPublisher) PublishRun(r types.RunReport) {
	msg := RunMessage{
		RunID:       r.ID,
		MatterRepo:  r.MatterRepo,
		ZapFile:     r.ZapFile,
		ClusterName: r.ClusterName,
		Status:      string(r.Status),
		Error:       r.Error,
		Started:     r.Started,
		Finished:    r.Finished,
		Steps:       make([]StepMessage, 0, len(r.Steps)),
	}
	for _, e := range r.Steps {
		msg.Steps = append(msg.Steps, toStepMessage(e))
	}

	p.publish(fmt.Sprintf("runs/%s", r.ID), msg)
}

func (p *progressPublisher) publish(subTopic string, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("Failed to encode %s message: %v", subTopic, err)
		return
	}

	if err := p.client.Publish(subTopic, data); err != nil {
		p.logger.Warn("Failed to publish progress: %v", err)
	}
}

func toStepMessage(e types.StepEvent) StepMessage {
	return StepMessage{
		RunID:  e.RunID,
		Step:   e.Step,
		Status: string(e.Status),
		Error:  e.Error,
		Time:   e.Time,
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishStep(types.StepEvent) {}

func (noopPublisher) PublishRun(types.RunReport) {}
