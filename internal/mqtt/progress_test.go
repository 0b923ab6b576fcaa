package mqtt

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supby/zclext/internal/logger"
	"github.com/supby/zclext/internal/types"
)

type published struct {
	subTopic string
	data     []byte
}

type fakeClient struct {
	messages []published
	err      error
	disposed bool
}

func (c *fakeClient) Dispose() {
	c.disposed = true
}

func (c *fakeClient) Publish(subTopic string, data []byte) error {
	c.messages = append(c.messages, published{subTopic: subTopic, data: data})
	return c.err
}

func TestPublishStep(t *testing.T) {
	client := &fakeClient{}
	p := NewProgressPublisher(client, logger.NewLogger(&bytes.Buffer{}, "[test]", logger.LogLevelDebug))

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p.PublishStep(types.StepEvent{RunID: "r1", Step: "copy-cluster-xml", Status: types.StepSucceeded, Time: now})

	require.Len(t, client.messages, 1)
	assert.Equal(t, "runs/r1/steps/copy-cluster-xml", client.messages[0].subTopic)

	var msg StepMessage
	require.NoError(t, json.Unmarshal(client.messages[0].data, &msg))
	assert.Equal(t, "succeeded", msg.Status)
	assert.Equal(t, "copy-cluster-xml", msg.Step)
	assert.True(t, now.Equal(msg.Time))
	assert.NotContains(t, string(client.messages[0].data), `"error"`)
}

func TestPublishRun(t *testing.T) {
	client := &fakeClient{}
	p := NewProgressPublisher(client, logger.NewLogger(&bytes.Buffer{}, "[test]", logger.LogLevelDebug))

	p.PublishRun(types.RunReport{
		ID:     "r2",
		Status: types.RunFailed,
		Error:  "boom",
		Steps: []types.StepEvent{
			{RunID: "r2", Step: "validate-input", Status: types.StepFailed, Error: "boom"},
		},
	})

	require.Len(t, client.messages, 1)
	assert.Equal(t, "runs/r2", client.messages[0].subTopic)

	var msg RunMessage
	require.NoError(t, json.Unmarshal(client.messages[0].data, &msg))
	assert.Equal(t, "failed", msg.Status)
	assert.Equal(t, "boom", msg.Error)
	require.Len(t, msg.Steps, 1)
	assert.Equal(t, "boom", msg.Steps[0].Error)
}

func TestPublishFailureIsLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	client := &fakeClient{err: errors.New("broker gone")}
	p := NewProgressPublisher(client, logger.NewLogger(buf, "[test]", logger.LogLevelDebug))

	p.PublishStep(types.StepEvent{RunID: "r3", Step: "validate-input", Status: types.StepStarted})

	assert.Contains(t, buf.String(), "broker gone")
}

func TestNilClientPublisherDropsMessages(t *testing.T) {
	p := NewProgressPublisher(nil, nil)

	assert.NotPanics(t, func() {
		p.PublishStep(types.StepEvent{RunID: "r4"})
		p.PublishRun(types.RunReport{ID: "r4"})
	})
}
