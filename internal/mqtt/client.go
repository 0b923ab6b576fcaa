package mqtt

import (
	"fmt"
	"log"
	"time"

	mqttlib "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"

	"github.com/supby/zclext/internal/configuration"
	"github.com/supby/zclext/internal/logger"
)

const publishTimeout = 5 * time.Second

type MqttClient interface {
	Dispose()
	Publish(subTopic string, data []byte) error
}

// NewClient connects to the broker in config. The client id is derived from the root topic
// and the run id so concurrent runs do not kick each other off the broker.
func NewClient(config configuration.MqttConfiguration, clientSuffix string, clientLogger logger.Logger) (MqttClient, error) {
	retClient := defaultMqttClient{
		configuration: config,
		logger:        clientLogger,
	}

	mqttlib.ERROR = log.New(clientLogger.GetWriter(), "[MQTT Client] ", 0)

	opts := mqttlib.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", config.Address, config.Port))
	opts.SetClientID(fmt.Sprintf("%s-%s", config.RootTopic, clientSuffix))
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetConnectTimeout(publishTimeout)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(1 * time.Second)
	opts.SetOrderMatters(true)
	opts.OnConnect = func(client mqttlib.Client) {
		retClient.logger.Debug("Connected")
	}
	opts.OnConnectionLost = func(client mqttlib.Client, err error) {
		retClient.logger.Warn("Connection lost: %v", err)
	}

	innerClient := mqttlib.NewClient(opts)

	token := innerClient.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return nil, errors.Errorf("connecting to MQTT on '%v:%v': timeout", config.Address, config.Port)
	}
	if token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "connecting to MQTT on '%v:%v'", config.Address, config.Port)
	}

	retClient.logger.Info("Connected to MQTT on '%v:%v'", config.Address, config.Port)

	retClient.innerClient = innerClient

	return &retClient, nil
}

type defaultMqttClient struct {
	innerClient   mqttlib.Client
	configuration configuration.MqttConfiguration
	logger        logger.Logger
}

func (cl *defaultMqttClient) Dispose() {
	cl.logger.Debug("Disposing MQTT client")
	cl.innerClient.Disconnect(250)
}

func (cl *defaultMqttClient) Publish(subTopic string, data []byte) error {
	topic := fmt.Sprintf("%v/%v", cl.configuration.RootTopic, subTopic)
	token := cl.innerClient.Publish(topic, 1, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return errors.Errorf("publishing to %s: timeout", topic)
	}
	return errors.Wrapf(token.Error(), "publishing to %s", topic)
}
