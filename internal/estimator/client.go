// Package estimator receives per-frame pose messages from the external
// pose estimation service over MQTT. The estimator owns camera access and
// model inference; this side only decodes what it publishes.
package estimator

// #region imports
import (
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// #endregion

// #region client

// ClientConfig holds MQTT connection settings.
type ClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// Client manages the MQTT connection to the pose broker.
type Client struct {
	client mqtt.Client
	config ClientConfig
}

// NewClient connects to the MQTT broker with auto-reconnect.
func NewClient(config ClientConfig) (*Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(config.ClientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetOnConnectHandler(connectHandler)
	opts.SetConnectionLostHandler(connectLostHandler)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker: %w", token.Error())
	}

	log.Println("estimator: connected to broker:", config.Broker)
	return &Client{client: client, config: config}, nil
}

// IsConnected returns whether the client is currently connected.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// Close disconnects from the broker.
func (c *Client) Close() {
	c.client.Disconnect(250)
	log.Println("estimator: disconnected")
}

// #endregion client

// #region subscribe

// Subscribe listens on the pose topic and writes decoded frames to out.
// Malformed payloads are logged and dropped; the stream keeps flowing.
func (c *Client) Subscribe(topic string, out chan<- Frame) error {
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		frame, err := DecodeFrame(msg.Payload())
		if err != nil {
			log.Printf("estimator: dropping payload from %s: %v", msg.Topic(), err)
			return
		}
		out <- frame
	}

	if token := c.client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	log.Printf("estimator: subscribed to %s", topic)
	return nil
}

// #endregion subscribe

// #region handlers

var connectHandler mqtt.OnConnectHandler = func(mqtt.Client) {
	log.Println("estimator: connection established")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(_ mqtt.Client, err error) {
	log.Printf("estimator: connection lost: %v", err)
}

// #endregion handlers
