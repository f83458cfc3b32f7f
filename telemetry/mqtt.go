package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 2 * time.Second
	streamBuffer   = 256
)

// ErrPublishTimeout indicates the broker did not acknowledge in time
var ErrPublishTimeout = errors.New("mqtt publish timeout")

// Publisher is the part of a broker client the event stream needs
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MQTTClient wraps the Paho client
type MQTTClient struct {
	client paho.Client
	url    string
	mu     sync.Mutex
}

// NewMQTTClient creates a client for url but does not connect
func NewMQTTClient(url, clientID string) *MQTTClient {
	opts := paho.NewClientOptions().
		AddBroker(url).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(false).
		SetKeepAlive(30 * time.Second)

	return &MQTTClient{
		client: paho.NewClient(opts),
		url:    url,
	}
}

// Connect attempts one connection to the broker without blocking indefinitely
func (c *MQTTClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.New("mqtt connect timeout: " + c.url)
	}
	return token.Error()
}

// Publish sends payload at QoS 0, not retained
func (c *MQTTClient) Publish(topic string, payload []byte) error {
	token := c.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}

// Disconnect cleanly disconnects from the broker
func (c *MQTTClient) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client.Disconnect(250)
}

// Message is the JSON body published for each game event
type Message struct {
	Session string    `json:"session"`
	Event   string    `json:"event"`
	Frame   int64     `json:"frame"`
	Time    time.Time `json:"ts"`
	Payload any       `json:"payload,omitempty"`
}

type outgoing struct {
	topic   string
	payload []byte
}

// EventStream publishes game events to "<topic>/<event name>"
// Events are encoded during dispatch and sent from Run, so a slow broker never stalls a step
type EventStream struct {
	pub     Publisher
	topic   string
	session string
	box     *outbox[outgoing]
	failed  atomic.Int64
}

// NewEventStream creates a stream publishing through pub
func NewEventStream(pub Publisher, topic, session string) *EventStream {
	return &EventStream{
		pub:     pub,
		topic:   topic,
		session: session,
		box:     newOutbox[outgoing](streamBuffer),
	}
}

func (s *EventStream) EventTypes() []event.EventType {
	return event.AllEventTypes()
}

func (s *EventStream) HandleEvent(w *engine.World, ev event.GameEvent) {
	b, err := json.Marshal(Message{
		Session: s.session,
		Event:   ev.Type.String(),
		Frame:   ev.Frame,
		Time:    w.Now(),
		Payload: ev.Payload,
	})
	if err != nil {
		log.Printf("mqtt: encode %s: %v", ev.Type, err)
		return
	}
	s.box.offer(outgoing{topic: s.topic + "/" + ev.Type.String(), payload: b})
}

// Run publishes queued events until ctx is done
func (s *EventStream) Run(ctx context.Context) error {
	s.box.run(ctx, func(m outgoing) {
		if err := s.pub.Publish(m.topic, m.payload); err != nil {
			if s.failed.Add(1) == 1 {
				log.Printf("mqtt: publish %s: %v", m.topic, err)
			}
		}
	})
	return nil
}

// Stats returns delivered, dropped and failed counts
func (s *EventStream) Stats() (sent, dropped, failed int64) {
	return s.box.sent.Load(), s.box.dropped.Load(), s.failed.Load()
}
