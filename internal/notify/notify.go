package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/xnorik/xnorik-backend/internal/db"
	"github.com/xnorik/xnorik-backend/internal/models"
)

// statusMessage is the payload published for each status change.
type statusMessage struct {
	Code string                   `json:"code"`
	From models.MaintenanceStatus `json:"from"`
	To   models.MaintenanceStatus `json:"to"`
	At   time.Time                `json:"at"`
}

// Publisher publishes status-change messages to an MQTT broker, one topic
// per tracking code.
type Publisher struct {
	client mqtt.Client
}

// NewPublisher connects to the broker and returns a publisher.
func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return &Publisher{client: client}, nil
}

// Publish sends one status change to xnorik/track/<code>.
func (p *Publisher) Publish(code string, from, to models.MaintenanceStatus) error {
	payload, err := json.Marshal(statusMessage{
		Code: code,
		From: from,
		To:   to,
		At:   time.Now(),
	})
	if err != nil {
		return err
	}

	token := p.client.Publish("xnorik/track/"+code, 0, false, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// StatusPublisher publishes one status transition to the outside world.
type StatusPublisher interface {
	Publish(code string, from, to models.MaintenanceStatus) error
}

// Notifier consumes the collection-wide change stream and republishes
// status transitions to MQTT.
type Notifier struct {
	services db.ServiceCollection
	pub      StatusPublisher
}

// NewNotifier creates a new status-change notifier
func NewNotifier(services db.ServiceCollection, pub StatusPublisher) *Notifier {
	return &Notifier{services: services, pub: pub}
}

// Run blocks, forwarding status changes until ctx is cancelled or the
// stream ends. The first snapshot of each record only primes the diff.
func (n *Notifier) Run(ctx context.Context) error {
	stream, err := n.services.WatchServices(ctx)
	if err != nil {
		return err
	}
	defer stream.Close(context.Background())

	seen := make(map[string]models.MaintenanceStatus)
	for stream.Next(ctx) {
		snapshot, err := stream.Record()
		if err != nil {
			log.WithError(err).Warn("Failed to decode change-stream snapshot")
			continue
		}

		id := snapshot.ID.Hex()
		prev, known := seen[id]
		seen[id] = snapshot.CurrentStatus
		if !known || prev == snapshot.CurrentStatus {
			continue
		}

		if err := n.pub.Publish(snapshot.TrackingCode, prev, snapshot.CurrentStatus); err != nil {
			log.WithError(err).WithField("code", snapshot.TrackingCode).
				Warn("Failed to publish status change")
			continue
		}
		log.WithFields(log.Fields{
			"code": snapshot.TrackingCode,
			"from": prev,
			"to":   snapshot.CurrentStatus,
		}).Info("Published status change")
	}
	return ctx.Err()
}
