package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("property-service/nats-publisher")

const subjectPrefix = "property.notifications."

// notification is the wire shape of a lifecycle event. DedupID is generated
// fresh per publish, so retries of the same logical event are distinct
// messages; only truly simultaneous duplicate publishes would collapse.
type notification struct {
	PropertyID string    `json:"property_id"`
	Message    string    `json:"message"`
	DedupID    string    `json:"dedup_id"`
	SentAt     time.Time `json:"sent_at"`
}

// Publisher broadcasts property lifecycle events over NATS. The subject
// carries the property identifier, so events for one property are delivered
// in order relative to each other.
type Publisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

func NewPublisher(url string, log *logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("PropertyService NATS Publisher"),
		nats.Timeout(10 * time.Second),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	return &Publisher{
		conn:   conn,
		logger: log.Named("NATSPublisher"),
	}, nil
}

// Publish sends message keyed by propertyID. A fresh dedup identifier is
// attached both in the payload and as the Nats-Msg-Id header.
func (p *Publisher) Publish(ctx context.Context, propertyID, message string) error {
	subject := subjectPrefix + propertyID
	_, span := tracer.Start(ctx, fmt.Sprintf("NATS.Publish.%s", subject))
	defer span.End()

	n := notification{
		PropertyID: propertyID,
		Message:    message,
		DedupID:    uuid.NewString(),
		SentAt:     time.Now().UTC(),
	}
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification for subject %s: %w", subject, err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Header:  nats.Header{"Nats-Msg-Id": []string{n.DedupID}},
		Data:    data,
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to publish notification to subject %s: %w", subject, err)
	}

	p.logger.Debug("notification published",
		zap.String("subject", subject),
		zap.String("dedup_id", n.DedupID))
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
