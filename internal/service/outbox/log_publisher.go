package outbox

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// logPublisher пишет события в лог вместо брокера. Используется при
// запуске без Kafka, чтобы outbox продолжал опустошаться.
type logPublisher struct {
	logger *log.Entry
}

// NewLogPublisher создаёт publisher, публикующий события в лог.
func NewLogPublisher(logger *log.Entry) domain.OutboxPublisher {
	if logger == nil {
		logger = log.WithField("component", "log-publisher")
	}
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(event domain.OutboxMessage) error {
	p.logger.WithFields(log.Fields{
		"outbox_id":      event.ID,
		"aggregate_type": event.AggregateType,
		"aggregate_id":   event.AggregateID,
		"event_type":     event.EventType,
	}).Info("Событие опубликовано в лог")
	return nil
}

var _ domain.OutboxPublisher = (*logPublisher)(nil)
