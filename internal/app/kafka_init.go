package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
)

// initOutboxPublishers подбирает публикатор для outbox-воркера. При пустом
// списке брокеров события уходят в лог, DLQ в этом режиме отсутствует.
func initOutboxPublishers(brokers string, logger *log.Entry) (main, dlq domain.OutboxPublisher, producer *kafka.Producer) {
	if brokers == "" {
		logger.Info("Kafka не настроен, события публикуются в лог")
		return outbox.NewLogPublisher(logger), nil, nil
	}

	brokerList := strings.Split(brokers, ",")
	p, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("Не удалось создать Kafka producer, события публикуются в лог")
		return outbox.NewLogPublisher(logger), nil, nil
	}

	logger.WithField("brokers", brokerList).Info("Kafka producer инициализирован")
	main = kafka.NewOutboxPublisher(p, kafka.TopicSaleEvents, kafka.TopicCatalogEvents)
	dlq = kafka.NewOutboxPublisher(p, kafka.TopicDeadLetterQueue, kafka.TopicDeadLetterQueue)
	return main, dlq, p
}

// closeKafka закрывает producer если он был создан.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("Ошибка при закрытии Kafka producer")
		return
	}
	logger.Info("Kafka producer закрыт")
}
