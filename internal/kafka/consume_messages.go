package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/segmentio/kafka-go"
	"github.com/todomarket/whatsapp-bot/internal/config"
	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/internal/usecase"
	"go.uber.org/fx"
)

// StartConsumeMessages wires the order usecase to the chat gateway
// topic. It is a no-op when the consumer is disabled in configuration,
// which is the default for webhook-only deployments.
func StartConsumeMessages(
	sd fx.Shutdowner,
	lc fx.Lifecycle,
	conf *config.Config,
	orderUsecase usecase.OrderUsecase,
) error {
	if !conf.Kafka.Enabled {
		log.Warnf(context.Background(), "Kafka consumer is disabled in configuration")
		return nil
	}
	return startKafkaConsumer(consumerOptions{
		sd: sd,
		lc: lc,
		readerConf: kafka.ReaderConfig{
			Brokers:     conf.Kafka.Brokers,
			GroupID:     conf.Kafka.GroupID,
			GroupTopics: []string{conf.Kafka.Topic},
		},
		consumeTimeout: 30 * time.Second,
		handler: func(ctx context.Context, msg kafka.Message) error {
			var event models.KafkaMessage
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("unmarshal kafka message: %w", err)
			}

			if event.Pattern != "message.received" {
				log.Infow(ctx, "ignoring event", "pattern", event.Pattern)
				return nil
			}

			incoming := models.IncomingMessage{
				UserID:    event.Data.From,
				Text:      event.Data.Body,
				ReplyID:   event.Data.ReplyID,
				CreatedAt: event.Data.Timestamp,
			}
			if incoming.UserID == "" {
				log.Warnw(ctx, "event has no sender, skipping")
				return nil
			}

			return orderUsecase.ProcessMessage(ctx, incoming)
		},
	})
}
