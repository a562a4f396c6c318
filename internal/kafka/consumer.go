package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/todomarket/whatsapp-bot/pkg/util"
	"go.uber.org/fx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type consumerOptions struct {
	sd             fx.Shutdowner
	lc             fx.Lifecycle
	readerConf     kafka.ReaderConfig
	consumeTimeout time.Duration
	handler        func(ctx context.Context, msg kafka.Message) error
}

func startKafkaConsumer(opts consumerOptions) error {
	metrics, err := util.GetHistogramVec("kafka_messages_consumed", "status", "topic", "group")
	if err != nil {
		return fmt.Errorf("get histogram vec: %w", err)
	}

	reader := kafka.NewReader(opts.readerConf)
	loopCtx, cancel := context.WithCancel(context.Background())

	opts.lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(loopCtx, "starting Kafka consumer",
					"topics", opts.readerConf.GroupTopics,
					"group", opts.readerConf.GroupID)
				if err := consumeLoop(loopCtx, reader, metrics, opts); err != nil {
					log.Errorw(loopCtx, "Kafka consumer stopped", "error", err)
					opts.sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return reader.Close()
		},
	})

	return nil
}

func consumeLoop(ctx context.Context, reader *kafka.Reader, metrics *prometheus.HistogramVec, opts consumerOptions) error {
	groupID := reader.Config().GroupID

	for ctx.Err() == nil {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			log.Errorw(ctx, "error fetching message", "error", err)
			continue
		}

		processMessage(ctx, msg, groupID, metrics, opts)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Errorw(ctx, "failed to commit message", "error", err)
		}
	}
	return nil
}

func processMessage(ctx context.Context, msg kafka.Message, groupID string, metrics *prometheus.HistogramVec, opts consumerOptions) {
	start := time.Now()
	lagMs := start.Sub(msg.Time).Milliseconds()

	err := handleWithRecover(ctx, msg, opts)
	duration := time.Since(start)

	code := getCode(err)
	content := "success"
	if err != nil {
		content = err.Error()
	}

	level := getLogLevel(code)
	log.Logw(ctx, level, content,
		"code", code,
		"duration_ms", duration.Milliseconds(),
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"lag_ms", lagMs,
		"key", string(msg.Key),
		"value", json.RawMessage(msg.Value),
	)

	metrics.
		WithLabelValues(code.String(), msg.Topic, groupID).
		Observe(duration.Seconds())
}

func handleWithRecover(msgCtx context.Context, msg kafka.Message, opts consumerOptions) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PANIC RECOVER: %+v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(msgCtx, opts.consumeTimeout)
	defer cancel()

	return opts.handler(ctx, msg)
}

func getCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}
	if errors.Is(err, context.Canceled) {
		return codes.Canceled
	}
	st, ok := status.FromError(err)
	if !ok {
		return status.Code(errors.Unwrap(err))
	}
	return st.Code()
}

func getLogLevel(code codes.Code) logger.Level {
	switch code {
	case codes.OK:
		return logger.InfoLevel
	case codes.Canceled,
		codes.InvalidArgument,
		codes.NotFound,
		codes.AlreadyExists,
		codes.PermissionDenied,
		codes.Unauthenticated,
		codes.ResourceExhausted,
		codes.FailedPrecondition,
		codes.Aborted,
		codes.Unimplemented,
		codes.OutOfRange:
		return logger.WarnLevel
	default:
		return logger.ErrorLevel
	}
}
