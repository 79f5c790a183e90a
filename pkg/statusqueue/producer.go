// Package statusqueue carries commit status updates over a kafka topic so
// delivery happens outside the goroutine handling the lifecycle event.
package statusqueue

import (
	"context"
	"strings"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FeatureHeader is the kafka header carrying the build feature of an update.
const FeatureHeader = "feature_id"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer schedules status updates on the status topic.
type Producer struct {
	topicName   string
	kafkaWriter messageWriter
	logger      lumber.Logger
}

// NewProducer returns the status queue producer. Messages are keyed by commit
// so the updates of one commit are consumed in order.
func NewProducer(cfg *config.Config, logger lumber.Logger) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:          strings.Split(cfg.Kafka.Brokers, ","),
		Topic:            cfg.Kafka.StatusQueueConfig.Topic,
		ErrorLogger:      kafka.LoggerFunc(logger.Errorf),
		Balancer:         &kafka.Hash{},
		CompressionCodec: kafka.Snappy.Codec(),
		RequiredAcks:     int(kafka.RequireOne), // will wait for acknowledgement from only master.
	})
	logger.Infof("Kafka Producer connection created successfully for topic %s", writer.Topic)
	return &Producer{
		topicName:   writer.Topic,
		kafkaWriter: writer,
		logger:      logger,
	}
}

// Schedule writes update on the status topic.
func (p *Producer) Schedule(ctx context.Context, update *core.StatusUpdate) error {
	rawMessage, err := json.Marshal(update)
	if err != nil {
		p.logger.Errorf("failed to marshal status update %s, buildID %s, error: %v", update.ID, update.BuildID, err)
		return err
	}
	msg := kafka.Message{
		Key:     []byte(utils.GetCommitMessageKey(update.RepoSlug, update.CommitID)),
		Value:   rawMessage,
		Headers: []kafka.Header{{Key: FeatureHeader, Value: []byte(update.FeatureID)}},
	}
	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Errorf("failed to write message in kafka topic %s, buildID %s, error: %v", p.topicName, update.BuildID, err)
		return err
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Producer) Close() error {
	return p.kafkaWriter.Close()
}
