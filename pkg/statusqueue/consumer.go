package statusqueue

import (
	"context"
	"errors"
	"strings"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type consumer struct {
	topicName string
	reader    messageReader
	service   core.GitStatusService
	logger    lumber.Logger
}

// NewConsumer returns the consumer delivering the updates of the status topic through service.
// Messages of a partition are delivered one at a time to keep the updates of a commit ordered.
func NewConsumer(cfg *config.Config, service core.GitStatusService, logger lumber.Logger) core.QueueConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:               strings.Split(cfg.Kafka.Brokers, ","),
		Topic:                 cfg.Kafka.StatusQueueConfig.Topic,
		ErrorLogger:           kafka.LoggerFunc(logger.Errorf),
		GroupID:               cfg.Kafka.StatusQueueConfig.ConsumerGroup,
		MaxBytes:              1e6, // 1MB
		WatchPartitionChanges: true,
		GroupBalancers:        []kafka.GroupBalancer{kafka.RoundRobinGroupBalancer{}}})
	logger.Infof("Kafka Consumer Group %s created successfully", cfg.Kafka.StatusQueueConfig.ConsumerGroup)
	return &consumer{
		topicName: cfg.Kafka.StatusQueueConfig.Topic,
		reader:    reader,
		service:   service,
		logger:    logger,
	}
}

func (c *consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			c.logger.Errorf("Kafka FetchMessage of topic: %v failed: %v", c.topicName, err)
			continue
		}
		c.logger.Debugf("Kafka: Message received on partition: %d, offset: %d, topic: %s", msg.Partition, msg.Offset, msg.Topic)
		if err := c.handle(ctx, msg); err != nil {
			c.logger.Errorf("failed to deliver status update of partition %d, offset %d, error: %v", msg.Partition, msg.Offset, err)
		}
		// failed deliveries are recorded as problems, the message is not redelivered
		if err := c.reader.CommitMessages(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Errorf("failed to commit offset %d of partition %d, error: %v", msg.Offset, msg.Partition, err)
		}
	}

	if err := c.Close(); err != nil {
		c.logger.Errorf("failed to close Kafka reader, error: %v", err)
	}
	c.logger.Debugf("kafka consumer closed for status topic")
}

func (c *consumer) handle(ctx context.Context, msg kafka.Message) error {
	update := new(core.StatusUpdate)
	if err := json.Unmarshal(msg.Value, update); err != nil {
		c.logger.Errorf("invalid status update payload on topic %s: %v", msg.Topic, err)
		return errs.ErrInvalidQueuePayload
	}
	return c.service.Deliver(ctx, update)
}

func (c *consumer) Close() error {
	return c.reader.Close()
}
