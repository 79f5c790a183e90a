package buildevents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type consumer struct {
	topicName  string
	reader     messageReader
	dispatcher core.EventDispatcher
	validate   *validator.Validate
	logger     lumber.Logger
}

// NewConsumer returns the consumer dispatching the lifecycle events of the build events topic.
// The CI engine keys events by build, so the events of a build are dispatched in order.
func NewConsumer(cfg *config.Config, dispatcher core.EventDispatcher, logger lumber.Logger) core.QueueConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:               strings.Split(cfg.Kafka.Brokers, ","),
		Topic:                 cfg.Kafka.BuildEventsConfig.Topic,
		ErrorLogger:           kafka.LoggerFunc(logger.Errorf),
		GroupID:               cfg.Kafka.BuildEventsConfig.ConsumerGroup,
		MaxBytes:              25e6, // 25MB
		WatchPartitionChanges: true,
		GroupBalancers:        []kafka.GroupBalancer{kafka.RoundRobinGroupBalancer{}}})
	// offset retention time is 24h
	logger.Infof("Kafka Consumer Group %s created successfully", cfg.Kafka.BuildEventsConfig.ConsumerGroup)
	return &consumer{
		topicName:  cfg.Kafka.BuildEventsConfig.Topic,
		reader:     reader,
		dispatcher: dispatcher,
		validate:   newValidator(),
		logger:     logger,
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
			c.logger.Errorf("failed to dispatch build event of partition %d, offset %d, error: %v", msg.Partition, msg.Offset, err)
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Errorf("failed to commit offset %d of partition %d, error: %v", msg.Offset, msg.Partition, err)
		}
	}

	if err := c.Close(); err != nil {
		c.logger.Errorf("failed to close Kafka reader, error: %v", err)
	}
	c.logger.Debugf("kafka consumer closed for build events topic")
}

func (c *consumer) handle(ctx context.Context, msg kafka.Message) error {
	event := new(core.LifecycleEvent)
	if err := json.Unmarshal(msg.Value, event); err != nil {
		c.logger.Errorf("invalid build event payload on topic %s: %v", msg.Topic, err)
		return errs.ErrInvalidQueuePayload
	}
	if err := c.validate.Struct(event); err != nil {
		c.logger.Errorf("invalid build event %s on topic %s: %v", event.ID, msg.Topic, err)
		return errs.ErrInvalidQueuePayload
	}
	if event.ID == "" {
		// redeliveries of the message must share the event identity
		event.ID = fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
	}
	return c.dispatcher.Dispatch(ctx, event)
}

func (c *consumer) Close() error {
	return c.reader.Close()
}

// newValidator checks events against the same binding tags as the HTTP API.
func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}
