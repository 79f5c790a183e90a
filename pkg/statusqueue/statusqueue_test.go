package statusqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTopic is an in-memory topic satisfying both the writer and the reader.
type fakeTopic struct {
	mu        sync.Mutex
	messages  chan kafka.Message
	committed []int64
	closed    bool
}

func newFakeTopic() *fakeTopic {
	return &fakeTopic{messages: make(chan kafka.Message, 16)}
}

func (f *fakeTopic) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	for i := range msgs {
		f.mu.Lock()
		msgs[i].Offset = int64(len(f.messages) + len(f.committed))
		f.mu.Unlock()
		f.messages <- msgs[i]
	}
	return nil
}

func (f *fakeTopic) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-f.messages:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (f *fakeTopic) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeTopic) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTopic) commits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.committed)
}

type fakeService struct {
	mu      sync.Mutex
	updates []*core.StatusUpdate
	err     error
}

func (s *fakeService) Deliver(ctx context.Context, update *core.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, update)
	return s.err
}

func (s *fakeService) delivered() []*core.StatusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*core.StatusUpdate(nil), s.updates...)
}

func newLogger(t *testing.T) lumber.Logger {
	logger, err := lumber.NewLogger(&lumber.LoggingConfig{EnableConsole: true}, false, lumber.InstanceZapLogger)
	require.NoError(t, err)
	return logger
}

func testUpdate(state core.StatusState) *core.StatusUpdate {
	return &core.StatusUpdate{
		ID:        "u-" + string(state),
		FeatureID: "feature-1",
		BuildID:   "B1",
		Driver:    core.DriverGithub,
		RepoSlug:  "LambdaTest/herald",
		CommitID:  "6dcb09b",
		State:     state,
		Label:     "Deploy (Infra)",
		Created:   time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestProducerConsumer(t *testing.T) {
	topic := newFakeTopic()
	logger := newLogger(t)
	producer := &Producer{topicName: "statuses", kafkaWriter: topic, logger: logger}
	service := &fakeService{}
	c := &consumer{topicName: "statuses", reader: topic, service: service, logger: logger}

	require.NoError(t, producer.Schedule(context.Background(), testUpdate(core.StatusPending)))
	require.NoError(t, producer.Schedule(context.Background(), testUpdate(core.StatusSuccess)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	assert.Eventually(t, func() bool { return topic.commits() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	updates := service.delivered()
	require.Len(t, updates, 2)
	assert.Equal(t, testUpdate(core.StatusPending), updates[0])
	assert.Equal(t, testUpdate(core.StatusSuccess), updates[1])
	assert.True(t, topic.closed)
}

func TestProducerMessage(t *testing.T) {
	topic := newFakeTopic()
	producer := &Producer{topicName: "statuses", kafkaWriter: topic, logger: newLogger(t)}

	require.NoError(t, producer.Schedule(context.Background(), testUpdate(core.StatusPending)))
	msg := <-topic.messages
	assert.Equal(t, "LambdaTest/herald@6dcb09b", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, FeatureHeader, msg.Headers[0].Key)
	assert.Equal(t, "feature-1", string(msg.Headers[0].Value))
}

func TestConsumerHandle(t *testing.T) {
	logger := newLogger(t)
	cause := errors.New("github: 502")
	service := &fakeService{err: cause}
	c := &consumer{topicName: "statuses", reader: newFakeTopic(), service: service, logger: logger}

	err := c.handle(context.Background(), kafka.Message{Value: []byte("{not json")})
	assert.ErrorIs(t, err, errs.ErrInvalidQueuePayload)
	assert.Empty(t, service.delivered())

	raw, err := json.Marshal(testUpdate(core.StatusFailure))
	require.NoError(t, err)
	assert.ErrorIs(t, c.handle(context.Background(), kafka.Message{Value: raw}), cause)
	assert.Len(t, service.delivered(), 1)
}
