package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/flyosprey/Store-REST-API/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQueue = "emails"

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

type mockSender struct {
	sendFunc func(ctx context.Context, email, username string) error
	sent     []string
}

func (m *mockSender) SendRegistrationEmail(ctx context.Context, email, username string) error {
	m.sent = append(m.sent, email)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, email, username)
	}
	return nil
}

// =============================================================================
// Dispatcher Tests
// =============================================================================

func TestEnqueueRegistrationEmail(t *testing.T) {
	client, mr := setupTestRedis(t)
	d := NewRedisDispatcher(client, testQueue, metrics.New(prometheus.NewRegistry()))

	require.NoError(t, d.EnqueueRegistrationEmail(context.Background(), "alice@example.com", "alice"))

	values, err := mr.List(testQueue)
	require.NoError(t, err)
	require.Len(t, values, 1)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(values[0]), &job))
	assert.Equal(t, JobTypeRegistrationEmail, job.Type)
	assert.Equal(t, "alice@example.com", job.Email)
	assert.Equal(t, "alice", job.Username)
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.EnqueuedAt.IsZero())
}

func TestEnqueueRegistrationEmail_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	d := NewRedisDispatcher(client, testQueue, nil)
	mr.Close()

	err := d.EnqueueRegistrationEmail(context.Background(), "alice@example.com", "alice")
	assert.Error(t, err)
}

// =============================================================================
// Consumer Tests
// =============================================================================

func TestConsumer_NextPreservesOrder(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()
	d := NewRedisDispatcher(client, testQueue, nil)
	c := NewRedisConsumer(client, testQueue)

	require.NoError(t, d.EnqueueRegistrationEmail(ctx, "first@example.com", "first"))
	require.NoError(t, d.EnqueueRegistrationEmail(ctx, "second@example.com", "second"))

	job, err := c.Next(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", job.Username)

	job, err = c.Next(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "second", job.Username)
}

func TestConsumer_EmptyQueue(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisConsumer(client, testQueue)

	_, err := c.Next(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrNoJob)
}

func TestConsumer_BadPayload(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisConsumer(client, testQueue)
	_, err := mr.Push(testQueue, "not json")
	require.NoError(t, err)

	_, err = c.Next(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrMalformedJob)

	failed, err := mr.List(c.FailedQueue())
	require.NoError(t, err)
	assert.Equal(t, []string{"not json"}, failed)
	assert.False(t, mr.Exists(testQueue))
}

// =============================================================================
// Worker Tests
// =============================================================================

func TestWorker_ProcessOneSends(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, NewRedisDispatcher(client, testQueue, nil).EnqueueRegistrationEmail(ctx, "alice@example.com", "alice"))

	sender := &mockSender{}
	w := NewWorker(NewRedisConsumer(client, testQueue), sender, nil)

	took, err := w.ProcessOne(ctx)
	require.NoError(t, err)
	assert.True(t, took)
	assert.Equal(t, []string{"alice@example.com"}, sender.sent)
	assert.False(t, mr.Exists(testQueue+":failed"))
}

func TestWorker_ProcessOneParksFailures(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, NewRedisDispatcher(client, testQueue, nil).EnqueueRegistrationEmail(ctx, "alice@example.com", "alice"))

	sender := &mockSender{sendFunc: func(ctx context.Context, email, username string) error {
		return errors.New("provider rejected")
	}}
	consumer := NewRedisConsumer(client, testQueue)
	w := NewWorker(consumer, sender, nil)

	took, err := w.ProcessOne(ctx)
	require.NoError(t, err)
	assert.True(t, took)

	failed, err := mr.List(consumer.FailedQueue())
	require.NoError(t, err)
	assert.Len(t, failed, 1)
}

func TestWorker_ProcessOneParksUnknownType(t *testing.T) {
	client, mr := setupTestRedis(t)
	payload, _ := json.Marshal(Job{ID: "x", Type: "newsletter"})
	_, err := mr.Push(testQueue, string(payload))
	require.NoError(t, err)

	sender := &mockSender{}
	consumer := NewRedisConsumer(client, testQueue)
	w := NewWorker(consumer, sender, nil)

	took, err := w.ProcessOne(context.Background())
	require.NoError(t, err)
	assert.True(t, took)
	assert.Empty(t, sender.sent)
	assert.True(t, mr.Exists(consumer.FailedQueue()))
}

func TestWorker_ProcessOneParksUndecodable(t *testing.T) {
	client, mr := setupTestRedis(t)
	_, err := mr.Push(testQueue, "not json")
	require.NoError(t, err)

	sender := &mockSender{}
	consumer := NewRedisConsumer(client, testQueue)
	w := NewWorker(consumer, sender, nil)

	took, err := w.ProcessOne(context.Background())
	require.NoError(t, err)
	assert.True(t, took)
	assert.Empty(t, sender.sent)

	failed, err := mr.List(consumer.FailedQueue())
	require.NoError(t, err)
	assert.Equal(t, []string{"not json"}, failed)
}

func TestWorker_ParksJobWhenCancelledMidSend(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewRedisDispatcher(client, testQueue, nil).EnqueueRegistrationEmail(ctx, "alice@example.com", "alice"))

	sender := &mockSender{sendFunc: func(ctx context.Context, email, username string) error {
		cancel()
		return ctx.Err()
	}}
	consumer := NewRedisConsumer(client, testQueue)
	w := NewWorker(consumer, sender, nil)

	took, err := w.ProcessOne(ctx)
	require.NoError(t, err)
	assert.True(t, took)

	failed, err := mr.List(consumer.FailedQueue())
	require.NoError(t, err)
	require.Len(t, failed, 1)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(failed[0]), &job))
	assert.Equal(t, "alice", job.Username)
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, NewRedisDispatcher(client, testQueue, nil).EnqueueRegistrationEmail(ctx, "alice@example.com", "alice"))

	delivered := make(chan struct{}, 1)
	sender := &mockSender{sendFunc: func(ctx context.Context, email, username string) error {
		delivered <- struct{}{}
		return nil
	}}
	w := NewWorker(NewRedisConsumer(client, testQueue), sender, nil)
	w.pollTimeout = time.Second

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-delivered:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not deliver the queued job")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
