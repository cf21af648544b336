// Package notification enqueues and consumes registration email jobs on a
// Redis list.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flyosprey/Store-REST-API/internal/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobTypeRegistrationEmail identifies welcome email jobs.
const JobTypeRegistrationEmail = "user_registration_email"

// ErrNoJob is returned by Next when the poll timeout elapses with an empty queue.
var ErrNoJob = errors.New("no job available")

// ErrMalformedJob is returned by Next when a popped payload cannot be decoded.
// The raw payload has been moved to the dead-letter list.
var ErrMalformedJob = errors.New("malformed job")

// parkTimeout bounds dead-letter writes, which outlive worker cancellation.
const parkTimeout = 3 * time.Second

// Job is the queued payload.
type Job struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Dispatcher hands registration emails to the out-of-process worker.
type Dispatcher interface {
	EnqueueRegistrationEmail(ctx context.Context, email, username string) error
}

// Consumer pops jobs off the queue.
type Consumer interface {
	Next(ctx context.Context, timeout time.Duration) (*Job, error)
	Fail(ctx context.Context, job *Job) error
}

type redisDispatcher struct {
	client  *redis.Client
	queue   string
	metrics *metrics.Metrics
}

// NewRedisDispatcher creates a Dispatcher that RPUSHes JSON jobs onto queue.
func NewRedisDispatcher(client *redis.Client, queue string, m *metrics.Metrics) Dispatcher {
	return &redisDispatcher{client: client, queue: queue, metrics: m}
}

func (d *redisDispatcher) EnqueueRegistrationEmail(ctx context.Context, email, username string) error {
	payload, err := json.Marshal(Job{
		ID:         uuid.NewString(),
		Type:       JobTypeRegistrationEmail,
		Email:      email,
		Username:   username,
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	err = d.client.RPush(ctx, d.queue, payload).Err()
	d.metrics.NotificationEnqueued(err)
	if err != nil {
		return fmt.Errorf("failed to enqueue registration email for %s: %w", username, err)
	}
	return nil
}

// RedisConsumer reads jobs written by the Redis dispatcher.
type RedisConsumer struct {
	client *redis.Client
	queue  string
}

// NewRedisConsumer creates a consumer for queue.
func NewRedisConsumer(client *redis.Client, queue string) *RedisConsumer {
	return &RedisConsumer{client: client, queue: queue}
}

// Next blocks up to timeout for the next job.
func (c *RedisConsumer) Next(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := c.client.BLPop(ctx, timeout, c.queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoJob
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop job from %s: %w", c.queue, err)
	}

	// BLPOP replies with [key, value].
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BLPOP reply of length %d", len(result))
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		if perr := c.park(ctx, result[1]); perr != nil {
			return nil, fmt.Errorf("failed to park undecodable job: %w", perr)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	return &job, nil
}

// Fail parks a job on the dead-letter list "<queue>:failed". The write is not
// cut short by cancellation of ctx.
func (c *RedisConsumer) Fail(ctx context.Context, job *Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := c.park(ctx, string(payload)); err != nil {
		return fmt.Errorf("failed to park job %s: %w", job.ID, err)
	}
	return nil
}

// park writes payload to the dead-letter list even when ctx is already
// cancelled, since the job has left the main queue.
func (c *RedisConsumer) park(ctx context.Context, payload string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), parkTimeout)
	defer cancel()
	return c.client.RPush(ctx, c.FailedQueue(), payload).Err()
}

// FailedQueue returns the dead-letter list key.
func (c *RedisConsumer) FailedQueue() string {
	return c.queue + ":failed"
}
