package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultPollTimeout bounds each blocking pop so shutdown is noticed promptly.
const DefaultPollTimeout = 5 * time.Second

// Sender delivers a registration email.
type Sender interface {
	SendRegistrationEmail(ctx context.Context, email, username string) error
}

// Worker drains the queue and hands each job to a Sender. Delivery is
// attempted once; failed jobs are parked on the dead-letter list.
type Worker struct {
	consumer    Consumer
	sender      Sender
	logger      *slog.Logger
	pollTimeout time.Duration
}

// NewWorker creates a Worker. A nil logger uses slog.Default().
func NewWorker(consumer Consumer, sender Sender, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		consumer:    consumer,
		sender:      sender,
		logger:      logger,
		pollTimeout: DefaultPollTimeout,
	}
}

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("email worker started")
	for {
		if ctx.Err() != nil {
			w.logger.Info("email worker stopped")
			return nil
		}

		if _, err := w.ProcessOne(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error("email worker poll failed", "error", err)
			// Back off briefly so a Redis outage does not spin.
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

// ProcessOne handles at most one job. It reports whether a job was taken.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	job, err := w.consumer.Next(ctx, w.pollTimeout)
	if errors.Is(err, ErrNoJob) {
		return false, nil
	}
	if errors.Is(err, ErrMalformedJob) {
		w.logger.Warn("parked undecodable job", "error", err)
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if job.Type != JobTypeRegistrationEmail {
		w.logger.Warn("dropping job of unknown type", "job_id", job.ID, "type", job.Type)
		return true, w.park(ctx, job)
	}

	if err := w.sender.SendRegistrationEmail(ctx, job.Email, job.Username); err != nil {
		w.logger.Error("failed to send registration email",
			"job_id", job.ID,
			"username", job.Username,
			"error", err,
		)
		return true, w.park(ctx, job)
	}

	w.logger.Info("registration email sent", "job_id", job.ID, "username", job.Username)
	return true, nil
}

func (w *Worker) park(ctx context.Context, job *Job) error {
	if err := w.consumer.Fail(ctx, job); err != nil {
		return fmt.Errorf("failed to park job: %w", err)
	}
	return nil
}
