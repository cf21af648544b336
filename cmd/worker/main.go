// Package main runs the registration email worker.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/flyosprey/Store-REST-API/internal/config"
	"github.com/flyosprey/Store-REST-API/internal/logging"
	"github.com/flyosprey/Store-REST-API/internal/mailer"
	"github.com/flyosprey/Store-REST-API/internal/notification"
	"github.com/flyosprey/Store-REST-API/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("email worker stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWorker()
	if err != nil {
		return err
	}

	logger := logging.Setup("stores-email-worker", cfg.LogFormat, cfg.LogLevel, nil)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	consumer := notification.NewRedisConsumer(redisClient, cfg.EmailQueue)
	sender := mailer.NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailSender, cfg.EmailSenderName)

	logger.Info("consuming queue", "queue", cfg.EmailQueue, "failed_queue", consumer.FailedQueue())
	return notification.NewWorker(consumer, sender, logger).Run(ctx)
}
