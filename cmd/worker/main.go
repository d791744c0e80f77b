package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weddlist/backend/internal/cache"
	"github.com/weddlist/backend/internal/config"
	"github.com/weddlist/backend/internal/logging"
	"github.com/weddlist/backend/internal/mailer"
	"github.com/weddlist/backend/internal/queue"
)

// The worker drains the Redis email queue and delivers over SMTP. Failed
// jobs are retried with backoff and dead-lettered after MaxRetries.
func main() {
	logging.Setup()

	cfg := config.Load()
	if cfg.RedisAddr == "" {
		slog.Error("REDIS_ADDR environment variable is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	q := queue.New(redisCache.Client())
	m := mailer.New(cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker started", "queue", queue.QueueEmails)
	for {
		job, err := q.Dequeue(ctx)
		if ctx.Err() != nil {
			break
		}
		if err != nil {
			slog.Error("dequeue failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := process(job, m); err != nil {
			slog.Error("job failed", "job_id", job.ID, "type", string(job.Type), "attempt", job.Attempt, "error", err)
			time.Sleep(queue.RetryBackoff)
			if err := q.Retry(ctx, job); err != nil && ctx.Err() == nil {
				slog.Error("retry failed", "job_id", job.ID, "error", err)
			}
			continue
		}
		slog.Info("job done", "job_id", job.ID, "type", string(job.Type))
	}

	slog.Info("worker stopped")
}

func process(job *queue.Job, m *mailer.Mailer) error {
	switch job.Type {
	case queue.JobTypeInviteEmail:
		var p queue.InviteEmailPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return err
		}
		return m.SendInvite(p.RecipientEmail, p.InviteCode, p.BrideName, p.GroomName)
	case queue.JobTypeMagicLinkEmail:
		var p queue.MagicLinkEmailPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return err
		}
		return m.SendMagicLink(p.RecipientEmail, p.InviteCode, p.Token)
	default:
		slog.Warn("unknown job type dropped", "job_id", job.ID, "type", string(job.Type))
		return nil
	}
}
