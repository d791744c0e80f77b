package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// QueueEmails is the Redis list key for outbound email jobs.
	QueueEmails = "worker:emails"
	// QueueDLQ is the dead-letter queue for jobs that exhausted retries.
	QueueDLQ = "worker:dlq"
	// MaxRetries is the number of attempts before a job is dead-lettered.
	MaxRetries = 3
	// RetryBackoff is the delay between retries.
	RetryBackoff = 10 * time.Second
)

// JobType identifies the job kind.
type JobType string

const (
	JobTypeInviteEmail    JobType = "invite_email"
	JobTypeMagicLinkEmail JobType = "magic_link_email"
)

// InviteEmailPayload notifies an email address that it was granted access to
// a wedding, carrying the invite code the join link is built from.
type InviteEmailPayload struct {
	RecipientEmail string `json:"recipient_email"`
	InviteCode     string `json:"invite_code"`
	BrideName      string `json:"bride_name"`
	GroomName      string `json:"groom_name"`
}

// MagicLinkEmailPayload carries a single-use passwordless sign-in token.
// The token is raw here; only its hash is persisted.
type MagicLinkEmailPayload struct {
	RecipientEmail string `json:"recipient_email"`
	InviteCode     string `json:"invite_code"`
	Token          string `json:"token"`
}

// Job is a generic job envelope.
type Job struct {
	ID        string          `json:"id"`
	Type      JobType         `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempt   int             `json:"attempt"`
	CreatedAt time.Time       `json:"created_at"`
}

// Enqueuer is the producer side of the mail queue.
type Enqueuer interface {
	EnqueueInviteEmail(ctx context.Context, payload InviteEmailPayload) error
	EnqueueMagicLinkEmail(ctx context.Context, payload MagicLinkEmailPayload) error
}

// Queue enqueues and dequeues email jobs via a Redis list.
type Queue struct {
	client *redis.Client
}

func New(client *redis.Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) EnqueueInviteEmail(ctx context.Context, payload InviteEmailPayload) error {
	return q.push(ctx, JobTypeInviteEmail, payload)
}

func (q *Queue) EnqueueMagicLinkEmail(ctx context.Context, payload MagicLinkEmailPayload) error {
	return q.push(ctx, JobTypeMagicLinkEmail, payload)
}

func (q *Queue) push(ctx context.Context, jobType JobType, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	job := Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Payload:   body,
		Attempt:   0,
		CreatedAt: time.Now(),
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, QueueEmails, raw).Err(); err != nil {
		return fmt.Errorf("rpush: %w", err)
	}
	slog.Debug("enqueued email job", "job_id", job.ID, "type", string(jobType))
	return nil
}

// Dequeue blocks until a job is available or ctx is done.
func (q *Queue) Dequeue(ctx context.Context) (*Job, error) {
	result, err := q.client.BLPop(ctx, 0, QueueEmails).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		slog.Warn("invalid job payload", "raw", result[1], "error", err)
		return nil, nil
	}
	return &job, nil
}

// Retry re-enqueues a job with incremented attempt, dead-lettering it once
// MaxRetries is reached.
func (q *Queue) Retry(ctx context.Context, job *Job) error {
	job.Attempt++
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if job.Attempt >= MaxRetries {
		if err := q.client.RPush(ctx, QueueDLQ, raw).Err(); err != nil {
			slog.Error("dlq push failed", "error", err, "job_id", job.ID)
			return err
		}
		slog.Warn("job moved to DLQ", "job_id", job.ID, "attempt", job.Attempt)
		return nil
	}
	if err := q.client.RPush(ctx, QueueEmails, raw).Err(); err != nil {
		return err
	}
	slog.Info("job retried", "job_id", job.ID, "attempt", job.Attempt)
	return nil
}
