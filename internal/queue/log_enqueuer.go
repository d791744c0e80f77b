package queue

import (
	"context"
	"log/slog"
)

// LogEnqueuer stands in for the Redis queue when no Redis address is
// configured: jobs are logged instead of delivered. Local development only.
type LogEnqueuer struct{}

func (LogEnqueuer) EnqueueInviteEmail(_ context.Context, payload InviteEmailPayload) error {
	slog.Info("invite email (not sent, no queue configured)",
		"recipient", payload.RecipientEmail, "invite_code", payload.InviteCode)
	return nil
}

func (LogEnqueuer) EnqueueMagicLinkEmail(_ context.Context, payload MagicLinkEmailPayload) error {
	slog.Info("magic link email (not sent, no queue configured)",
		"recipient", payload.RecipientEmail, "invite_code", payload.InviteCode)
	return nil
}
