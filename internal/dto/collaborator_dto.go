package dto

import "github.com/google/uuid"

type ShareRequest struct {
	Email string `json:"email"`
}

// ShareResponse reports the two share steps separately: the membership
// insert and the best-effort notification. A collaborator can end up with
// access without having been notified, and the caller needs to know which.
type ShareResponse struct {
	CollaboratorAdded  bool   `json:"collaborator_added"`
	NotificationQueued bool   `json:"notification_queued"`
	Message            string `json:"message,omitempty"`
}

type CollaboratorResponse struct {
	Email string `json:"email"`
}

// InviteInfoResponse is the public invite landing payload.
type InviteInfoResponse struct {
	BrideName string `json:"bride_name"`
	GroomName string `json:"groom_name"`
}

// AcceptInviteResponse routes the accepting identity onward: "set-password"
// when the account has no password credential yet, "dashboard" otherwise.
type AcceptInviteResponse struct {
	WeddingID uuid.UUID `json:"wedding_id"`
	Next      string    `json:"next"`
}

type RequestLinkRequest struct {
	Email string `json:"email"`
}
