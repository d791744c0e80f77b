package cache

import (
	"context"

	"github.com/google/uuid"
)

// Metadata is a key-value store scoped to an identity. Its one current use is
// the denormalized wedding pointer: a cached link from a user to the wedding
// they collaborate on, set at invite acceptance. The relational
// rows stay the source of truth; the resolver treats this as a cache that may
// be stale or missing.
type Metadata interface {
	WeddingID(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	SetWeddingID(ctx context.Context, userID, weddingID uuid.UUID) error
	ClearWeddingID(ctx context.Context, userID uuid.UUID) error
}
