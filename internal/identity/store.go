// internal/identity/store.go
package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DefaultKey is the storage key holding the synthesized user id.
const DefaultKey = "user_id"

// userIDPrefix matches the id format the assistant backend synthesizes when
// a request arrives without one.
const userIDPrefix = "user_"

// Store provides the durable per-user identifier. Implementations are
// injected into the session controller; idempotence within one storage scope
// is the only contract (the memory store is only stable per process).
type Store interface {
	GetOrCreate(ctx context.Context, key string) (string, error)
}

// NewUserID synthesizes a fresh identifier: fixed prefix plus a short random
// token.
func NewUserID() string {
	return fmt.Sprintf("%s%s", userIDPrefix, uuid.NewString()[:8])
}
