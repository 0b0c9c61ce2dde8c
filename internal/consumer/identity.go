package consumer

import (
	"fmt"

	"github.com/google/uuid"
)

// NameFunc produces a consumer identity. Identities only need to be
// collision-resistant within the group; tests inject a deterministic one.
type NameFunc func() string

// DefaultName mirrors the deployed naming scheme: consumer-<8 hex chars>.
func DefaultName() string {
	id := uuid.New()
	return fmt.Sprintf("consumer-%x", id[:4])
}
