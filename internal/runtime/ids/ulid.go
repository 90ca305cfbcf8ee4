// Package ids generates the identifiers slapulse stamps on messages. ULIDs
// are used for both message ids and generated correlation ids because they
// sort by creation time, which keeps log output and traces readable.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// CreateULID returns a time-sortable ULID encoded as a 26-character string.
func CreateULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}

// NewMessageID returns a fresh identifier for an outgoing message.
func NewMessageID() string {
	return CreateULID()
}
