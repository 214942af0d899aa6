package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.trai.ch/zerr"
)

// PassIDPrefix prefixes every synchronization pass identifier.
const PassIDPrefix = "pass-"

// NewPassID returns a lexically sortable identifier for a synchronization pass.
// Format: pass-{ulid_lowercase}.
func NewPassID(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", zerr.Wrap(err, "failed to generate pass id")
	}
	return PassIDPrefix + strings.ToLower(id.String()), nil
}
