package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs sort by creation time, which keeps
// message IDs ordered within a user document.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
