package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// DefaultTTL is the validity window of a freshly issued code.
const DefaultTTL = time.Hour

const (
	codeMin   = 100000
	codeRange = 900000 // codes span 100000..999999
)

// Generate returns a uniformly random 6-digit code and its expiry (now + ttl).
func Generate(now time.Time, ttl time.Duration) (code string, expiry time.Time, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), now.Add(ttl), nil
}
