package refcode

import (
	"fmt"
	"io"
)

const (
	prefix      = "REF"
	ownerPrefix = 4
	suffixLen   = 6

	charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// New builds a candidate referral code of the form
// REF-<first 4 chars of ownerID>-<6 random uppercase alphanumerics>.
// The random source is explicit so callers can make the output deterministic.
// Codes only need to be collision-resistant enough that allocation retries
// are rare; global uniqueness is the store's job.
func New(ownerID string, random io.Reader) (string, error) {
	suffix := make([]byte, suffixLen)
	if _, err := io.ReadFull(random, suffix); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	for i, b := range suffix {
		suffix[i] = charset[int(b)%len(charset)]
	}

	owner := ownerID
	if len(owner) > ownerPrefix {
		owner = owner[:ownerPrefix]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, owner, suffix), nil
}
