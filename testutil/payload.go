package testutil

import (
	"math/rand" //nolint:gosec // test data does not need crypto randomness
)

// GenerateRandomPayload returns n pseudo-random bytes from a fixed seed, so
// failures reproduce.
func GenerateRandomPayload(n int) []byte {
	r := rand.New(rand.NewSource(42)) //nolint:gosec
	payload := make([]byte, n)
	_, _ = r.Read(payload)
	return payload
}
