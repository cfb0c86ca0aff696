package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret derives a one-way salted bcrypt digest of the given secret
// (account password or PIN). A cost of zero selects bcrypt.DefaultCost.
//
// bcrypt embeds the salt in the digest, so no separate salt storage is
// needed and two hashes of the same secret differ.
func HashSecret(secret string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing secret: %w", err)
	}

	return string(digest), nil
}

// CompareSecret reports whether the submitted secret matches the stored
// bcrypt digest. An empty digest never matches.
func CompareSecret(digest, secret string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
