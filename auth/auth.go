// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrInvalidCredential = errors.New("national id and secret code are required")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates an HMAC-based admin key for an election
// This is deterministic and verifiable
func GenerateAdminKey(electionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(electionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the election
func ValidateAdminKey(electionID, adminKey, salt string) error {
	expected := GenerateAdminKey(electionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// DeriveVoterKey derives the voter-credential key from a national id and
// secret code. The key is a one-way SHA-256 digest: the same credentials
// always produce the same key, and the raw identity cannot be recovered
// from it. The first input is length-prefixed so ("ab","c") and ("a","bc")
// never collide.
func DeriveVoterKey(nationalID, secretCode string) (string, error) {
	if nationalID == "" || secretCode == "" {
		return "", ErrInvalidCredential
	}

	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(nationalID)))

	h := sha256.New()
	h.Write(prefix[:])
	h.Write([]byte(nationalID))
	h.Write([]byte(secretCode))
	return hex.EncodeToString(h.Sum(nil)), nil
}
