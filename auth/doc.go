// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides id generation, admin key validation, and
voter-credential key derivation.

# Admin Keys

Admin keys are HMAC-SHA256 over the election id, keyed by a server-side
salt. They are deterministic, so the server never stores them:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, providedKey, salt)

Validation uses a constant-time comparison.

# Voter-Credential Keys

DeriveVoterKey turns a (national id, secret code) pair into a fixed-length
opaque key:

	key, err := auth.DeriveVoterKey(nin, code)

The derivation is a pure one-way digest. Only the key is ever stored in the
vote ledger; the raw identity never touches the database. Empty inputs fail
with ErrInvalidCredential.

# IDs

GenerateID returns crypto/rand hex ids and is used for candidate ids.
*/
package auth
