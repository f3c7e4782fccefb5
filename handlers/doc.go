// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the election API.

# Handler Organization

  - ElectionHandler: election lifecycle (create, list, get, add candidate,
    close); mutations require the X-Admin-Key header
  - VotingHandler: vote casting
  - ResultsHandler: tally retrieval

Handlers parse and validate the transport shape, then delegate every
business rule to the engine package. engineError translates engine
sentinels to status codes: not-found 404, validation 400, business
conflicts (already voted, window closed, roster frozen, ...) 409, storage
faults 500 with the cause logged but not leaked.

# Admin Guard

Election creation returns a derived admin key. Candidate addition and
closing validate it against the same salt; there is no admin key storage.
*/
package handlers
