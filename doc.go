// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotcore API server.

Ballotcore is an election-management and voting record-keeping service:
elections with a fixed voting window and candidate roster, exactly-once
voting keyed by derived voter credentials, and deterministic tallies
computed from an append-only vote ledger.

# Starting the Server

The server reads environment variables (optionally from a .env file) or CLI
flags:

	ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 4520 -t sqlite -d elections.db --admin-salt ...

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 4520)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): SQLite file path (default: elections.db) or
    PostgreSQL connection string

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: election registry, voting engine, tally engine (the core rules)
  - handlers: HTTP request handlers (elections, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Admin key and voter-credential key derivation
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
