// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Connect opens a database by type:

	conn, err := db.Connect("sqlite", "elections.db")
	conn, err := db.Connect("postgres", "postgres://...")

SQLite uses the CGo-free modernc.org/sqlite driver with WAL journaling and a
single pooled connection; PostgreSQL uses lib/pq. Both drivers accept the $1
placeholder syntax used throughout the codebase.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: election metadata, voting window, lifecycle status
  - candidate: candidate roster per election, with running vote counters
  - vote: the append-only vote ledger, one row per (election, voter key)

# Relationships

	election 1──* candidate
	election 1──* vote
	candidate 1──* vote

All foreign keys use ON DELETE CASCADE.

# Integrity

The durable constraints carry the voting invariants:

  - vote PRIMARY KEY (election_id, voter_key): at most one vote per voter
    per election, even under concurrent inserts
  - candidate UNIQUE (election_id, name): name uniqueness within an election
  - election CHECK (status IN ('open','closed')) and CHECK (budget >= 0)
*/
package db
