// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the election core: the registry that creates and
manages elections, the voting engine that records votes, and the tally
engine that aggregates results.

# Components

	reg := engine.NewRegistry(db)   // create/add candidate/close/list/get
	voting := engine.NewVoting(db)  // cast votes
	tally := engine.NewTally(db)    // aggregate results

All three share one injected database handle; none keeps election state in
memory across calls. The database is the single source of truth.

# Invariants

  - An election's candidate roster is frozen once the voting window opens.
  - end_time > start_time, enforced at creation.
  - The voting window [start, end] is inclusive on both boundaries.
  - At most one vote per (election, voter-credential key). The check and the
    insert are one transaction backed by the vote table's primary key, so
    concurrent duplicates resolve to exactly one winner and one
    ErrAlreadyVoted.
  - The ledger insert and the candidate counter increment commit together or
    not at all; a vote is never recorded-but-uncounted.
  - Closing an election is only valid after end_time, and closing twice is an
    error, preserving a single close event for auditing.

# Errors

Every validation failure is a package-level sentinel error (ErrAlreadyVoted,
ErrVotingWindowClosed, ...). Persistence faults are wrapped into
ErrStorageUnavailable and never masquerade as business-rule failures.

# Concurrency

Elections are independent: votes for different elections only contend inside
the database. Per-election serialization of the duplicate check relies on
the store's transactional insert, not on Go-side locks.
*/
package engine
