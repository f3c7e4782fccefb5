// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Settings

Flags take precedence, environment variables fill the gaps:

  - PORT (-p): server port (default 4520)
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - DATABASE_URL (-d): sqlite file path or postgres connection string;
    defaults to elections.db for sqlite, required for postgres
  - ADMIN_KEY_SALT (--admin-salt): secret for admin key HMAC, required

Secrets should come from the environment (or a .env file loaded by main);
the flags exist for development convenience.
*/
package cliparse
