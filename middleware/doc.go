// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers: request logging,
JSON encoding/decoding, CORS, and client IP extraction.

WithLogging wraps individual handlers; CORS wraps the whole mux in main.
JSONResponse and ErrorResponse are the only ways handlers write bodies, so
every response is JSON with a consistent error shape.
*/
package middleware
