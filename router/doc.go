// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method-and-path
patterns on the standard ServeMux.

# Routes

	POST /elections                  create election (returns admin key)
	GET  /elections                  list election summaries
	GET  /elections/{id}             full election detail
	POST /elections/{id}/candidates  add candidate (X-Admin-Key)
	POST /elections/{id}/close       close election (X-Admin-Key)
	POST /elections/{id}/votes       cast a vote
	GET  /elections/{id}/results     per-candidate tally
	GET  /health                     liveness probe

Every route is wrapped with request logging; CORS wraps the whole mux in
main.
*/
package router
