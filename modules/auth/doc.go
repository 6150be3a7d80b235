// Package auth exposes the session lifecycle subsystem over HTTP. It is a
// mountable module: construct a Service around a session.Manager and an
// authgate.Gate, then mount its Handle() router wherever the host
// application wants the session endpoints to live.
//
// # Endpoints
//
//	POST   /session         — upsert: called by the platform backend after a
//	                          successful sign-in; creates or refreshes the
//	                          user's single session record.
//	GET    /session/status  — validity probe by user_id or session_id;
//	                          returns timestamps only, never profile data.
//	DELETE /session         — sign out; requires a resolvable credential
//	                          (session cookie or bearer token). ?all=true
//	                          terminates every session for the principal.
//
// # Responses
//
// Every response is a JSON envelope with a machine-readable code. Errors
// map to statuses by kind: validation failures are 422 with per-field
// details, unresolvable sessions are 401, store outages are 503, and
// everything else is a 500 with no internal detail leaked.
//
// # Usage
//
//	svc := auth.NewService(manager, gate, auth.WithLogger(log))
//	r := chi.NewRouter()
//	r.Mount("/auth", svc.Handle())
package auth
