// Package authgate answers "is this credential currently valid, and for
// whom" at the request boundary. It consumes the session lifecycle manager
// and the bearer token service; it is not itself part of the lifecycle core.
//
// A client presents either an opaque session identifier in a cookie or a
// signed bearer token in the Authorization header. Either may legitimately
// be absent depending on client type, so resolution tries the cookie first
// and falls back to the bearer token. A bearer token's claims embed the
// principal and the session token; the resolved record must belong to that
// principal.
//
// Role checks live here too: the lifecycle manager knows nothing about
// authorization, so RequireRole and the RequireRoles middleware keep that
// concern at the boundary.
//
//	gate := authgate.New(sessionMgr, bearerSvc)
//	r.Use(gate.Middleware)
//	r.With(gate.RequireRoles(session.RoleAdmin)).Get("/admin", handler)
package authgate
