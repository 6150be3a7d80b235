// Package session implements the session record lifecycle for the platform:
// how an authenticated identity is represented, persisted, refreshed,
// deduplicated, and expired across stateless request handlers that share no
// process memory.
//
// # Architecture
//
// A Manager orchestrates the lifecycle. It relies on a Store for persistence
// (a concurrent in-memory implementation ships out of the box; MongoStore is
// the production implementation over one MongoDB collection) and on a Cipher
// to protect sensitive profile fields — ciphertext plus a deterministic
// search hash are stored, never plaintext.
//
// For a given user a record moves through NoSession → Fresh → Stale →
// terminal. A record is valid while it is active, signed in, and unexpired;
// it is fresh while additionally its last activity is within the freshness
// window. A fresh record is silently extended by Upsert; a stale one is
// replaced. Expiry, sign-out, or the global sweep end the lifecycle.
//
// # Concurrency
//
// At most one fresh record should exist per user at any externally
// observable instant. Handlers race against the same store with no
// cross-request lock available, so the invariant is restored rather than
// prevented: every Upsert ends with a convergence pass that keeps the record
// with the newest CreatedAt (session identifier breaks exact ties) and
// deletes the rest. Two racing upserts never both win and never leave zero
// records.
//
// # Usage
//
//	c, _ := cipher.New(key)
//	mgr := session.New(
//	    session.WithCipher(c),
//	    session.WithStore(store),
//	)
//
//	res, err := mgr.Upsert(ctx, session.UpsertInput{
//	    UserID:       userID,
//	    Profile:      profile,
//	    SessionToken: token,
//	})
//
// # Error Handling
//
// Failures carry a distinguishable kind and are never swallowed into a
// degraded "guest" state:
//
//   - validator.ValidationErrors – missing/malformed profile fields
//   - ErrCipherFailed            – encryption failure, nothing written
//   - ErrStoreUnavailable        – store unreachable or timed out, retryable
//   - ErrNotFound                – no valid record for the credential
//
// Convergence cleanup failures are the one exception: the record just
// written is already valid, so they are logged and left for the next upsert.
package session
