// Package bearer issues and verifies the signed bearer tokens clients carry
// in the Authorization header. A token's claims embed the principal and the
// opaque session token that keys the session store, so the auth gate can
// fall back from cookie lookup to bearer lookup with one verification step.
//
// Tokens are HMAC-SHA256 signed via github.com/golang-jwt/jwt/v5 with strict
// validation: the algorithm is pinned, the issuer is checked, and an
// expiration claim is required. The package is deliberately thin — token
// signing policy is opaque to the session lifecycle core.
package bearer
