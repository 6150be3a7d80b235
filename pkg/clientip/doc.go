// Package clientip extracts the client's IP address from HTTP requests,
// honoring the usual reverse-proxy headers before falling back to the
// transport address. Session records store the result as diagnostic
// metadata only.
package clientip
