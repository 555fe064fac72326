// Package cli provides knotctl, the interactive KnotHost account client.
//
// It wires configuration and the HTTP API client into a small REPL:
//   - signup, login, logout
//   - me (who am I, using the session token from login or KNOTHOST_TOKEN)
//   - forgot, reset, check (email existence)
//   - contact (submit a contact request)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
