// Package cli provides the interactive CareerKey command-line portal.
//
// It wires configuration, the local store, the API client with its
// transparent token refresh, and an interactive REPL whose commands are
// gated by the signed-in user's roles. Typical flow: restore a persisted
// session, then execute user commands until exit.
//
// Key features:
//   - Login / Logout with role-based landing areas
//   - Student signup and HEC-only university onboarding
//   - Degree verification by typed ID, image QR code or capture session
//   - Student dashboard, documents listing and attestation requests
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, requireRoles, and runREPL for details.
package cli
