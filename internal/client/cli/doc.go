// Package cli provides the interactive QR Studio command-line client.
//
// It wires configuration, the session store, API services, and an
// interactive REPL. Typical flow: restore the stored session, show the
// matching command set, and execute user commands against the backend.
//
// Key features:
//   - Login / AdminLogin / Logout with a persisted bearer token
//   - Generate QR codes from text, images, and documents
//   - Scan QR code images
//   - History with delete, clear, and save-to-file
//   - Usage stats with last-activity
//   - Admin user management (admin tokens only)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
