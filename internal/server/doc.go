// Package server implements the guestbook HTTP surface.
//
// Owns:
//   - HTTP routing, handlers, and request/response contracts
//   - CORS, request ids, access logging, panic recovery, metrics
//   - Static front-end assets (embedded, or a directory on disk)
//
// Does not own:
//   - Input normalization and validation (guestbook.Service)
//   - Storage internals (store.Store implementations)
//
// Invariants:
//   - JSON responses go through writeJSON
//   - Validation failures map to 400, every other service error to 500
//   - Every response carries X-Request-Id
package server
