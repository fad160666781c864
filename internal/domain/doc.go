// Package domain contains the entities and failure taxonomy of the Vendus
// backend-for-frontend. Nothing here is persisted: every entity is sourced
// from the upstream API for the duration of one request.
//
// Upstream bodies are decoded into generic JSON values, so the package also
// provides the projection helpers (Field, Truthy, CoerceNumber) that read
// them with the loose typing the upstream relies on, and the reference
// normalization used to derive product references.
//
// All workflow failures are *Error values carrying a Kind, a wire code and
// an HTTP status; see errors.go.
package domain
