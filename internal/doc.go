// Package internal holds the CMS server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, error envelope, and routing
// - domain/content: the collection CRUD engine and document store
// - storage: object-store adapters (Google Drive, in-memory)
// - auth, config, metrics: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
