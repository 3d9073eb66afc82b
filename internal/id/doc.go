// Package id provides the identity providers that mint the $id value of every
// generated record.
//
// A Provider is an explicit instance owned by a generation session rather than
// package-level state:
//
//   - UUIDProvider: random UUID v4 strings (github.com/google/uuid)
//   - ULIDProvider: 26-character, time-sortable, monotonic within one provider
//   - ShortProvider: 16-character hex IDs where brevity matters
//   - SeededProvider: UUID v4 strings drawn from a seeded stream, so two runs
//     with the same seed mint the same identifiers
//
// All providers are safe for concurrent use.
package id
