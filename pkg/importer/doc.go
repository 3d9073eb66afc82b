// Package importer derives fixture documents from existing schema languages:
// OpenAPI 3 component schemas, GraphQL SDL and Protocol Buffers.
//
// Every importer maps object types to entities and scalar types to field
// kinds. Nested objects become entity fields, lists repeat between one and
// three times unless the source says otherwise, and a reference that would
// nest an entity inside itself is replaced by a uuid standing in for the
// referenced record's id. Entities are ordered so that each follows the
// entities it depends on.
package importer
