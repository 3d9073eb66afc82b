// Package cli provides the command-line interface for fixturegen.
//
// Commands:
//   - generate: Produce records from fixture documents
//   - validate: Check documents and report every problem with its path
//   - entities: List the entities of a document and their fields
//   - kinds: List the field kinds and faker names
//   - import: Derive a document from OpenAPI, GraphQL or protobuf schemas
//   - init: Scaffold a starter document, interactively when no name is given
//   - version: Show fixturegen version
//
// Documents are passed with -f, which may be repeated and accepts ** globs;
// they are merged in order.
//
// Usage:
//
//	fixturegen generate -f fixtures.yaml
//	fixturegen generate -f 'fixtures/**/*.yaml' --entity Person --count 10 --format ndjson
//	fixturegen generate -f fixtures.yaml --seed 42 --select '$..email'
//	fixturegen validate -f fixtures.yaml
//	fixturegen entities -f fixtures.yaml --json
//	fixturegen import openapi petstore.yaml -o fixtures.yaml
//	fixturegen import proto api/shop.proto -I third_party
//	fixturegen init --name Customer --field name:string --field email:faker
package cli
