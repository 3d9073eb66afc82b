// Package schema loads declarative fixture documents and builds them into a
// Catalog of generators.
//
// A document is YAML or JSON:
//
//	version: "1"
//	seed: 42
//	identity: uuid
//	entities:
//	  - name: Person
//	    fields:
//	      - {name: name, type: string, len: 5}
//	      - {name: age, type: integer, min: 0, max: 120}
//	  - name: Employee
//	    extends: Person
//	    fields:
//	      - {name: email, type: faker, faker: email}
//	generate:
//	  - {entity: Employee, count: 3}
//
// Loading expands ${VAR} and ${VAR:-default} references, then checks the
// document against an embedded JSON Schema. Validate performs the semantic
// checks (kinds, parents, cycles, references) and Build turns a valid
// document into a Catalog whose Run executes the generate plan.
package schema
