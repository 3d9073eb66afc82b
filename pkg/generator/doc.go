// Package generator assembles synthetic records from declarative schemas.
//
// A Generator is a named, insertion-ordered set of Fields. Each Field wraps a
// Producer, the per-kind strategy that yields one value, and optionally a
// CountRange that turns the field into an ordered sequence of values.
//
//	people := generator.New("Person")
//	people.MustWithField("name", generator.KindString, generator.Options{Len: 5})
//	people.MustWithField("age", generator.KindInteger, generator.Options{Min: 0, Max: 120})
//
//	out, _ := people.Generate(3) // []Record with $id, name, age
//
// # Inheritance
//
// Extend builds a child schema from a parent. The child records its own type,
// species and base in the $type, $species and $extends meta fields, and gets a
// reference field for every non-meta field the parent has at that moment.
// References resolve the parent's field on every call, so inherited values are
// live while the inherited structure is a snapshot.
//
// # Generate
//
// Generate(1) returns a single Record; any other count returns []Record. Use
// Many when a slice is always wanted.
//
// # Distributions and unique values
//
// WithDistribution registers a field that picks each value from one of
// several bins of the same kind: uniformly, by weight, by exact percentage
// or along a bell curve. Options.Unique keeps a field's values distinct for
// the generator's lifetime; EnsureGeneratable reports up front when a
// generation would run out of them.
//
// # Providers
//
// Identifiers come from an id.Provider and random values from a Randomizer.
// Both are injected with WithIdentity and WithRandom and are shared by every
// generator extended from the one they were given to. Generation changes no
// schema structure, and the state kept by unique and percent fields is
// locked, so a Generator may be used from several goroutines when its
// providers allow it; the default providers do.
package generator
