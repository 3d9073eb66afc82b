// Package random provides the random-value source used by field generators.
//
// A Source draws from the global math/rand/v2 generator by default. A seeded
// Source (NewSeeded) is deterministic: the same seed and the same sequence of
// calls produce the same values, which makes fixture output reproducible.
//
// Both forms are safe for concurrent use; the seeded form serializes access
// with a mutex.
//
// # Value kinds
//
//   - AlphaNumeric(n): n characters from [a-zA-Z0-9]
//   - IntRange(min, max): integer in [min, max]
//   - Amount(min, max, precision): decimal in [min, max] on a 10^-precision grid
//   - DateBetween(min, max): instant in [min, max] with millisecond resolution
//   - Bool(): fair coin
//
// # Faker
//
// Faker(name) produces realistic-looking sample strings (names, emails,
// network addresses, finance and commerce values). FakerNames lists the
// supported names.
package random
