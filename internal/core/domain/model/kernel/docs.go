// Package kernel provides the domain primitives shared by every shipflow aggregate.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Role and Environment: what a signed-in user may do and which database they work against
//   - Session: the explicit {identity, role, environment} object passed into every use case
//   - Signoff: a name, an opaque signature blob and the moment it was captured
//
// These primitives enforce their own invariants on construction, so aggregates
// that hold them never need to re-check them.
package kernel
