// Package services provides domain services that span more than one
// aggregate or that every use case consults.
//
// The package includes:
//   - AccessPolicy: the single table deciding which role may run which operation
//
// Use cases ask the policy before loading anything, so an unauthorized
// caller never learns whether a record exists.
package services
