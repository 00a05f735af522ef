// Package ports defines the contracts between the shipflow core and its
// adapters: repositories and the sequence allocator behind a unit of work,
// plus the outbound collaborators (event publisher, admin notifier, blob
// store, password hasher, token service, mail sender).
package ports
