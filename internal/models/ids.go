// internal/models/ids.go
// Opaque entity identifiers shared across the domain model.

package models

// ID is a non-zero opaque identifier for a save-scoped entity.
type ID = uint64
