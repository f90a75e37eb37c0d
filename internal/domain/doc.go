// Package domain defines the core identity entities and their validation
// rules. Relationships between entities are represented as foreign-key style
// id references, never as cyclic owning pointers; the service layer resolves
// the counterpart of a relation on demand through the stores.
package domain
