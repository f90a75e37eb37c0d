// Package service implements the account operations over the identity
// entities: lookups, ownership checks, selective updates and cascading
// deletes. Services accept and return transfer representations; entities
// never cross the service boundary. All collaborators are injected through
// constructors.
package service
