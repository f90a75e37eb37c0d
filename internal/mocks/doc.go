// Package mocks provides testify-based mock implementations of the store
// and auth interfaces for use in unit tests across packages.
package mocks
