// Package kernel holds the value objects shared across the order domain:
//   - UUID: order identifier backed by github.com/google/uuid
//   - Identity: the caller as seen by the auth collaborator
//
// Both are immutable and safe for concurrent use.
package kernel
