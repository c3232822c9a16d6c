// Package testutil provides test utilities for the annotator, including:
//   - Redis container helpers for integration tests (redis.go)
//   - Miniredis helpers for unit tests (miniredis.go)
//   - Column and script fixtures (fixtures.go)
//
// Integration test utilities require Docker and are gated behind the "integration"
// build tag. To run integration tests:
//
//	go test -tags=integration ./...
//
// Unit test helpers (miniredis, fixtures) do not require Docker and work with regular tests.
package testutil
