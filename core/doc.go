// Package core provides the foundational domain types, interfaces and
// execution contexts used by qmesh. It defines the core abstractions for:
//
//   - Agents (independently scheduled units of protocol logic)
//   - RunContext (scoped execution state handed to an agent's Run)
//   - ResultStore (write-once per-agent results mapping with progress)
//   - Rand (the shared, seedable randomness source of a simulation run)
//
// The package intentionally keeps implementation concerns (state-vector
// algebra, channel plumbing, orchestration) out of scope, exposing small
// interfaces so concrete packages can be swapped or extended.
package core
