// Package runner coordinates simulation execution: it validates that all
// participating agents iterate streams of identical shape, starts every
// agent on its own goroutine, optionally reports coarse per-agent progress,
// and blocks the caller until all agents have finished. The runner does not
// interpret results; after Run returns, the shared results mapping is
// complete and readable by the caller.
package runner
