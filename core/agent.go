package core

// Agent defines the interface every simulation participant must implement.
//
// Agents are the primary execution units of a simulation. Each agent runs its
// protocol logic to completion on its own goroutine, pulling registers from
// its stream source, exchanging qubits and classical values with peers over
// channels, and publishing a single result into the shared ResultStore.
//
// Implementations must:
//   - Respect context cancellation carried by the RunContext
//   - Publish at most one output via RunContext.Publish
//   - Only touch qubits they currently own (received but not yet sent)
type Agent interface {
	Name() string
	Run(rc *RunContext) error
}

// StreamReporter is implemented by agents that consume a register stream.
// The orchestrator uses it to verify that all participants iterate streams
// of identical shape before any of them starts.
type StreamReporter interface {
	// StreamShape returns the register count and qubits-per-register of the
	// agent's stream source. ok is false when the agent has no stream.
	StreamShape() (systems, systemSize int, ok bool)
}

// AgentInfo carries identifying details about an agent used in contexts and
// log records. Name is the external identifier and the results-mapping key.
type AgentInfo struct{ Name string }
