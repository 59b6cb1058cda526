// Package agent contains the concrete agent runtime and the channel wiring
// helpers for building simulated quantum networks. The package focuses on
// three concerns:
//
//  1. Identity + stream consumption (each agent iterates its own cursor over
//     a shared or copied register stream)
//  2. Channel endpoints (peer-keyed quantum and classical conduits, attached
//     before a simulation starts and immutable afterwards)
//  3. User-supplied protocol logic (a RunFunc executed to completion on the
//     agent's own goroutine)
//
// Design principles:
//   - No hidden global state: randomness, results and timeouts arrive via
//     the RunContext created by the orchestrator
//   - Protocol roles (Alice, Bob, ...) are plain RunFunc values selected at
//     construction, not subclasses
//   - Qubits received over a channel are owned by the receiver until sent
//     onwards; the sender must not touch a qubit after sending it
package agent
