// Package graph provides the read-only node graph consumed by the code generator.
//
// # Layout
//
// The graph is stored as a set of flat tables rather than as objects pointing at each
// other:
//
//	┌──────────────┐   ┌──────────────┐   ┌──────────────────┐
//	│    nodes     │   │    ports     │   │   connections    │
//	│ (by NodeID)  │──▶│ (by PortID)  │◀──│ (edge list From, │
//	│ ordered ids  │   │ owner NodeID │   │  To PortID)      │
//	└──────────────┘   └──────────────┘   └──────────────────┘
//
// A node refers to its ports by PortID, a port refers back to its owner by NodeID, and
// connections only ever hold two PortIDs. Inbound and outbound adjacency maps are
// maintained next to the edge list so that the two lookups the generator performs on
// every statement (ConnectionFrom and ExecSuccessor) are map hits.
//
// # Channels
//
// Every port is either a Data port (carries a value into an expression argument) or an
// Exec port (sequences statements). Connect refuses to join ports of different channels,
// refuses In->Out connections and enforces the fan-in/fan-out limits:
//   - an Exec/Out port has at most one successor
//   - an Exec/In port has at most one predecessor
//   - a single-connection Data/In port has at most one producer
//
// # Lifecycle
//
//  1. Built by the builder package (or directly in tests) with AddNode and Connect.
//  2. Handed to codegen, which only reads it.
//  3. Discarded.
//
// The graph performs no locking. Callers that mutate a graph while another goroutine
// compiles it must serialize those accesses themselves.
package graph
