// Package graph defines the node-graph intermediate representation for
// shadergraph.
//
// A material is a directed acyclic graph of nodes. Each node produces one
// typed value (a uniform lookup, an arithmetic operation, a vector
// constructor, ...). Nodes live in an arena owned by a Graph and are
// addressed by stable integer handles, so a node referenced by several
// parents is stored exactly once and identity comparison is O(1).
//
// # Structure
//
// A Graph contains:
//   - Nodes: the arena of IR nodes, each a closed tagged union (NodeKind)
//   - Functions: user-declared functions whose bodies are themselves nodes
//
// Nodes are created once, by API calls or by the sgsl binder, and are
// read-only afterwards. Per-compile bookkeeping ("already built in this
// pass") belongs to the compiling backend, keyed by NodeHandle, never to
// the node itself; this keeps a shared graph safe to compile concurrently
// from independent passes.
//
// # Validation
//
// Validate runs static analysis over the graph before any code generation:
// cycle detection, type-compatibility checks on every edge, required-input
// checks, and disconnected-output detection. All findings are collected
// into a batched list of Diagnostics; validation never stops at the first
// finding.
package graph
