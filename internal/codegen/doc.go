// Package codegen compiles a node graph into a single Python module.
//
// A compilation pass starts at the entry node and walks the Exec chain. Before each
// node's statement is written, its Data inputs are resolved: unconnected inputs become
// literals, inline producers are substituted as expressions, and every other producer
// is compiled exactly once into a statement whose variables (var_<id>_<index>) are then
// shared by all consumers. Control-flow nodes expand into nested, indented blocks by
// recursing into their branch successors.
//
// The pass owns all of its state and is not safe for concurrent use; separate passes
// over separate graphs need no coordination. The graph must not be mutated during a
// pass.
//
// Output is deterministic: compiling an unchanged graph twice yields byte-identical
// source.
package codegen
