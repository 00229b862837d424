/*
Package builder is responsible for the construction of the compilation graph. It acts
as the bridge between the static configuration model (defined in the 'config' package)
and the compiler (the 'codegen' package).

The primary artifact produced by this package is a validated *graph.Graph.

The graph construction is a multi-phase process:

 1. Node Creation: The builder iterates through the graph definition's nodes, looks up
    each node's kind in the registry and creates the node with the kind's port layout.
    Node properties that name an input replace that input's default; the remaining
    properties, merged over the kind's property defaults, are bound into the node's
    inline template.

 2. Connection Linking: Every `connect` reference is resolved to a pair of ports and
    added to the graph, which enforces the channel and fan-in rules.

 3. Entry Selection: The explicit entry wins. Without one, a single node whose kind
    is marked `entry` is chosen.

Upon successful completion, the builder hands the graph to the compiler, which never
sees manifests or the registry.
*/
package builder
