// internal/portref/doc.go

/*
Package portref parses and formats the textual port addresses used by graph files,
in the canonical form `node.port`, e.g. `start.exec` or `sum.result`.

Both halves must be identifier-safe because node ids end up inside generated variable
names.
*/
package portref
