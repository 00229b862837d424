// Package registry provides the central "glue" for the node-kind system.
//
// The Registry stores the format-agnostic kind definitions read from manifests and
// the Go code generators that custom-code kinds refer to by name (e.g.
// "table.csv_rows"). It also knows the port layout each kind gives its nodes.
//
// During application startup, the registry is populated and then validated to
// ensure that the Go generators and the manifests are in sync.
package registry
