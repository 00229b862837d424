// Package hcl provides the HCL implementation of config.Loader. It reads two kinds of
// top-level blocks, `node_kind` manifests and `graph` definitions, translates them into
// the format-agnostic config model, and turns `inline` attributes into expression
// templates that are evaluated only at compile time.
package hcl
