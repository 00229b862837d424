// Package config defines the format-agnostic model of node-kind manifests and graph
// definitions, along with the Loader interface implemented by the HCL and JSON readers.
//
// The `config.Model` is the only input of the `builder` and `registry` packages;
// concrete file formats live in separate packages.
package config
