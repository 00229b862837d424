// Package watch recompiles on source changes. Watcher turns bursts of fsnotify events
// on graph and manifest files into single callbacks; Cache remembers the hash of the
// last artifact written per path so unchanged output is neither rewritten nor
// announced.
package watch
