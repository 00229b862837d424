// Package notify tells a running editor over socket.io that an artifact was written,
// so that it can reload the generated module.
package notify
