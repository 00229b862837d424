// Package session reads graphs saved by the editor as JSON session files and translates
// them into the format-agnostic config model. Only graphs are read; node kinds always
// come from manifests.
package session
