package session

import "github.com/goccy/go-json"

// FileExtension is the extension of session files.
const FileExtension = ".json"

// document is the top-level object of a session file.
type document struct {
	Graph       graphHeader      `json:"graph"`
	Nodes       []nodeRecord     `json:"nodes"`
	Connections []connectionItem `json:"connections"`
	Entry       string           `json:"entry,omitempty"`
}

type graphHeader struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type nodeRecord struct {
	ID          string                     `json:"id"`
	Kind        string                     `json:"kind"`
	Name        string                     `json:"name,omitempty"`
	Properties  map[string]json.RawMessage `json:"properties,omitempty"`
	Expressions map[string]string          `json:"expressions,omitempty"`
}

type connectionItem struct {
	From string `json:"from"`
	To   string `json:"to"`
}
