package tool

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Call is a request to run a named tool
type Call struct {
	Name  string          `json:"name"`
	Id    string          `json:"id,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewCall(name, id string, input json.RawMessage) *Call {
	return &Call{
		Name:  name,
		Id:    id,
		Input: input,
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c *Call) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
