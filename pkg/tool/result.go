package tool

import (
	"context"
	"encoding/json"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Result is the outcome of a call. Either Value or Err is set.
type Result struct {
	Call  *Call `json:"call"`
	Value any   `json:"result,omitempty"`
	Err   error `json:"-"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Call runs a tool and returns the result, which carries any error
func (tk *Toolkit) Call(ctx context.Context, call *Call) *Result {
	result := &Result{Call: call}
	if value, err := tk.Run(ctx, call.Name, call.Input); err != nil {
		result.Err = err
	} else {
		result.Value = value
	}
	return result
}

// Text returns the result as text. Strings are returned verbatim, other
// values as indented JSON and errors as their message.
func (r *Result) Text() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	switch v := r.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case json.RawMessage:
		return string(v)
	}
	data, err := json.MarshalIndent(r.Value, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Result) MarshalJSON() ([]byte, error) {
	type result Result
	v := struct {
		result
		Error string `json:"error,omitempty"`
	}{result: result(r)}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return json.Marshal(v)
}

func (r Result) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
