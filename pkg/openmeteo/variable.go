package openmeteo

import (
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Cadence is the resolution at which a set of variables is reported
type Cadence string

// Kind determines how the values of a variable are decoded
type Kind int

// Variable is a named forecast field
type Variable struct {
	Name string
	Kind Kind
}

// VariableSet is an ordered list of variables for one cadence. The upstream
// API returns values in the order they were requested, so the same set is used
// to build a request and to decode the response.
type VariableSet []Variable

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Current Cadence = "current"
	Hourly  Cadence = "hourly"
	Daily   Cadence = "daily"
)

const (
	Float Kind = iota
	Int64
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewVariableSet returns a set of floating point variables with the given names
func NewVariableSet(names ...string) VariableSet {
	set := make(VariableSet, 0, len(names))
	for _, name := range names {
		set = append(set, Variable{Name: name, Kind: Float})
	}
	return set
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithInt64 returns a copy of the set where the named variables are decoded
// as integers
func (s VariableSet) WithInt64(names ...string) VariableSet {
	result := make(VariableSet, len(s))
	copy(result, s)
	for i := range result {
		for _, name := range names {
			if result[i].Name == name {
				result[i].Kind = Int64
			}
		}
	}
	return result
}

// Names returns the variable names in order
func (s VariableSet) Names() []string {
	result := make([]string, 0, len(s))
	for _, v := range s {
		result = append(result, v.Name)
	}
	return result
}

// Index returns the position of the named variable, or -1
func (s VariableSet) Index(name string) int {
	for i, v := range s {
		if v.Name == name {
			return i
		}
	}
	return -1
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s VariableSet) String() string {
	return strings.Join(s.Names(), ",")
}

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}
