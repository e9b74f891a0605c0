package mcp

import (
	"log/slog"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	crew "github.com/mutablelogic/go-weather/pkg/crew"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolKit serves the tools in the toolkit
func WithToolKit(v *tool.Toolkit) Opt {
	return func(server *Server) error {
		server.toolkit = v
		return nil
	}
}

// WithCrew serves the crew tasks as prompts
func WithCrew(v *crew.Crew) Opt {
	return func(server *Server) error {
		server.crew = v
		return nil
	}
}

// WithLogger sets the logger for errors which cannot be returned to the client
func WithLogger(v *slog.Logger) Opt {
	return func(server *Server) error {
		if v == nil {
			return weather.ErrBadParameter.With("logger is nil")
		}
		server.logger = v
		return nil
	}
}
