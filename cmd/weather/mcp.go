package main

import (
	"os"
	"strings"

	// Packages
	mcp "github.com/mutablelogic/go-weather/pkg/mcp"
	version "github.com/mutablelogic/go-weather/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPCommands struct {
	Server MCPServerCommand `cmd:"" name:"mcp" help:"Start an MCP server on standard input and output." group:"SERVER"`
}

type MCPServerCommand struct {
	CrewFlags
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MCPServerCommand) Run(ctx *Globals) error {
	c, err := cmd.load(ctx)
	if err != nil {
		return err
	}

	// Log tools that will be exposed via MCP
	var toolNames []string
	for _, t := range ctx.toolkit.Tools() {
		toolNames = append(toolNames, t.Name())
	}
	ctx.logger.Print(ctx.ctx, "Starting MCP server with tools: ", strings.Join(toolNames, ", "))

	// Create MCP server
	server, err := mcp.New(execName(), version.Version(),
		mcp.WithToolKit(ctx.toolkit),
		mcp.WithCrew(c),
		mcp.WithLogger(ctx.logger.Slog()),
	)
	if err != nil {
		return err
	}

	// Run the server on stdio
	defer ctx.logger.Print(ctx.ctx, "MCP server stopped")
	return server.RunStdio(ctx.ctx, os.Stdin, os.Stdout)
}
