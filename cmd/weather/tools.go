package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	table "github.com/mutablelogic/go-weather/pkg/ui/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List available tools." group:"TOOL"`
	ToolInfo  ToolInfoCommand  `cmd:"" name:"tool" help:"Show detailed information about a tool." group:"TOOL"`
	RunTool   RunToolCommand   `cmd:"" name:"run" help:"Run a tool with JSON input." group:"TOOL"`
}

type ListToolsCommand struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

type ToolInfoCommand struct {
	Name string `arg:"" name:"name" help:"Tool name"`
	JSON bool   `name:"json" help:"Output as JSON"`
}

type RunToolCommand struct {
	Name  string          `arg:"" name:"name" help:"Tool name"`
	Input json.RawMessage `arg:"" name:"input" optional:"" help:"JSON input for the tool (optional)"`
	JSON  bool            `name:"json" help:"Output the call and result as JSON"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	tools := ctx.toolkit.Tools()
	if cmd.JSON {
		type toolInfo struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		output := make([]toolInfo, 0, len(tools))
		for _, tool := range tools {
			output = append(output, toolInfo{
				Name:        tool.Name(),
				Description: tool.Description(),
			})
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		// Fit descriptions to the terminal width after the name column
		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w - 26
		}
		for _, tool := range tools {
			description := tool.Description()
			if width > 0 {
				description = table.Truncate(description, width)
			}
			fmt.Printf("%-25s %s\n", tool.Name(), description)
		}
	}
	return nil
}

func (cmd *ToolInfoCommand) Run(ctx *Globals) error {
	tool := ctx.toolkit.Lookup(cmd.Name)
	if tool == nil {
		return weather.ErrNotFound.Withf("tool %q", cmd.Name)
	}

	// Get the schema
	schema, err := tool.Schema()
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}

	if cmd.JSON {
		type toolDetail struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Schema      any    `json:"schema,omitempty"`
		}
		data, err := json.MarshalIndent(toolDetail{
			Name:        tool.Name(),
			Description: tool.Description(),
			Schema:      schema,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Name: %s\n", tool.Name())
		fmt.Printf("Description: %s\n", tool.Description())
		if schema != nil {
			fmt.Println("\nSchema:")
			data, err := json.MarshalIndent(schema, "  ", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("  %s\n", string(data))
		}
	}
	return nil
}

func (cmd *RunToolCommand) Run(ctx *Globals) error {
	result := ctx.toolkit.Call(ctx.ctx, tool.NewCall(cmd.Name, "", cmd.Input))
	if cmd.JSON {
		fmt.Println(result)
	} else if result.Err != nil {
		return result.Err
	} else {
		fmt.Println(result.Text())
	}
	return nil
}
