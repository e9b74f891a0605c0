package main

import (
	"fmt"
	"strings"

	// Packages
	crew "github.com/mutablelogic/go-weather/pkg/crew"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type CrewCommands struct {
	Tasks  ListTasksCommand `cmd:"" name:"tasks" help:"List the crew tasks." group:"CREW"`
	Prompt PromptCommand    `cmd:"" name:"prompt" help:"Render the prompt for a crew task." group:"CREW"`
}

type CrewFlags struct {
	Crew string `name:"crew" type:"existingfile" help:"Crew definition file (default is the built-in weather checker)"`
}

type ListTasksCommand struct {
	CrewFlags
}

type PromptCommand struct {
	CrewFlags
	Task   string            `arg:"" name:"task" help:"Task name"`
	Inputs map[string]string `name:"input" short:"i" help:"Input values, as name=value"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListTasksCommand) Run(ctx *Globals) error {
	c, err := cmd.load(ctx)
	if err != nil {
		return err
	}
	for _, task := range c.Tasks {
		args := c.Arguments(task.Name)
		fmt.Printf("%-25s %-20s %s\n", task.Name, task.Agent, strings.Join(args, ", "))
	}
	return nil
}

func (cmd *PromptCommand) Run(ctx *Globals) error {
	c, err := cmd.load(ctx)
	if err != nil {
		return err
	}
	prompt, err := c.Prompt(cmd.Task, cmd.Inputs)
	if err != nil {
		return err
	}
	fmt.Print(prompt)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// load reads the crew, and checks the agent tools are in the toolkit
func (cmd *CrewFlags) load(ctx *Globals) (*crew.Crew, error) {
	var c *crew.Crew
	var err error
	if cmd.Crew != "" {
		c, err = crew.Load(cmd.Crew)
	} else {
		c, err = crew.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := c.Validate(ctx.toolkit); err != nil {
		return nil, err
	}
	return c, nil
}
