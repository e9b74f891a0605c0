package crew_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	weather "github.com/mutablelogic/go-weather"
	crew "github.com/mutablelogic/go-weather/pkg/crew"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name string
}

func (s *stubTool) Name() string                                          { return s.name }
func (s *stubTool) Description() string                                   { return "stub" }
func (s *stubTool) Schema() (*jsonschema.Schema, error)                   { return nil, nil }
func (s *stubTool) Run(_ context.Context, _ json.RawMessage) (any, error) { return nil, nil }

const testCrew = `
name: test
agents:
  second:
    role: Second
    goal: Go second
    backstory: Always second
  first:
    role: First
    goal: Go first in {city}
    backstory: Always first
    tools: [weather_forecast]
tasks:
  b_task:
    description: Run before a_task in {city}
    expected_output: Anything for {name}
    agent: first
  a_task:
    description: Run after b_task
    expected_output: Anything
    agent: second
knowledge:
  - name: Notes
    description: Some notes
    files: [notes.txt]
`

func Test_Crew_001(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := crew.Read(strings.NewReader(testCrew))
	require.NoError(err)
	assert.Equal("test", c.Name)
	assert.Equal(crew.Sequential, c.Process)

	// Document order, not alphabetical
	require.Len(c.Agents, 2)
	assert.Equal("second", c.Agents[0].Name)
	assert.Equal("first", c.Agents[1].Name)
	require.Len(c.Tasks, 2)
	assert.Equal("b_task", c.Tasks[0].Name)
	assert.Equal("a_task", c.Tasks[1].Name)
	assert.Equal([]string{"weather_forecast"}, c.Agent("first").Tools)
	assert.Nil(c.Agent("third"))
	assert.Nil(c.Task("c_task"))
}

func Test_Crew_002(t *testing.T) {
	assert := assert.New(t)

	// Unknown fields and duplicate names are rejected
	_, err := crew.Read(strings.NewReader("name: x\ncolour: red\n"))
	assert.True(errors.Is(err, weather.ErrBadParameter))
	_, err = crew.Read(strings.NewReader("name: x\nagents:\n  a:\n    role: A\n  a:\n    role: B\n"))
	assert.True(errors.Is(err, weather.ErrBadParameter))
	_, err = crew.Read(strings.NewReader("name: x\nagents: [a, b]\n"))
	assert.True(errors.Is(err, weather.ErrBadParameter))
}

func Test_Crew_003(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := crew.Read(strings.NewReader(testCrew))
	require.NoError(err)

	// Without a toolkit, tools are not checked
	assert.NoError(c.Validate(nil))

	// Missing tool
	tk, err := tool.NewToolkit(&stubTool{name: "send_sms_toby"})
	require.NoError(err)
	assert.True(errors.Is(c.Validate(tk), weather.ErrNotFound))

	// All tools present
	require.NoError(tk.Register(&stubTool{name: "weather_forecast"}))
	assert.NoError(c.Validate(tk))

	// Unknown agent
	c.Tasks[0].Agent = "third"
	assert.True(errors.Is(c.Validate(tk), weather.ErrNotFound))

	// Unsupported process
	c.Tasks[0].Agent = "first"
	c.Process = "hierarchical"
	assert.True(errors.Is(c.Validate(tk), weather.ErrBadParameter))
}

func Test_Crew_004(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// Knowledge files are relative to the crew file
	dir := t.TempDir()
	require.NoError(os.WriteFile(filepath.Join(dir, "crew.yaml"), []byte(testCrew), 0o600))
	require.NoError(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("  Bring an umbrella.\n"), 0o600))

	c, err := crew.Load(filepath.Join(dir, "crew.yaml"))
	require.NoError(err)
	require.Len(c.Knowledge, 1)
	assert.Equal("Bring an umbrella.", c.Knowledge[0].Text)

	// Missing knowledge file
	require.NoError(os.Remove(filepath.Join(dir, "notes.txt")))
	_, err = crew.Load(filepath.Join(dir, "crew.yaml"))
	assert.True(errors.Is(err, weather.ErrNotFound))
}

func Test_Crew_005(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := crew.Default()
	require.NoError(err)
	assert.Equal("weather_checker", c.Name)

	names := []string{}
	for _, task := range c.Tasks {
		names = append(names, task.Name)
	}
	assert.Equal([]string{"lookup_current_weather", "write_morning_update"}, names)
	assert.Equal("weather_reporter", c.Task("lookup_current_weather").Agent)
	assert.Equal("personal_assistant", c.Task("write_morning_update").Agent)
	assert.Contains(c.Agent("weather_reporter").Tools, "weather_forecast")
	assert.Contains(c.Agent("personal_assistant").Tools, "send_sms_toby")
	require.Len(c.Knowledge, 1)
	assert.Contains(c.Knowledge[0].Text, "Toby")

	tk, err := tool.NewToolkit(&stubTool{name: "weather_forecast"}, &stubTool{name: "send_sms_toby"})
	require.NoError(err)
	assert.NoError(c.Validate(tk))
}

///////////////////////////////////////////////////////////////////////////////
// PROMPTS

func Test_Prompt_001(t *testing.T) {
	assert := assert.New(t)

	inputs := map[string]string{"city": "Seattle", "empty": ""}
	assert.Equal("Weather in Seattle", crew.Interpolate("Weather in {city}", inputs))
	assert.Equal("Weather in {town}", crew.Interpolate("Weather in {town}", inputs))
	assert.Equal("[]", crew.Interpolate("[{empty}]", inputs))
	assert.Equal("{ city }", crew.Interpolate("{ city }", inputs))
	assert.Equal([]string{"city", "town", "city"}, crew.Placeholders("{city} {town} {city}"))
}

func Test_Prompt_002(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := crew.Read(strings.NewReader(testCrew))
	require.NoError(err)
	c.Knowledge[0].Text = "Bring an umbrella."

	prompt, err := c.Prompt("b_task", map[string]string{"city": "Seattle"})
	require.NoError(err)
	assert.Contains(prompt, "You are First. Always first")
	assert.Contains(prompt, "Your personal goal is: Go first in Seattle")
	assert.Contains(prompt, "You have access to the following tools: weather_forecast")
	assert.Contains(prompt, "Task: Run before a_task in Seattle")
	assert.Contains(prompt, "expected criteria for your final answer: Anything for {name}")
	assert.Contains(prompt, "Notes (some notes):\nBring an umbrella.")
	assert.NotContains(prompt, "context you're working with")

	// Context from the previous task
	prompt, err = c.Prompt("a_task", map[string]string{crew.ContextInput: "It will rain."})
	require.NoError(err)
	assert.Contains(prompt, "This is the context you're working with:\nIt will rain.")
	assert.NotContains(prompt, "following tools")

	// Unknown task
	_, err = c.Prompt("c_task", nil)
	assert.True(errors.Is(err, weather.ErrNotFound))

	assert.Equal([]string{"city", "name"}, c.Arguments("b_task"))
	assert.Nil(c.Arguments("c_task"))
}

func Test_Prompt_003(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := crew.Default()
	require.NoError(err)

	// Defaults fill in the inputs, which can be overridden
	prompt, err := c.Prompt("lookup_current_weather", nil)
	require.NoError(err)
	assert.Contains(prompt, "latitude 47.6062, longitude -122.3321")
	assert.NotContains(prompt, "{location}")

	prompt, err = c.Prompt("lookup_current_weather", map[string]string{"location": "Berlin"})
	require.NoError(err)
	assert.Contains(prompt, "in Berlin")
}
