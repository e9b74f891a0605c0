/*
crew defines a set of agents and the tasks they carry out in sequence. The
definition is read from YAML, validated against a toolkit and rendered as
prompts for an external orchestrator to run.
*/
package crew

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	yaml "gopkg.in/yaml.v3"
)

//go:embed default/*
var defaultFS embed.FS

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Crew is a named set of agents and tasks, with knowledge shared by all agents
type Crew struct {
	Name      string            `yaml:"name"`
	Process   string            `yaml:"process,omitempty"`
	Inputs    map[string]string `yaml:"inputs,omitempty"`
	Agents    Agents            `yaml:"agents"`
	Tasks     Tasks             `yaml:"tasks"`
	Knowledge []*Knowledge      `yaml:"knowledge,omitempty"`
}

// Agent is a role with a goal, and the tools it can use
type Agent struct {
	Name      string   `yaml:"-"`
	Role      string   `yaml:"role"`
	Goal      string   `yaml:"goal"`
	Backstory string   `yaml:"backstory"`
	Model     string   `yaml:"llm,omitempty"`
	Tools     []string `yaml:"tools,omitempty"`
}

// Task is a unit of work assigned to an agent
type Task struct {
	Name           string `yaml:"-"`
	Description    string `yaml:"description"`
	ExpectedOutput string `yaml:"expected_output"`
	Agent          string `yaml:"agent"`
}

// Knowledge is text from one or more files, made available to every agent
type Knowledge struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Files       []string `yaml:"files"`
	Text        string   `yaml:"-"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Sequential = "sequential"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Read a crew definition. Knowledge files are not read.
func Read(r io.Reader) (*Crew, error) {
	crew := new(Crew)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(crew); err != nil {
		return nil, weather.ErrBadParameter.Withf("crew: %v", err)
	}
	if crew.Process == "" {
		crew.Process = Sequential
	}
	return crew, nil
}

// Load a crew definition from a file, with knowledge files relative to
// the directory of the file
func Load(path string) (*Crew, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	crew, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := crew.ReadKnowledge(os.DirFS(filepath.Dir(path))); err != nil {
		return nil, err
	}
	return crew, nil
}

// Default returns the built-in weather crew
func Default() (*Crew, error) {
	sub, err := fs.Sub(defaultFS, "default")
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(sub, "crew.yaml")
	if err != nil {
		return nil, err
	}
	crew, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := crew.ReadKnowledge(sub); err != nil {
		return nil, err
	}
	return crew, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ReadKnowledge reads the text of every knowledge file from fsys
func (crew *Crew) ReadKnowledge(fsys fs.FS) error {
	for _, knowledge := range crew.Knowledge {
		var buf bytes.Buffer
		for _, file := range knowledge.Files {
			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				return weather.ErrNotFound.Withf("knowledge %q: %v", knowledge.Name, err)
			}
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.Write(bytes.TrimSpace(data))
		}
		knowledge.Text = buf.String()
	}
	return nil
}

// Validate checks that the crew can run: every task is assigned to a known
// agent, and every tool an agent uses is in the toolkit. A nil toolkit skips
// the tool check.
func (crew *Crew) Validate(toolkit *tool.Toolkit) error {
	if crew.Process != Sequential {
		return weather.ErrBadParameter.Withf("crew %q: unsupported process %q", crew.Name, crew.Process)
	}
	if len(crew.Agents) == 0 {
		return weather.ErrBadParameter.Withf("crew %q: no agents", crew.Name)
	}
	if len(crew.Tasks) == 0 {
		return weather.ErrBadParameter.Withf("crew %q: no tasks", crew.Name)
	}
	for _, task := range crew.Tasks {
		if task.Description == "" {
			return weather.ErrBadParameter.Withf("task %q: missing description", task.Name)
		}
		if crew.Agent(task.Agent) == nil {
			return weather.ErrNotFound.Withf("task %q: unknown agent %q", task.Name, task.Agent)
		}
	}
	if toolkit != nil {
		for _, agent := range crew.Agents {
			for _, name := range agent.Tools {
				if toolkit.Lookup(name) == nil {
					return weather.ErrNotFound.Withf("agent %q: unknown tool %q", agent.Name, name)
				}
			}
		}
	}
	return nil
}

// Agent returns an agent by name, or nil
func (crew *Crew) Agent(name string) *Agent {
	for _, agent := range crew.Agents {
		if agent.Name == name {
			return agent
		}
	}
	return nil
}

// Task returns a task by name, or nil
func (crew *Crew) Task(name string) *Task {
	for _, task := range crew.Tasks {
		if task.Name == name {
			return task
		}
	}
	return nil
}
