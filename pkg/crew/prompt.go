package crew

import (
	"bytes"
	"regexp"
	"slices"
	"strings"
	"text/template"

	// Packages
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ContextInput is the input holding the output of the previous task
const ContextInput = "context"

var reInput = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

const promptTemplate = `You are {{ .Agent.Role }}. {{ trim .Agent.Backstory }}
Your personal goal is: {{ trim .Agent.Goal }}
{{- with .Agent.Tools }}
You have access to the following tools: {{ join . ", " }}
{{- end }}

Task: {{ trim .Task.Description }}

This is the expected criteria for your final answer: {{ trim .Task.ExpectedOutput }}
{{- with .Context }}

This is the context you're working with:
{{ . }}
{{- end }}
{{- range .Knowledge }}

{{ .Name }}{{ with .Description }} ({{ lower . }}){{ end }}:
{{ .Text }}
{{- end }}
`

var tmpl = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"trim":  strings.TrimSpace,
}).Parse(promptTemplate))

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Prompt renders the prompt for a task, with {name} placeholders replaced
// from inputs and then from the crew defaults. The "context" input, when
// set, is included as the output of the previous task.
func (crew *Crew) Prompt(name string, inputs map[string]string) (string, error) {
	task := crew.Task(name)
	if task == nil {
		return "", weather.ErrNotFound.Withf("task %q", name)
	}
	agent := crew.Agent(task.Agent)
	if agent == nil {
		return "", weather.ErrNotFound.Withf("task %q: unknown agent %q", task.Name, task.Agent)
	}

	// Merge the inputs over the defaults
	merged := make(map[string]string, len(crew.Inputs)+len(inputs))
	for k, v := range crew.Inputs {
		merged[k] = v
	}
	for k, v := range inputs {
		merged[k] = v
	}

	// Interpolate the agent and task
	a, t := *agent, *task
	a.Role = Interpolate(a.Role, merged)
	a.Goal = Interpolate(a.Goal, merged)
	a.Backstory = Interpolate(a.Backstory, merged)
	t.Description = Interpolate(t.Description, merged)
	t.ExpectedOutput = Interpolate(t.ExpectedOutput, merged)

	// Execute the template
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"Agent":     a,
		"Task":      t,
		"Context":   strings.TrimSpace(merged[ContextInput]),
		"Knowledge": crew.Knowledge,
	}); err != nil {
		return "", weather.ErrInternalServerError.Withf("template: %v", err)
	}

	// Return success
	return buf.String(), nil
}

// Arguments returns the placeholder names used by a task and its agent,
// sorted, or nil if the task does not exist
func (crew *Crew) Arguments(name string) []string {
	task := crew.Task(name)
	if task == nil {
		return nil
	}
	text := []string{task.Description, task.ExpectedOutput}
	if agent := crew.Agent(task.Agent); agent != nil {
		text = append(text, agent.Role, agent.Goal, agent.Backstory)
	}
	result := []string{}
	for _, s := range text {
		result = append(result, Placeholders(s)...)
	}
	slices.Sort(result)
	return slices.Compact(result)
}

// Interpolate replaces {name} placeholders with values from inputs. Unknown
// placeholders are left as they are.
func Interpolate(text string, inputs map[string]string) string {
	return reInput.ReplaceAllStringFunc(text, func(match string) string {
		if value, exists := inputs[match[1:len(match)-1]]; exists {
			return value
		}
		return match
	})
}

// Placeholders returns the names of the {name} placeholders in text, in
// the order they appear
func Placeholders(text string) []string {
	var result []string
	for _, match := range reInput.FindAllStringSubmatch(text, -1) {
		result = append(result, match[1])
	}
	return result
}
