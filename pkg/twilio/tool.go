package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	cases "golang.org/x/text/cases"
	language "golang.org/x/text/language"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Contact is a named recipient, and the number to send from
type Contact struct {
	Name string
	From string
	To   string
}

// SendRequest is the input to the send tool
type SendRequest struct {
	Message string `json:"message" jsonschema:"The message to send to the contact"`
}

type sendTool struct {
	contact Contact
	client  *Client
	missing []string
	err     error
}

var _ tool.Tool = (*sendTool)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns a tool which sends a message to the contact. Problems
// with the credentials are reported by the tool when it is run, so the
// tool can always be registered.
func NewTool(contact Contact, credentials Credentials, opts ...client.ClientOpt) tool.Tool {
	t := &sendTool{contact: contact}
	t.contact.Name = cases.Title(language.English).String(strings.TrimSpace(contact.Name))
	if t.missing = credentials.Missing(); len(t.missing) == 0 {
		t.client, t.err = New(credentials, opts...)
	}
	return t
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (t *sendTool) Name() string {
	return "send_sms_" + identifier(t.contact.Name)
}

func (t *sendTool) Description() string {
	return fmt.Sprintf("Sends an SMS message to %s using Twilio", t.contact.Name)
}

// Return the JSON schema for the tool input
func (*sendTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[SendRequest](nil)
}

// Run sends the message and returns a status. It never returns an error;
// failures are described in the status instead.
func (t *sendTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	if len(t.missing) > 0 {
		return fmt.Sprintf("Error: Missing Twilio credentials: %s", strings.Join(t.missing, ", ")), nil
	} else if t.err != nil {
		return t.failed(t.err), nil
	}

	// Decode the input
	var req SendRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return t.failed(err), nil
		}
	}

	// Send the message
	message, err := t.client.SendMessage(ctx, t.contact.From, t.contact.To, req.Message)
	if err != nil {
		return t.failed(err), nil
	}

	// Return success
	return fmt.Sprintf("Message sent successfully to %s. Message SID: %s", t.contact.Name, message.Sid), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *sendTool) failed(err error) string {
	return fmt.Sprintf("Error sending message to %s: %v", t.contact.Name, err)
}

// identifier returns the name in lowercase with anything other than
// letters and digits replaced by underscores
func identifier(name string) string {
	var buf strings.Builder
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			buf.WriteRune(r)
		} else {
			buf.WriteRune('_')
		}
	}
	if buf.Len() == 0 {
		return "contact"
	}
	return buf.String()
}
