package twilio

import (
	"context"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is a message resource as returned by the API
type Message struct {
	Sid          string `json:"sid"`
	AccountSid   string `json:"account_sid,omitempty"`
	Status       string `json:"status"`
	To           string `json:"to"`
	From         string `json:"from"`
	Body         string `json:"body"`
	NumSegments  string `json:"num_segments,omitempty"`
	Direction    string `json:"direction,omitempty"`
	DateCreated  string `json:"date_created,omitempty"`
	ErrorCode    *int   `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// messageRequest is the url-encoded form sent to create a message
type messageRequest struct {
	From string `json:"From"`
	To   string `json:"To"`
	Body string `json:"Body"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SendMessage sends a text message and returns the queued message
func (c *Client) SendMessage(ctx context.Context, from, to, body string) (*Message, error) {
	if from == "" || to == "" {
		return nil, weather.ErrBadParameter.With("from and to numbers are required")
	} else if strings.TrimSpace(body) == "" {
		return nil, weather.ErrBadParameter.With("message body is empty")
	}

	// Form payload
	payload, err := client.NewFormRequest(messageRequest{
		From: from,
		To:   to,
		Body: body,
	}, client.ContentTypeJson)
	if err != nil {
		return nil, err
	}

	// Send the request
	var response Message
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("Accounts", c.accountSid, "Messages.json")); err != nil {
		return nil, err
	}

	// Return success
	return &response, nil
}
