/*
twilio implements an API client for the Twilio Messages API
https://www.twilio.com/docs/messaging/api/message-resource
*/
package twilio

import (
	"encoding/base64"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Credentials authenticate with an API key belonging to an account
type Credentials struct {
	AccountSid   string `env:"TWILIO_ACCOUNT_SID"`
	ApiKey       string `env:"TWILIO_API_KEY"`
	ApiKeySecret string `env:"TWILIO_API_KEY_SECRET"`
}

type Client struct {
	*client.Client
	accountSid string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.twilio.com/2010-04-01"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. Options are applied after the default endpoint and
// authorization header.
func New(credentials Credentials, opts ...client.ClientOpt) (*Client, error) {
	if missing := credentials.Missing(); len(missing) > 0 {
		return nil, weather.ErrBadParameter.Withf("missing credentials: %s", strings.Join(missing, ", "))
	}

	// Basic authentication with the API key and secret
	token := base64.StdEncoding.EncodeToString([]byte(credentials.ApiKey + ":" + credentials.ApiKeySecret))
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("Authorization", "Basic "+token),
	}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client:     client,
		accountSid: credentials.AccountSid,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Missing returns the environment variable names of any empty credentials
func (c Credentials) Missing() []string {
	var missing []string
	if c.AccountSid == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if c.ApiKey == "" {
		missing = append(missing, "TWILIO_API_KEY")
	}
	if c.ApiKeySecret == "" {
		missing = append(missing, "TWILIO_API_KEY_SECRET")
	}
	return missing
}
