/*
openmeteo implements an API client for the Open-Meteo forecast API
https://open-meteo.com/en/docs
*/
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	weather "github.com/mutablelogic/go-weather"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Fetcher returns a forecast for a request. The raw client, the cache, the
// retry and the rate limit layers all implement it, so they can be composed.
type Fetcher interface {
	Forecast(ctx context.Context, req *ForecastRequest) (*Response, error)
}

type Client struct {
	*client.Client
}

var _ Fetcher = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.open-meteo.com/v1"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. Options are applied after the default endpoint,
// so client.OptEndpoint can be used to point at another server.
func New(opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: client,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Forecast for a single location
func (c *Client) Forecast(ctx context.Context, req *ForecastRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Request -> Body
	var body json.RawMessage
	if err := c.DoWithContext(ctx, nil, &body, client.OptPath("forecast"), client.OptQuery(req.Values())); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		} else if isClientError(err) {
			return nil, weather.ErrBadParameter.With(err)
		}
		return nil, weather.ErrUpstreamUnavailable.With(err)
	}

	// Body -> Response
	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, weather.ErrMalformedResponse.With(err)
	}

	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// isClientError returns true when the server rejected the request itself,
// so repeating it cannot succeed. Timeouts and rate limits are excluded.
func isClientError(err error) bool {
	var code int
	var httpErr httpresponse.Err
	var httpResponse httpresponse.ErrResponse
	if errors.As(err, &httpErr) {
		code = int(httpErr)
	} else if errors.As(err, &httpResponse) {
		code = httpResponse.Code
	}
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return code >= 400 && code < 500
}
