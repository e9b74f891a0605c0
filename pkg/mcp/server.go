// Implements an MCP server based on the following specification:
// https://modelcontextprotocol.io/specification/2025-06-18/basic/lifecycle
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	crew "github.com/mutablelogic/go-weather/pkg/crew"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string

	// Private members
	mu          sync.RWMutex       // Handler map lock
	handlers    map[string]Handler // Method handlers
	toolkit     *tool.Toolkit      // Toolkit for the server
	crew        *crew.Crew         // Tasks served as prompts
	logger      *slog.Logger
	initialised atomic.Bool
}

type Handler func(context.Context, any, json.RawMessage) (any, error)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version
func New(name, version string, opts ...Opt) (*Server, error) {
	self := &Server{
		name:     name,
		version:  version,
		handlers: make(map[string]Handler, 10),
		logger:   slog.Default(),
	}

	// Apply options
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Register default handlers
	self.HandlerFunc(MessageTypeInitialize, self.handleInitialize)
	self.HandlerFunc(MessageTypePing, self.handlePing)
	self.HandlerFunc(NotificationTypeInitialize, self.handleInitialized)
	self.HandlerFunc(MessageTypeListPrompts, self.handleListPrompts)
	self.HandlerFunc(MessageTypeGetPrompt, self.handleGetPrompt)
	self.HandlerFunc(MessageTypeListResources, self.handleListResources)
	self.HandlerFunc(MessageTypeListTools, self.handleListTools)
	self.HandlerFunc(MessageTypeCallTool, self.handleCallTool)

	// Return success
	return self, nil
}

// Implements an MCP server with standard input and output,
// and run in the foreground until the input is closed or the context is done.
// Requests are processed concurrently and responses written one per line.
func (server *Server) RunStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	var requests, writers sync.WaitGroup

	// Create a new buffered reader and writer
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	// Writer channel will write until closed, after all requests are done
	writerCh := make(chan []byte)
	writers.Go(func() {
		for data := range writerCh {
			if _, err := writer.Write(data); err != nil {
				server.logger.ErrorContext(ctx, "write", "error", err)
				continue
			}
			// Flush the writer to ensure data is sent immediately
			if err := writer.Flush(); err != nil {
				server.logger.ErrorContext(ctx, "flush", "error", err)
			}
		}
	})
	defer func() {
		requests.Wait()
		close(writerCh)
		writers.Wait()
	}()

	// Continue receiving input until the context is done
	var request string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if part, isPrefix, err := reader.ReadLine(); err != nil {
			if err == io.EOF {
				break
			}
			return err
		} else if isPrefix {
			request += string(part)
			continue
		} else {
			request += string(part)
		}
		if request = strings.TrimSpace(request); request == "" {
			continue
		}

		// Process a request in the background
		payload := request
		requests.Go(func() {
			if response := server.processRequest(ctx, payload); response != nil {
				// Write the response and a newline
				writerCh <- append(response, '\n')
			}
		})

		// Reset the request
		request = ""
	}

	// Return success
	return nil
}

// HandlerFunc registers (or removes) a handler for a method
func (server *Server) HandlerFunc(method string, fn Handler) {
	server.mu.Lock()
	defer server.mu.Unlock()
	if fn == nil {
		delete(server.handlers, method)
	} else {
		server.handlers[method] = fn
	}
}

// Initialised returns true after the client has sent the initialized
// notification
func (server *Server) Initialised() bool {
	return server.initialised.Load()
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// processRequest returns the encoded response, or nil for notifications
func (server *Server) processRequest(ctx context.Context, payload string) []byte {
	// Decode the request
	var request Request
	response := Response{Version: RPCVersion}
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		response.Err = NewError(ErrorCodeParseError, "parse error", err.Error())
		return server.encode(ctx, response)
	}
	response.ID = request.ID

	// Check the request
	if request.Version != RPCVersion || request.Method == "" {
		if request.ID == nil {
			return nil
		}
		response.Err = NewError(ErrorCodeInvalidRequest, "invalid request")
		return server.encode(ctx, response)
	}

	// Look up and call the handler
	result, err := server.call(ctx, &request)
	if request.ID == nil {
		// Notification, no response
		if err != nil {
			server.logger.DebugContext(ctx, "notification", "method", request.Method, "error", err)
		}
		return nil
	}
	if err != nil {
		response.Err = toError(err)
	} else if result == nil {
		response.Result = map[string]any{}
	} else {
		response.Result = result
	}

	// Return the response
	return server.encode(ctx, response)
}

func (server *Server) encode(ctx context.Context, response Response) []byte {
	data, err := json.Marshal(response)
	if err != nil {
		server.logger.ErrorContext(ctx, "encode", "error", err)
		data, _ = json.Marshal(Response{Version: RPCVersion, ID: response.ID, Err: NewError(ErrorInternalError, err.Error())})
	}
	return data
}

func (server *Server) call(ctx context.Context, request *Request) (any, error) {
	server.mu.RLock()
	fn, exists := server.handlers[request.Method]
	server.mu.RUnlock()

	if !exists {
		return nil, NewError(ErrorCodeMethodNotFound, "method not found", request.Method)
	}
	return fn(ctx, request.ID, request.Payload)
}

// toError maps an error onto a JSON-RPC error
func toError(err error) *Error {
	var target *Error
	switch {
	case errors.As(err, &target):
		return target
	case errors.Is(err, weather.ErrBadParameter), errors.Is(err, weather.ErrNotFound):
		return NewError(ErrorCodeInvalidParameters, err.Error())
	default:
		return NewError(ErrorInternalError, err.Error())
	}
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

func (server *Server) handleInitialize(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseInitialize)
	response.Version = ProtocolVersion
	response.ServerInfo.Name = server.name
	response.ServerInfo.Version = server.version
	response.Capabilities.Prompts = map[string]any{
		"listChanged": false,
	}
	response.Capabilities.Resources = map[string]any{
		"listChanged": false,
		"subscribe":   false,
	}
	response.Capabilities.Tools = map[string]any{
		"listChanged": false,
	}
	return response, nil
}

func (server *Server) handlePing(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	return map[string]any{}, nil
}

func (server *Server) handleInitialized(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	server.initialised.Store(true)
	return nil, nil
}

func (server *Server) handleListPrompts(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListPrompts)
	response.Prompts = []*Prompt{}
	if server.crew == nil {
		return response, nil
	}
	for _, task := range server.crew.Tasks {
		prompt := &Prompt{
			Name:        task.Name,
			Description: strings.TrimSpace(task.Description),
		}
		if agent := server.crew.Agent(task.Agent); agent != nil {
			prompt.Title = agent.Role
		}
		for _, name := range server.crew.Arguments(task.Name) {
			if name == crew.ContextInput {
				continue
			}
			_, hasDefault := server.crew.Inputs[name]
			prompt.Arguments = append(prompt.Arguments, &PromptArgument{
				Name:     name,
				Required: !hasDefault,
			})
		}
		prompt.Arguments = append(prompt.Arguments, &PromptArgument{
			Name:        crew.ContextInput,
			Description: "Output of the previous task",
		})
		response.Prompts = append(response.Prompts, prompt)
	}
	return response, nil
}

func (server *Server) handleGetPrompt(_ context.Context, _ any, payload json.RawMessage) (any, error) {
	if server.crew == nil {
		return nil, NewError(ErrorCodeMethodNotFound, "no prompts configured")
	}

	var req RequestGetPrompt
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, NewError(ErrorCodeInvalidParameters, err.Error())
	}

	// Check required arguments
	for _, name := range server.crew.Arguments(req.Name) {
		if _, hasDefault := server.crew.Inputs[name]; hasDefault || name == crew.ContextInput {
			continue
		}
		if _, exists := req.Arguments[name]; !exists {
			return nil, NewError(ErrorCodeInvalidParameters, "missing argument", name)
		}
	}

	// Render the prompt
	text, err := server.crew.Prompt(req.Name, req.Arguments)
	if err != nil {
		return nil, err
	}

	return &ResponseGetPrompt{
		Description: strings.TrimSpace(server.crew.Task(req.Name).ExpectedOutput),
		Messages: []*PromptMessage{
			{Role: "user", Content: NewTextContent(text)},
		},
	}, nil
}

func (server *Server) handleListResources(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListResources)
	response.Resources = []any{}
	return response, nil
}

func (server *Server) handleListTools(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListTools)
	response.Tools = []*Tool{}
	if server.toolkit == nil {
		return response, nil
	}
	for _, t := range server.toolkit.Tools() {
		schema, err := t.Schema()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		response.Tools = append(response.Tools, &Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		})
	}
	return response, nil
}

func (server *Server) handleCallTool(ctx context.Context, id any, payload json.RawMessage) (any, error) {
	if server.toolkit == nil {
		return nil, NewError(ErrorCodeMethodNotFound, "no tools configured")
	}

	var req RequestToolCall
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, NewError(ErrorCodeInvalidParameters, err.Error())
	}

	// Marshal arguments to pass to the toolkit
	var input json.RawMessage
	if req.Arguments != nil {
		data, err := json.Marshal(req.Arguments)
		if err != nil {
			return nil, NewError(ErrorCodeInvalidParameters, err.Error())
		}
		input = data
	}

	// Run the tool. Errors are returned as a tool error response, not
	// a JSON-RPC error
	result := server.toolkit.Call(ctx, tool.NewCall(req.Name, fmt.Sprint(id), input))
	if result.Err != nil {
		server.logger.DebugContext(ctx, "tool", "name", req.Name, "error", result.Err)
	}
	return &ResponseToolCall{
		Content: []*Content{NewTextContent(result.Text())},
		Error:   result.Err != nil,
	}, nil
}
