package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	godotenv "github.com/joho/godotenv"
	client "github.com/mutablelogic/go-client"
	forecast "github.com/mutablelogic/go-weather/pkg/forecast"
	openmeteo "github.com/mutablelogic/go-weather/pkg/openmeteo"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	twilio "github.com/mutablelogic/go-weather/pkg/twilio"
	version "github.com/mutablelogic/go-weather/pkg/version"
	otel "go.opentelemetry.io/otel"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Forecast and SMS configuration
	Weather `embed:"" help:"Forecast configuration"`
	SMS     `embed:"" help:"SMS configuration"`

	// Context
	ctx     context.Context
	logger  Logger
	adapter *forecast.Adapter
	toolkit *tool.Toolkit
}

type Weather struct {
	Timezone     string        `name:"timezone" env:"WEATHER_TIMEZONE" default:"${TIMEZONE}" help:"Timezone for the forecast"`
	ForecastDays uint          `name:"forecast-days" env:"WEATHER_FORECAST_DAYS" default:"${FORECAST_DAYS}" help:"Number of days to forecast (1 to 16)"`
	CacheTTL     time.Duration `name:"cache-ttl" env:"WEATHER_CACHE_TTL" default:"${CACHE_TTL}" help:"How long to keep forecasts, or zero to disable the cache"`
	Retries      uint          `name:"retries" env:"WEATHER_RETRIES" default:"5" help:"Number of retries for failed requests"`
}

type SMS struct {
	twilio.Credentials `embed:"" prefix:"twilio-"`
	From               string `name:"twilio-from" env:"TWILIO_FROM_NUMBER" default:"+1234567890" help:"Number to send messages from"`
	To                 string `name:"twilio-to" env:"TWILIO_TO_NUMBER" default:"+1987654321" help:"Number to send messages to"`
	Contact            string `name:"contact" env:"TWILIO_CONTACT" default:"Toby" help:"Name of the contact receiving messages"`
}

type CLI struct {
	Globals
	ForecastCommands
	ToolCommands
	SMSCommands
	CrewCommands
	MCPCommands
	VersionCommands
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Load environment variables from a .env file, which is optional
	envErr := godotenv.Load()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Weather forecast and morning update command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"TIMEZONE":      forecast.DefaultTimezone,
			"FORECAST_DAYS": "3",
			"CACHE_TTL":     forecast.DefaultCacheTTL.String(),
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Create a logger on stderr
	cli.Globals.logger = NewLogger(os.Stderr, cli.Debug)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		cli.Globals.logger.Printf(ctx, "Warning: Error loading .env file: %v", envErr)
	}

	// Create the forecast adapter and the toolkit
	cmd.FatalIfErrorf(cli.Globals.init())

	// Run the command
	cmd.FatalIfErrorf(cmd.Run(&cli.Globals))
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// init creates the adapter once, and the tools which share it
func (g *Globals) init() error {
	clientopts := g.clientOpts()

	// Forecast adapter
	policy := openmeteo.DefaultRetryPolicy()
	policy.Retries = g.Retries
	adapter, err := forecast.New(
		forecast.WithClientOpts(clientopts...),
		forecast.WithTimezone(g.Timezone),
		forecast.WithForecastDays(g.ForecastDays),
		forecast.WithCacheTTL(g.CacheTTL),
		forecast.WithRetryPolicy(policy),
		forecast.WithTracer(otel.Tracer(execName())),
		forecast.WithRetryNotify(func(err error, delay time.Duration) {
			g.logger.Debugf(g.ctx, "Retrying in %v: %v", delay, err)
		}),
	)
	if err != nil {
		return err
	}
	g.adapter = adapter

	// Toolkit
	toolkit, err := tool.NewToolkit(
		forecast.NewTool(adapter),
		twilio.NewTool(g.contact(), g.Credentials, clientopts...),
	)
	if err != nil {
		return err
	}
	g.toolkit = toolkit

	// Return success
	return nil
}

func (g *Globals) contact() twilio.Contact {
	return twilio.Contact{
		Name: g.Contact,
		From: g.From,
		To:   g.To,
	}
}

func (g *Globals) clientOpts() []client.ClientOpt {
	result := []client.ClientOpt{
		client.OptUserAgent(version.UserAgent(execName())),
	}
	if g.Debug || g.Verbose {
		result = append(result, client.OptTrace(os.Stderr, g.Verbose))
	}
	return result
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		return "weather"
	} else {
		return filepath.Base(name)
	}
}
