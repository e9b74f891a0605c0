package main

import (
	"fmt"
	"os"

	// Packages
	table "github.com/mutablelogic/go-weather/pkg/ui/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ForecastCommands struct {
	Forecast ForecastCommand `cmd:"" name:"forecast" help:"Show the forecast for a location." group:"FORECAST"`
}

type ForecastCommand struct {
	Latitude  float64 `arg:"" name:"latitude" optional:"" default:"47.6062" help:"Latitude of the location"`
	Longitude float64 `arg:"" name:"longitude" optional:"" default:"-122.3321" help:"Longitude of the location"`
	Plain     bool    `name:"plain" help:"Output as plain text, as returned by the forecast tool"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ForecastCommand) Run(ctx *Globals) error {
	report, err := ctx.adapter.Report(ctx.ctx, cmd.Latitude, cmd.Longitude)
	if err != nil {
		return err
	}

	// Plain text when requested, or not writing to a terminal
	if cmd.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(report.String())
		return nil
	}

	// Print the summary and the tables
	fmt.Print(report.Summary())
	if report.Hourly != nil {
		fmt.Println(table.RenderTerm(report.Hourly))
	}
	if report.Daily != nil {
		fmt.Println(table.RenderTerm(report.Daily))
	}

	// Cache statistics
	hits, misses := ctx.adapter.CacheStats()
	ctx.logger.Debugf(ctx.ctx, "Cache hits=%d misses=%d", hits, misses)

	return nil
}
