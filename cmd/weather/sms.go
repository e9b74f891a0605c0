package main

import (
	"fmt"
	"strings"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	twilio "github.com/mutablelogic/go-weather/pkg/twilio"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type SMSCommands struct {
	Send SendCommand `cmd:"" name:"sms" help:"Send a text message to the contact." group:"SMS"`
}

type SendCommand struct {
	Message []string `arg:"" name:"message" help:"Message text"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *SendCommand) Run(ctx *Globals) error {
	if missing := ctx.Credentials.Missing(); len(missing) > 0 {
		return weather.ErrBadParameter.Withf("missing credentials: %s", strings.Join(missing, ", "))
	}
	client, err := twilio.New(ctx.Credentials, ctx.clientOpts()...)
	if err != nil {
		return err
	}

	// Send the message
	message, err := client.SendMessage(ctx.ctx, ctx.From, ctx.To, strings.Join(cmd.Message, " "))
	if err != nil {
		return err
	}

	// Print the message
	ctx.logger.Printf(ctx.ctx, "Message sent to %s", ctx.To)
	fmt.Println(message.Sid)
	return nil
}
