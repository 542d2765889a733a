// Command phonebook is an interactive terminal client for the phonebook server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"phonebook/internal/phonebook"
	"phonebook/internal/phonebook/api"
	"phonebook/internal/platform/logger"
)

func main() {
	server := flag.String("server", "http://localhost:3001", "phonebook server base URL")
	logLevel := flag.String("log-level", "warn", "log level for diagnostics on stderr")
	flag.Parse()

	log := logger.New(os.Stderr, *logLevel, "text")

	client, err := api.New(*server, api.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "phonebook: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	con := newConsole(os.Stdin, os.Stdout)
	rt := phonebook.NewRuntime(client, con,
		phonebook.WithRuntimeLogger(log),
		phonebook.WithOnChange(con.render),
	)
	con.attach(rt)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		con.readLoop(ctx)
		cancel()
	}()

	rt.Dispatch(phonebook.Refresh{})
	if err := rt.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "phonebook: %v\n", err)
		os.Exit(1)
	}
}
