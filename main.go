package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mobile-next/ghostcli/cli"
	"github.com/mobile-next/ghostcli/commands"
)

func main() {
	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case <-sigChan:
		// drop any live sessions on signal
		if store := commands.GetStore(); store != nil {
			store.CloseAll()
		}
		os.Exit(0)
	case err := <-done:
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
