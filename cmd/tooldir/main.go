package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	opts := newCLIOptions()
	root := newRootCommand(opts)
	err := root.Execute()
	opts.close()
	if err == nil {
		return
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		if !exitErr.silent && exitErr.message != "" {
			fmt.Fprintln(os.Stderr, exitErr.message)
		}
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(exitCodeFor(err))
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
