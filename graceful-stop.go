package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// gracefulStop exits on SIGTERM/SIGINT after running additional, leaving
// a short window for in-flight log lines to be collected.
func gracefulStop(additional func(os.Signal)) {

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-stop
		Debug.Printf("Caught signal: %+v", sig)

		additional(sig)

		time.Sleep(500 * time.Millisecond)
		os.Exit(0)
	}()
}
