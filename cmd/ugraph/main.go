package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

const appName = "ugraph"

func main() {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to every command.
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"host": host,
	})

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Cancel the context on SIGINT / SIGHUP so running computations stop at
	// the next superstep barrier.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
