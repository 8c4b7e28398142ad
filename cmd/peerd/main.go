package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	"github.com/jessevdk/go-flags"
)

func main() {
	p := flags.NewParser(&opts, flags.Default)

	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			fmt.Println("cli error:", err)
		}

		os.Exit(2)
	}

	wg := sync.WaitGroup{}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger, closeLogger := setupLogger()

	seeds := parseAddrs(opts.Cluster.Seeds)

	if opts.Config != "" {
		conf, err := loadFileConfig(opts.Config)
		if err != nil {
			level.Error(logger).Log("msg", "failed to load config file", "err", err)
			os.Exit(1)
		}

		seeds = applyFileConfig(conf, seeds)
	}

	n, closeNode, err := setupNode(logger, seeds)
	if err != nil {
		level.Error(logger).Log("msg", "failed to start node", "err", err)
		os.Exit(1)
	}

	shutdownOrder := []shutdownFunc{
		closeNode,
		closeLogger,
	}

	if opts.Gateway.BindAddr != "" {
		_, closeGateway := setupGateway(&wg, n, logger)
		shutdownOrder = append([]shutdownFunc{closeGateway}, shutdownOrder...)
	}

	// Block until we receive a signal to shut down.
	<-interrupt
	level.Info(logger).Log("msg", "received interrupt signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, f := range shutdownOrder {
		if err := f(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "failed to shutdown component", "err", err)
		}
	}

	// Wait for all components to finish background tasks.
	wg.Wait()
}
