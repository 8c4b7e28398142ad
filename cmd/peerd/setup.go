package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/meshworks/peerd/gateway"
	"github.com/meshworks/peerd/node"
	nodegrpc "github.com/meshworks/peerd/nodeclient/grpc"
)

type shutdownFunc func(ctx context.Context) error

var noopShutdown = func(ctx context.Context) error { return nil }

func setupLogger() (kitlog.Logger, shutdownFunc) {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))

	if !opts.Verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return logger, noopShutdown
}

func setupNode(logger kitlog.Logger, seeds []string) (*node.Node, shutdownFunc, error) {
	conf := node.DefaultConfig()
	conf.BindAddr = opts.Node.BindAddr
	conf.PublicAddr = opts.Node.PublicAddr
	conf.Seeds = seeds
	conf.Dialer = nodegrpc.NewDialer()
	conf.JoinTimeout = time.Millisecond * time.Duration(opts.Cluster.JoinTimeout)
	conf.PingTimeout = time.Millisecond * time.Duration(opts.Cluster.PingTimeout)
	conf.Logger = logger

	n := node.New(conf)

	if err := n.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start node: %w", err)
	}

	shutdown := func(ctx context.Context) error {
		if err := n.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop node: %w", err)
		}

		return nil
	}

	return n, shutdown, nil
}

func setupGateway(wg *sync.WaitGroup, n *node.Node, logger kitlog.Logger) (*http.Server, shutdownFunc) {
	server := &http.Server{
		Addr:    opts.Gateway.BindAddr,
		Handler: gateway.CreateRouter(n, logger),
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		level.Info(logger).Log("msg", "gateway is listening", "addr", opts.Gateway.BindAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "gateway server stopped", "err", err)
		}
	}()

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "shutting down gateway")

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown gateway: %w", err)
		}

		return nil
	}

	return server, shutdown
}
