// Package main implements microflod, the CLI entry point that wires a
// network, a component registry, and a byte transport together and runs the
// cooperative scheduler loop.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/componentregistry"
	"github.com/flowcore/microflo/config"
	pkgerrors "github.com/flowcore/microflo/errors"
	"github.com/flowcore/microflo/hostproto"
	"github.com/flowcore/microflo/metric"
	"github.com/flowcore/microflo/natsclient"
	"github.com/flowcore/microflo/network"
	"github.com/flowcore/microflo/notify"
	"github.com/flowcore/microflo/notify/transport"
	"github.com/flowcore/microflo/pkg/retry"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "microflod"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("microflod failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("configuration is valid")
		return nil
	}

	registry := component.NewRegistry()
	if err := componentregistry.Register(registry); err != nil {
		return fmt.Errorf("register components: %w", err)
	}
	slog.Info("component kinds registered", "kinds", registry.Kinds())

	metricsRegistry := metric.NewMetricsRegistry()
	networkMetrics, err := metric.NewNetworkMetrics(metricsRegistry)
	if err != nil {
		return fmt.Errorf("create network metrics: %w", err)
	}

	if cliCfg.MetricsPort != 0 {
		metricsServer := metric.NewServer(cliCfg.MetricsPort, "/metrics", metricsRegistry)
		go func() {
			if err := metricsServer.Start(); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
		defer func() { _ = metricsServer.Stop() }()
		slog.Info("metrics server listening", "address", metricsServer.Address())
	}

	net, err := network.New(
		network.WithCapacities(cfg.MaxNodes, cfg.MaxMessages),
		network.WithMetrics(networkMetrics),
	)
	if err != nil {
		return fmt.Errorf("create network: %w", err)
	}
	net.SetDebugLevel(parseDebugLevel(cfg.DebugLevel))

	parser := hostproto.NewParser(net, registry)

	ctx := context.Background()
	tr, cleanup, err := buildTransport(ctx, cfg, parser)
	if err != nil {
		return fmt.Errorf("build transport: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	sink := notify.NewSink(tr)
	net.SetNotificationHandler(sink)
	parser.SetReplyWriter(sink)

	net.Start()
	slog.Info("network started", "transport", cfg.Transport, "max_nodes", cfg.MaxNodes, "max_messages", cfg.MaxMessages)

	return runWithSignalHandling(ctx, net, tr, cliCfg.TickInterval, cliCfg.ShutdownTimeout)
}

func initializeCLI() (*CLIConfig, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, true, nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)
	slog.Info("starting microflod", "version", Version, "build_time", BuildTime)

	return cliCfg, false, nil
}

func parseDebugLevel(level string) network.DebugLevel {
	switch level {
	case "silent":
		return network.DebugLevelSilent
	case "info":
		return network.DebugLevelInfo
	case "trace":
		return network.DebugLevelTrace
	default:
		return network.DebugLevelError
	}
}

// stdio adapts os.Stdin/os.Stdout into a single io.ReadWriter for the
// ReadWriter transport.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

var _ io.ReadWriter = stdio{}

// buildTransport selects a transport.Transport per cfg.Transport. The
// returned cleanup func, if non-nil, must run before the process exits.
func buildTransport(ctx context.Context, cfg *config.Config, parser *hostproto.Parser) (transport.Transport, func(), error) {
	switch cfg.Transport {
	case config.TransportNull:
		return transport.NewNull(), nil, nil

	case config.TransportStdio:
		return transport.NewReadWriter(stdio{}, parser), nil, nil

	case config.TransportNATS:
		client, err := natsclient.NewClient(cfg.NATSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create NATS client: %w", err)
		}

		retryCfg := pkgerrors.DefaultRetryConfig().ToRetryConfig()
		if err := retry.Do(ctx, retryCfg, func() error { return client.Connect(ctx) }); err != nil {
			return nil, nil, fmt.Errorf("connect to NATS: %w", err)
		}
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := client.WaitForConnection(connCtx); err != nil {
			return nil, nil, fmt.Errorf("NATS connection timeout: %w", err)
		}
		tr, err := transport.NewNATS(client, "microflo.out", "microflo.in", parser)
		if err != nil {
			return nil, nil, fmt.Errorf("create NATS transport: %w", err)
		}
		cleanup := func() { _ = client.Close(context.Background()) }
		return tr, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// runWithSignalHandling drives the cooperative scheduler loop — one network
// tick, one transport tick, repeat — until a shutdown signal arrives.
func runWithSignalHandling(ctx context.Context, net *network.Network, tr transport.Transport, tickInterval, shutdownTimeout time.Duration) error {
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-signalCtx.Done():
			break loop
		case <-ticker.C:
			net.RunTick()
			tr.RunTick()
		}
	}

	slog.Info("received shutdown signal, stopping network", "timeout", shutdownTimeout)
	net.Stop()
	slog.Info("microflod shutdown complete")
	return nil
}
