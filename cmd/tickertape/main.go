package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tickertape-ai/tickertape/internal/config"
	"github.com/tickertape-ai/tickertape/mcp"
	"github.com/tickertape-ai/tickertape/yfinance"
)

var _ mcp.Provider = (*yfinance.Client)(nil)

var rootCmd = &cobra.Command{
	Use:   "tickertape",
	Short: "An MCP server for Yahoo Finance market data",
	Long: `tickertape is an MCP stdio server exposing Yahoo Finance market data.
It processes JSON-RPC requests from stdin and writes JSON-RPC responses to
stdout, one per line. Tools cover quotes, price history, financial statements,
holders, option chains, and news.

Logs go to a file so that stdout stays reserved for protocol frames.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("error opening log file %s: %w", logFile, err)
			}
			defer f.Close()
			logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
		}

		g.Go(func() error {
			cfg, err := config.LoadFile(configFile)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			retryClient := retryablehttp.NewClient()
			retryClient.RetryMax = retries
			retryClient.RetryWaitMin = 1 * time.Second
			retryClient.RetryWaitMax = 30 * time.Second
			retryClient.HTTPClient.Timeout = timeout
			retryClient.Logger = logger

			provider := yfinance.NewClient(
				yfinance.WithHTTPClient(retryClient.StandardClient()),
				yfinance.WithLogger(logger),
			)

			server, err := mcp.NewServer(
				mcp.WithProvider(provider),
				mcp.WithConfig(cfg),
				mcp.WithLogger(logger),
				mcp.WithServerInfo("tickertape", version),
			)
			if err != nil {
				return fmt.Errorf("error creating server: %w", err)
			}

			logger.Info("server starting", "version", version, "tools", len(server.Tools()))

			transport := mcp.NewStdioTransport(server, os.Stdin, os.Stdout, logger)
			return transport.Run(ctx)
		})

		return g.Wait()
	},
}

var (
	logFile    string
	configFile string
	verbose    bool
	retries    int
	timeout    time.Duration

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.Flags().StringVar(&logFile, "log-file", "/tmp/tickertape.log", "Log file path (empty to disable logging)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Config file path (JSON or YAML)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().IntVar(&retries, "retries", 3, "Maximum number of retries for failed requests")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)", version, commit, date)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
