// Package main is the UA HPC Timeline development server entry point
// Serves the visualization files next to the binary on http://localhost:8000
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hpc-timeline/internal/adapters/gateway"
	"hpc-timeline/internal/adapters/handler"
	"hpc-timeline/internal/config"
	"hpc-timeline/internal/core/domain"
	"hpc-timeline/internal/core/services"
)

// exitInterrupted follows the shell convention of 128 + SIGINT
const exitInterrupted = 130

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	os.Exit(execute(os.Args[1:]))
}

// execute runs the root command and maps the outcome to an exit code
func execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case ctx.Err() != nil:
		return exitInterrupted
	case err != nil:
		slog.Error("Server failed", "error", err)
		return 1
	default:
		return 0
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "hpc-timeline-server",
		Short:         "Serve the UA HPC Timeline visualizations on http://localhost:8000",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

// runServer wires adapters into the server and blocks until ctx is done
func runServer(ctx context.Context, cfg *config.Config, out io.Writer) error {
	static := handler.NewStaticHandler(cfg.Static.Root)
	h := handler.WithResponseHeaders(domain.DevelopmentHeaders, static)

	srv := services.NewServer(cfg, h, gateway.NewProcessInspector(), gateway.NewSystemBrowser())
	return srv.Run(ctx, out)
}
