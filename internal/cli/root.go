package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCommand создает корневую команду. Без подкоманды запускается serve
func NewRootCommand(version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tarefas-api",
		Short: "REST API for tasks (tarefas)",
		Long: `tarefas-api serves a CRUD REST API for tasks under /api/tarefas.

CONFIGURATION:
  Priority order: environment variables > config file > defaults

    PORT, DATABASE_URL, STORAGE_DRIVER (postgres|sqlite|gorm), SQLITE_PATH,
    LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, METRICS_ENABLED, TRACING_ENABLED, TRACING_OUTPUT`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), configPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				printVersion(cmd.OutOrStdout(), version)
			},
		},
	)

	return root
}

// Execute запускает CLI, SIGINT и SIGTERM отменяют контекст команды
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printVersion(w io.Writer, version string) {
	fmt.Fprintf(w, "tarefas-api %s\n", version)
}
