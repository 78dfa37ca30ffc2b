package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sflink/internal/server"
)

var serveFlags struct {
	listen string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve link resolution over HTTP",
	Long: `Serve link resolution over HTTP until interrupted.

Endpoints:
  GET /formedit-link?title=T   {"url": "..."}, or 204 when no form applies
  GET /article-forms?title=T   {"forms": [...]}
  GET /healthz
  GET /metrics                 Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.listen, "listen", "", "Address to listen on (default: server.listen, then :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	listen := serveFlags.listen
	if listen == "" {
		listen = a.cfg.Server.Listen
	}
	return server.New(svc, a.logger).ListenAndServe(ctx, listen)
}
