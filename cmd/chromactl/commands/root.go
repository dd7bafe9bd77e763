package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chromactl/internal/app"
)

var (
	configPath string
	storePath  string
	host       string
	port       int
	logLevel   string
	logFormat  string

	appCtx *app.App
)

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	return errors.Join(err, closeApp())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chromactl",
		Short:         "Manage vector database collections",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("path") {
				cfg.Path = storePath
			}
			if flags.Changed("host") {
				cfg.Chroma.Host = host
			}
			if flags.Changed("port") {
				cfg.Chroma.Port = port
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if flags.Changed("log-format") {
				cfg.Log.Format = logFormat
			}

			a, err := app.New(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ./chromactl.yaml or $CHROMACTL_CONFIG)")
	pf.StringVar(&storePath, "path", app.DefaultPath, "local persistent database directory")
	pf.StringVar(&host, "host", "", "Chroma server host; uses the local database when empty")
	pf.IntVar(&port, "port", 8000, "Chroma server port")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(listCmd(), deleteCmd(), createCmd(), addCmd(), getCmd(), queryCmd(), countCmd())
	return root
}

func closeApp() error {
	if appCtx == nil {
		return nil
	}
	err := appCtx.Close()
	appCtx = nil
	return err
}
