package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"notes-client/internal/config"
	"notes-client/internal/controller"
	"notes-client/internal/logger"
	"notes-client/internal/remote/rest"
)

// app общее состояние команд: конфигурация и контроллер, созданные в PersistentPreRunE
type app struct {
	configFile string
	apiURL     string
	logFile    string
	verbose    bool

	cfg     *config.Config
	logger  *slog.Logger
	ctrl    *controller.Controller
	logSink io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "Client for a remote notes service",
		Long: `notes keeps a local view of the notes stored by a remote REST service.
Without a subcommand it opens the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "config.yml", "Path to the config file")
	flags.StringVar(&a.apiURL, "api-url", "", "Base URL of the notes service (overrides client.base_url)")
	flags.StringVar(&a.logFile, "log-file", "", "Write logs to this file (the interactive interface logs nowhere otherwise)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newTUICmd(a),
		newListCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.Client.BaseURL = strings.TrimSpace(a.apiURL)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	var w io.Writer = cmd.ErrOrStderr()
	switch {
	case a.logFile != "":
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logSink = f
		w = f
	case interactive(cmd):
		// вывод в терминал испортил бы экран
		w = io.Discard
	}
	a.logger = logger.New(w, cfg.Logger, a.verbose)
	slog.SetDefault(a.logger)

	client, err := rest.NewClientFromConfig(cfg.Client, a.logger)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	a.ctrl = controller.New(client, controller.WithLogger(a.logger))
	a.logger.Debug("client ready", "base_url", cfg.Client.BaseURL)
	return nil
}

func (a *app) teardown() {
	if a.ctrl != nil {
		a.ctrl.Close()
	}
	if a.logSink != nil {
		_ = a.logSink.Close()
	}
}

func interactive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}
