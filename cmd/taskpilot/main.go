package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskpilot/internal/config"
	"taskpilot/internal/gateway"
	"taskpilot/internal/intake"
	"taskpilot/internal/render"
	"taskpilot/internal/scoring"
	"taskpilot/internal/server"
	"taskpilot/internal/session"
)

var (
	verbose   bool
	apiBase   string
	strategy  string
	tasksFile string
	serveAddr string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "taskpilot",
	Short: "taskpilot - task intake and remote prioritization client",
	Long: `taskpilot collects tasks (typed in or bulk-imported as JSON) in an
in-memory session and sends them to a scoring service for prioritization.

Run without arguments to start an interactive session. Use the analyze and
suggest subcommands for one-shot runs against a tasks file, or serve to run
the bundled reference scoring service.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if apiBase != "" {
			cfg.APIBase = apiBase
		}
		if strategy != "" {
			cfg.Strategy = strategy
		}
		if serveAddr != "" {
			cfg.ServeAddr = serveAddr
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newREPL(cmd.Context(), cfg, logger, os.Stdin, os.Stdout)
		r.run()
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a tasks file with a named strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadTasksFile()
		if err != nil {
			return err
		}
		gw := gateway.New(cfg.APIBase, logger)
		results, err := gw.Analyze(cmd.Context(), cfg.Strategy, sess.Tasks())
		if err != nil {
			return err
		}
		heading := "Analyzed with strategy: " + cfg.Strategy
		fmt.Print(render.Results(render.Normalize(heading, results)))
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Get the suggested top tasks for a tasks file",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadTasksFile()
		if err != nil {
			return err
		}
		gw := gateway.New(cfg.APIBase, logger)
		results, err := gw.Suggest(cmd.Context(), sess.Tasks())
		if err != nil {
			return err
		}
		heading := "Suggested top tasks for today (with explanations)."
		fmt.Print(render.Results(render.Normalize(heading, results)))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bundled reference scoring service",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("scoring service listening", zap.String("addr", cfg.ServeAddr))
		fmt.Printf("scoring service listening on %s (strategies: %s)\n",
			cfg.ServeAddr, strings.Join(scoring.StrategyNames(), ", "))
		return http.ListenAndServe(cfg.ServeAddr, server.New(logger).Handler())
	},
}

// loadTasksFile bulk-imports --tasks-file into a fresh session.
func loadTasksFile() (*session.Session, error) {
	if tasksFile == "" {
		return nil, fmt.Errorf("--tasks-file is required")
	}
	data, err := os.ReadFile(tasksFile)
	if err != nil {
		return nil, err
	}
	sess := session.New()
	pipe := intake.New(sess, logger)
	n, err := pipe.AddBulk(string(data))
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded tasks file", zap.String("file", tasksFile), zap.Int("count", n))
	return sess, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "scoring service base URL (default http://localhost:8000/api/tasks)")

	analyzeCmd.Flags().StringVar(&tasksFile, "tasks-file", "", "path to a JSON array of tasks")
	analyzeCmd.Flags().StringVar(&strategy, "strategy", "",
		"prioritization strategy (known: "+strings.Join(scoring.StrategyNames(), ", ")+")")
	suggestCmd.Flags().StringVar(&tasksFile, "tasks-file", "", "path to a JSON array of tasks")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8000)")

	rootCmd.AddCommand(analyzeCmd, suggestCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
