package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ordergate/config"
	"ordergate/guard"
	"ordergate/output"
	"ordergate/pkg/logx"
	"ordergate/state"
)

var rootCmd = &cobra.Command{
	Use:   "ordergate",
	Short: "A pre-trade guardrail gate for order submission",
	Long: `Ordergate sits between "a user wants to submit this order" and "the
order is actually sent to a broker". It decides whether an order intent
may proceed, based on:

  - symbol allow/block lists
  - a configured trading window
  - per-order and per-day notional caps
  - an explicit, time-boxed live-mode arm step

State (the daily spend ledger, the live unlock token, the decision audit
trail) lives in a single SQLite file shared by every invocation.`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgPath  string
	dbPath   string
	jsonOut  bool
	logLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "./ordergate.yaml", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to state DB (overrides config state_path)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit a JSON envelope instead of text")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// runtime bundles the collaborators every command needs: loaded config,
// the open state store, and the engine built on both.
type runtime struct {
	cfg      *config.Config
	store    *state.Store
	gate     *guard.Gate
	enforcer *guard.Enforcer
	log      *slog.Logger
}

func openRuntime() (*runtime, error) {
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log := logx.New(os.Stderr, level)

	statePath := cfg.StatePath
	if dbPath != "" {
		statePath = dbPath
	}

	store, err := state.NewSQLite(statePath)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		store:    store,
		gate:     guard.NewGate(&cfg.Safety, store),
		enforcer: guard.NewEnforcer(&cfg.Safety, store),
		log:      log,
	}, nil
}

func (r *runtime) Close() {
	_ = r.store.Close()
}

// respond prints either the JSON envelope or the human rendering. On
// error the envelope still goes to stdout so the --json contract holds,
// and the error propagates for the exit code.
func respond(command string, data any, human func(), err error) error {
	if err != nil {
		if jsonOut {
			_ = output.Failure(command, err).Write(os.Stdout)
		}
		return err
	}
	if jsonOut {
		return output.Success(command, data).Write(os.Stdout)
	}
	if human != nil {
		human()
	}
	return nil
}
