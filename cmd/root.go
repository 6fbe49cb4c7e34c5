package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/somersault/internal/config"
	"github.com/papapumpkin/somersault/internal/skill"
	"github.com/papapumpkin/somersault/internal/store"
	"github.com/papapumpkin/somersault/internal/telemetry"
	"github.com/papapumpkin/somersault/internal/ui"
)

var errNoStore = errors.New("no history store configured (set --store or store_path)")

var rootCmd = &cobra.Command{
	Use:   "somersault",
	Short: "Trampoline skill notation toolkit",
	Long: `Somersault decodes and names trampoline skills written in FIG shorthand,
scores their difficulty, checks ten-skill routines, totals judge sheets,
and re-scores sheets as they change on disk.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .somersault.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("names", "", "extra named-skill TOML file")
	pf.String("telemetry", "", "append JSONL telemetry events to this file")
	pf.String("store", "", "SQLite history database")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("names_file", pf.Lookup("names"))
	_ = viper.BindPFlag("telemetry_path", pf.Lookup("telemetry"))
	_ = viper.BindPFlag("store_path", pf.Lookup("store"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".somersault")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SOMERSAULT")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session bundles the configuration and output every command needs.
type session struct {
	cfg     config.Config
	names   *skill.Table
	printer *ui.Printer
	logger  *slog.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	names, err := cfg.Names()
	if err != nil {
		return nil, fmt.Errorf("failed to load names: %w", err)
	}
	return &session{
		cfg:     cfg,
		names:   names,
		printer: ui.New(cmd.OutOrStdout(), names),
		logger:  newLogger(cmd.ErrOrStderr(), cfg.Verbose),
	}, nil
}

// newLogger returns a text logger on w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// emitter opens the configured telemetry file. A nil emitter is returned
// when telemetry is off; it is safe to use and close.
func (s *session) emitter() (*telemetry.Emitter, error) {
	if s.cfg.TelemetryPath == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(s.cfg.TelemetryPath)
}

// emit records one event, logging rather than failing on write errors.
func (s *session) emit(evt telemetry.Event) {
	em, err := s.emitter()
	if err != nil {
		s.logger.Warn("telemetry unavailable", "error", err)
		return
	}
	defer em.Close()
	if err := em.Emit(evt); err != nil {
		s.logger.Warn("telemetry emit failed", "error", err)
	}
}

// openStore opens the configured history store, or returns nil when none
// is configured.
func (s *session) openStore(ctx context.Context) (*store.Store, error) {
	if s.cfg.StorePath == "" {
		return nil, nil
	}
	return store.Open(ctx, s.cfg.StorePath)
}

// writeJSON encodes v as indented JSON to w.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
