// Package main provides the CLI entrypoint for typesprint.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typesprint/internal/config"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/passage"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
	"github.com/verte-zerg/typesprint/internal/store"
	"github.com/verte-zerg/typesprint/internal/tui"
)

const (
	defaultMode        = string(model.ModeTimed)
	defaultDifficulty  = string(model.DifficultyHard)
	defaultCurveWindow = 20
)

var (
	playMode       string
	playDifficulty string
	playPassages   string
	debugLogging   bool

	statsMode        string
	statsDifficulty  string
	statsSince       string
	statsLast        int
	statsCurveWindow int

	highScoreReset bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesprint",
		Short:         "Terminal typing speed game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "game mode: timed or passage")
	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", defaultDifficulty, "passage difficulty")
	rootCmd.PersistentFlags().StringVar(&playPassages, "passages", "", "passage file or http(s) URL (default: built-in passages)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDifficultiesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHighScoreCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Game.Mode)
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Game.Difficulty)

	mode, err := model.ParseMode(playMode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	cfg := model.Config{
		Mode:       mode,
		Difficulty: model.Difficulty(strings.ToLower(strings.TrimSpace(playDifficulty))),
		Passages:   playPassages,
	}
	if cfg.Difficulty == "" {
		return fmt.Errorf("--difficulty must not be empty")
	}

	logger, closeLog, err := newFileLogger(config.DefaultLogPath(), debugLogging)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx := context.Background()
	src := passage.NewSource(cfg.Passages, nil)
	var difficulties []model.Difficulty
	if data, err := src.Data(ctx); err != nil {
		// The TUI shows the load error and retries on reset.
		logger.Warn("failed to load passages", "source", cfg.Passages, "err", err)
	} else {
		difficulties = data.Difficulties()
		if !slices.Contains(difficulties, cfg.Difficulty) {
			return fmt.Errorf("unknown difficulty %q (available: %s)", cfg.Difficulty, joinDifficulties(difficulties))
		}
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	m, err := tui.NewModel(ctx, session.Options{
		Source:     src,
		HighScores: st,
		Results:    st,
		Logger:     logger,
		Mode:       cfg.Mode,
		Difficulty: cfg.Difficulty,
	}, difficulties)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDifficultiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "difficulties",
		Short: "List passage difficulties and pool sizes",
		Args:  cobra.NoArgs,
		RunE:  runDifficultiesCmd,
	}
}

func runDifficultiesCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	slog.SetDefault(newStderrLogger(debugLogging))

	data, err := passage.NewSource(playPassages, nil).Data(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load passages: %w", err)
	}
	return writeDifficulties(cmd.OutOrStdout(), data)
}

func writeDifficulties(w io.Writer, data passage.Data) error {
	for _, d := range data.Difficulties() {
		if _, err := fmt.Fprintf(w, "%s\t%d passages\n", d, len(data[d])); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show results history and WPM curves",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter")
	cmd.Flags().StringVar(&statsDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	slog.SetDefault(newStderrLogger(debugLogging))

	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	if err := report.Render(cmd.OutOrStdout(), cfg.CurveWindow, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	return nil
}

func buildStatsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	var mode model.Mode
	if statsMode != "" {
		parsed, err := model.ParseMode(statsMode)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --mode: %w", err)
		}
		mode = parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	return model.StatsConfig{
		Mode:        mode,
		Difficulty:  model.Difficulty(strings.ToLower(strings.TrimSpace(statsDifficulty))),
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}, nil
}

func newHighScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highscore",
		Short: "Show or reset the high score",
		Args:  cobra.NoArgs,
		RunE:  runHighScoreCmd,
	}
	cmd.Flags().BoolVar(&highScoreReset, "reset", false, "forget the stored high score")
	return cmd
}

func runHighScoreCmd(cmd *cobra.Command, _ []string) error {
	slog.SetDefault(newStderrLogger(debugLogging))

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if highScoreReset {
		if err := st.ClearHighScore(ctx); err != nil {
			return fmt.Errorf("failed to reset high score: %w", err)
		}
		slog.Info("high score reset")
		_, err := fmt.Fprintln(out, "High score cleared.")
		return err
	}
	score, ok, err := st.HighScore(ctx)
	if err != nil {
		return fmt.Errorf("failed to read high score: %w", err)
	}
	if !ok {
		_, err = fmt.Fprintln(out, "No high score yet.")
		return err
	}
	_, err = fmt.Fprintf(out, "High score: %d WPM\n", score)
	return err
}

// loadFileConfig reads the config file and applies the settings shared by all
// commands.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "passages", &playPassages, fileCfg.Game.Passages)
	applyBoolConfig(cmd, "debug", &debugLogging, fileCfg.Game.Debug)
	return fileCfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = %q            # timed (60 s countdown) or passage (count up until done)
# difficulty = %q         # Passage pool: easy, medium, hard or a custom one
# passages = ""             # Passage JSON/YAML file or http(s) URL
# debug = false             # Debug logging to %s
`,
		defaultMode,
		defaultDifficulty,
		config.DefaultLogPath(),
	)
}

func levelFor(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func newStderrLogger(debug bool) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      levelFor(debug),
		TimeFormat: time.Kitchen,
	}))
}

// newFileLogger logs to path while the TUI owns the terminal.
func newFileLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(tint.NewHandler(f, &tint.Options{
		Level:      levelFor(debug),
		TimeFormat: time.DateTime,
		NoColor:    true,
	}))
	return logger, func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		slog.Error("failed to close db", "err", cerr)
	}
}

func joinDifficulties(ds []model.Difficulty) string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, string(d))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
