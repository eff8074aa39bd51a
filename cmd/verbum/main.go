// Command verbum is a terminal client for Verbum Dei: search the Scriptures,
// read commentary and keep highlights, notes and saved commentaries in a
// local SQLite database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/internal/commentary"
	"github.com/taiwoajasa245/verbum-dei-api/internal/library"
	"github.com/taiwoajasa245/verbum-dei-api/internal/logging"
	"github.com/taiwoajasa245/verbum-dei-api/internal/oracle"
	"github.com/taiwoajasa245/verbum-dei-api/internal/search"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage/sqlite"
	"github.com/taiwoajasa245/verbum-dei-api/internal/study"
	"github.com/taiwoajasa245/verbum-dei-api/pkg/config"
)

var (
	// Global flags
	verbose bool
	dbPath  string

	logger = zap.NewNop()

	// newOracle builds the oracle for a run; tests replace it.
	newOracle = func(ctx context.Context, cfg *config.Config) oracle.Oracle {
		g, err := oracle.NewGemini(ctx, oracle.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}, logger)
		if err != nil {
			logger.Warn("gemini oracle unavailable", zap.Error(err))
			return oracle.Unconfigured{}
		}
		return g
	}
)

var rootCmd = &cobra.Command{
	Use:   "verbum",
	Short: "Verbum Dei - Catholic Bible study in the terminal",
	Long: `Verbum Dei searches the Catholic Bible with a generative model and
explains verses with theological and patristic commentary.

History, highlights, notes and saved commentaries are kept in a local
SQLite database (see --db).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New("development", level)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app is one CLI run: the local store and the single study session over it.
type app struct {
	cfg     *config.Config
	store   *sqlite.Store
	session *study.Session
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	path := dbPath
	if path == "" {
		path = cfg.StoragePath
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	o := newOracle(ctx, cfg)
	lib := library.Open(ctx, store, logger)
	orc := commentary.New(o, commentary.WithTimeout(cfg.OracleTimeout), commentary.WithLogger(logger))
	session := study.NewSession("local", lib, search.NewService(o, cfg.DefaultTranslation, logger), orc, logger)

	return &app{cfg: cfg, store: store, session: session}, nil
}

func (a *app) Close() error {
	a.session.Wait()
	return a.store.Close()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: STORAGE_PATH)")

	searchCmd.Flags().StringVarP(&searchBook, "book", "b", "", "Restrict results to one book")
	searchCmd.Flags().StringVarP(&searchTranslation, "translation", "t", "", "Translation key (see: verbum translations)")
	searchCmd.Flags().BoolVar(&noColor, "no-color", false, "Do not mark matches with terminal colors")

	commentaryCmd.Flags().StringVar(&verseText, "text", "", "Verse text to comment on")
	commentaryCmd.Flags().BoolVar(&saveCommentary, "save", false, "Save the commentary once loaded")

	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "Clear the search history")

	noteCmd.Flags().BoolVar(&deleteNote, "delete", false, "Delete the note")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedDeleteCmd)
	savedCmd.AddCommand(savedClearCmd)

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(commentaryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(translationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
