package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliocite/foliocite/internal/cliout"
	"github.com/foliocite/foliocite/internal/config"
	"github.com/foliocite/foliocite/internal/engine"
	"github.com/foliocite/foliocite/internal/svcctx"
	"github.com/foliocite/foliocite/version"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "foliocite",
	Short: "Infer the printed page numbers of scanned documents",
	Long: `Foliocite reads the header and footer margins of scanned PDFs and
infers their true printed page numbering, which rarely starts at 1 for
journal articles and book chapters.

The pipeline includes:
  - Margin text extraction with positional metadata
  - Numeric token parsing (arabic, roman, CJK page markers)
  - Consistency-scored sequence search across a page window
  - Document type classification (book, thesis, journal, chapter)
  - Footer-scan and LLM fallbacks when the search abstains`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.foliocite/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cliout.SetOutputFormat(outputFormat)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		cmd.SetContext(svcctx.WithServices(cmd.Context(), &svcctx.Services{
			Logger: logger,
			Config: cfg,
			Engine: engine.New(engineOptions(cfg, logger)),
		}))
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}

// engineOptions maps the configuration onto the engine's knobs.
func engineOptions(cfg *config.Config, logger *slog.Logger) engine.Options {
	return engine.Options{
		PerfectStride:        cfg.Scoring.PerfectStride,
		Sequential:           cfg.Scoring.Sequential,
		NearMiss:             cfg.Scoring.NearMiss,
		BreakPenalty:         cfg.Scoring.BreakPenalty,
		ConsistencyThreshold: cfg.Scoring.ConsistencyThreshold,
		MaxCombinations:      cfg.Scoring.MaxCombinations,
		MinValue:             cfg.Parser.MinValue,
		MaxValue:             cfg.Parser.MaxValue,
		StrictRoman:          cfg.Parser.StrictRoman,
		Logger:               logger,
	}
}
