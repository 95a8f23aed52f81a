package main

import (
	"github.com/spf13/cobra"

	"github.com/foliocite/foliocite/internal/cliout"
	"github.com/foliocite/foliocite/internal/engine"
	"github.com/foliocite/foliocite/internal/svcctx"
)

var (
	pagesRange       string
	pagesStrictRoman bool
	pagesClassify    bool
	pagesLLM         bool
)

var pagesCmd = &cobra.Command{
	Use:   "pages <file.pdf>",
	Short: "Infer the printed page range of a single document",
	Long: `Infer the printed page numbering of a scanned PDF.

The page range expression selects which physical pages to analyze.
Non-negative parts count from the front, "-N" takes the last N pages:

  foliocite pages article.pdf
  foliocite pages article.pdf --range "1-5, -3"
  foliocite pages chapter.pdf --strict-roman --classify`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := svcctx.ServicesFrom(ctx)

		eng := svc.Engine
		if pagesStrictRoman && !svc.Config.Parser.StrictRoman {
			opts := engineOptions(svc.Config, svc.Logger)
			opts.StrictRoman = true
			eng = engine.New(opts)
		}

		runner, err := buildRunner(svc, eng, pagesRange, pagesClassify, pagesLLM)
		if err != nil {
			return err
		}

		return cliout.Output(runner.RunFile(ctx, args[0]))
	},
}

func init() {
	pagesCmd.Flags().StringVar(&pagesRange, "range", "", "page window expression (default from config)")
	pagesCmd.Flags().BoolVar(&pagesStrictRoman, "strict-roman", false, "reject non-canonical roman numerals")
	pagesCmd.Flags().BoolVar(&pagesClassify, "classify", false, "also classify the document type")
	pagesCmd.Flags().BoolVar(&pagesLLM, "llm-fallback", false, "consult the LLM estimator when inference abstains")

	rootCmd.AddCommand(pagesCmd)
}
