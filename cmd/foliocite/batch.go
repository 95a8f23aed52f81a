package main

import (
	"github.com/spf13/cobra"

	"github.com/foliocite/foliocite/internal/cliout"
	"github.com/foliocite/foliocite/internal/svcctx"
)

var (
	batchRange    string
	batchWorkers  int
	batchClassify bool
	batchLLM      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every PDF in a directory",
	Long: `Run the inference pipeline over a directory of scanned PDFs.

Documents are processed concurrently; per-document failures are
reported in the output records without aborting the run.

Examples:
  foliocite batch ./scans
  foliocite batch ./scans --workers 8 --classify
  foliocite batch ./scans --llm-fallback -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := svcctx.ServicesFrom(ctx)

		runner, err := buildRunner(svc, svc.Engine, batchRange, batchClassify, batchLLM)
		if err != nil {
			return err
		}
		if batchWorkers > 0 {
			runner.Workers = batchWorkers
		}

		records, err := runner.Run(ctx, args[0])
		if err != nil {
			return err
		}
		return cliout.Output(records)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchRange, "range", "", "page window expression (default from config)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent documents (default from config)")
	batchCmd.Flags().BoolVar(&batchClassify, "classify", false, "also classify document types")
	batchCmd.Flags().BoolVar(&batchLLM, "llm-fallback", false, "consult the LLM estimator when inference abstains")

	rootCmd.AddCommand(batchCmd)
}
