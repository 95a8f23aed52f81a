package main

import (
	"github.com/spf13/cobra"

	"github.com/foliocite/foliocite/internal/cliout"
	"github.com/foliocite/foliocite/internal/svcctx"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file.pdf>",
	Short: "Classify a document as book, thesis, journal, or bookchapter",
	Long: `Classify a scanned document by its length and front-matter text.

Long documents split into books and theses; short ones into journal
articles and book chapters. Classification consults the page-number
engine to tell reprints with high starting page numbers from books.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := svcctx.ServicesFrom(ctx)

		runner, err := buildRunner(svc, svc.Engine, "", true, false)
		if err != nil {
			return err
		}

		rec := runner.RunFile(ctx, args[0])
		return cliout.Output(struct {
			SourcePath   string `json:"source_path" yaml:"source_path"`
			PageCount    int    `json:"page_count" yaml:"page_count"`
			DocumentType string `json:"document_type" yaml:"document_type"`
			Error        string `json:"error,omitempty" yaml:"error,omitempty"`
		}{
			SourcePath:   rec.SourcePath,
			PageCount:    rec.PageCount,
			DocumentType: rec.DocumentType,
			Error:        rec.Error,
		})
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
