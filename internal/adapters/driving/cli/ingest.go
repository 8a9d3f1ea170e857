package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index bill PDFs from the content source",
	Long: `Walks the configured content source, extracts text from every PDF,
and writes embedded chunks to the vector store.

Documents whose content has not changed since the last run are skipped, so
ingest is safe to run repeatedly.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := bootstrap(ctx); err != nil {
		return err
	}
	defer indexStore.Close(ctx) //nolint:errcheck

	cmd.Println("Ingesting documents...")

	summary, err := ingestService.Run(ctx)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Done: %d indexed, %d already up to date, %d failed.\n",
		summary.Processed, summary.Skipped, len(summary.Failures))

	for _, failure := range summary.Failures {
		cmd.PrintErrf("  %s: %s\n", failure.DocumentID, failure.Reason)
	}
	if len(summary.Failures) > 0 {
		return fmt.Errorf("%d document(s) could not be indexed", len(summary.Failures))
	}
	return nil
}
