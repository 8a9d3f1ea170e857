// Command billrag indexes utility bill PDFs into a vector database and
// answers questions about them with citations.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/adapters/driving/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
