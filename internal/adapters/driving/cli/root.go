// Package cli provides the billrag command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/adapters/driven/extractor/docconv"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/adapters/driven/index/milvus"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/adapters/driven/source/filesystem"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/adapters/driven/source/s3"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/chunker"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/config"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driving"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/services"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/logger"

	ollamaembed "github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/adapters/driven/llm/ollama"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by bootstrap and consumed by the subcommands.
var (
	cfg           *config.Config
	indexStore    driven.IndexStore
	llmService    driven.LLMService
	ingestService driving.IngestOrchestrator
	retrievalTool driving.RetrievalTool
	agentService  driving.AgentService
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "billrag",
	Short: "Ask questions about your utility bill PDFs",
	Long: `billrag indexes utility bill PDFs from object storage into a vector
database and answers natural-language questions about them with citations
back to the exact bill and chunk the answer came from.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context, so an
// interrupt stops in-flight ingestion or chat turns cleanly.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// bootstrap loads configuration and wires every service. Subcommands that
// need live backends call it in their RunE; commands like version do not.
func bootstrap(ctx context.Context) error {
	if cfg != nil {
		return nil
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	source, err := buildSource(ctx, loaded)
	if err != nil {
		return err
	}

	store, err := milvus.New(ctx, milvus.Config{
		Address:    loaded.MilvusAddress,
		Username:   loaded.MilvusUsername,
		Password:   loaded.MilvusPassword,
		Database:   loaded.MilvusDatabase,
		Collection: loaded.Collection,
		Dimension:  loaded.EmbedDim,
		Timeout:    loaded.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("connecting to vector store: %w", err)
	}

	embedder := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    loaded.OllamaURL,
		Model:      loaded.EmbedModel,
		Dimensions: loaded.EmbedDim,
		Timeout:    loaded.RequestTimeout,
	})
	if err := embedder.Ping(ctx); err != nil {
		return fmt.Errorf("embedding service unavailable: %w", err)
	}

	llm := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: loaded.OllamaURL,
		Model:   loaded.LLMModel,
	})

	ch, err := chunker.New(loaded.ChunkSize, loaded.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	retriever := services.NewRetriever(embedder, store, loaded.TopK, loaded.MinScore)

	cfg = loaded
	indexStore = store
	llmService = llm
	ingestService = services.NewIngestService(source, docconv.New(), embedder, store, ch, loaded.IngestConcurrency)
	retrievalTool = retriever
	agentService = services.NewAgent(llm, retriever, loaded.MaxToolRounds)
	return nil
}

// buildSource selects the content source implementation from configuration.
func buildSource(ctx context.Context, c *config.Config) (driven.ContentSource, error) {
	switch c.SourceKind {
	case config.SourceFilesystem:
		source, err := filesystem.New(c.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("opening filesystem source: %w", err)
		}
		return source, nil
	default:
		source, err := s3.New(ctx, s3.Config{
			Endpoint:  c.S3Endpoint,
			Region:    c.AwsRegion,
			AccessKey: c.AwsAccessKey,
			SecretKey: c.AwsSecretKey,
			Bucket:    c.Bucket,
			Prefix:    c.SourcePrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("opening s3 source: %w", err)
		}
		return source, nil
	}
}
