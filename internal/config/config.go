// Package config loads environment-provided configuration for the billrag CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
)

// Source kinds selectable via BILLRAG_SOURCE.
const (
	SourceS3         = "s3"
	SourceFilesystem = "filesystem"
)

// Config holds every setting the CLI reads from the environment.
type Config struct {
	// Content source
	SourceKind   string // "s3" or "filesystem"
	SourceDir    string // filesystem source root
	S3Endpoint   string // custom endpoint for MinIO; empty for AWS
	AwsRegion    string
	AwsAccessKey string
	AwsSecretKey string
	Bucket       string
	SourcePrefix string // optional object key prefix

	// Vector store
	MilvusAddress  string
	MilvusUsername string
	MilvusPassword string
	MilvusDatabase string
	Collection     string

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Models
	OllamaURL  string
	EmbedModel string
	EmbedDim   int
	LLMModel   string

	// Retrieval and agent
	TopK          int
	MinScore      float64
	MaxToolRounds int

	// Ingestion
	IngestConcurrency int
	RequestTimeout    time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SourceKind:   getEnv("BILLRAG_SOURCE", SourceS3),
		SourceDir:    getEnv("SOURCE_DIR", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-1"),
		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		Bucket:       getEnv("BUCKET_NAME", ""),
		SourcePrefix: getEnv("SOURCE_PREFIX", ""),

		MilvusAddress:  getEnv("MILVUS_ADDRESS", "localhost:19530"),
		MilvusUsername: getEnv("MILVUS_USERNAME", ""),
		MilvusPassword: getEnv("MILVUS_PASSWORD", ""),
		MilvusDatabase: getEnv("MILVUS_DATABASE", "default"),
		Collection:     getEnv("MILVUS_COLLECTION", "utility_bills"),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 200),

		OllamaURL:  getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel: getEnv("EMBED_MODEL", "nomic-embed-text"),
		EmbedDim:   getEnvInt("EMBED_DIM", 768),
		LLMModel:   getEnv("LLM_MODEL", "llama3.2"),

		TopK:          getEnvInt("TOP_K", 5),
		MinScore:      getEnvFloat("MIN_SCORE", 0.3),
		MaxToolRounds: getEnvInt("MAX_TOOL_ROUNDS", 3),

		IngestConcurrency: getEnvInt("INGEST_CONCURRENCY", 4),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	switch c.SourceKind {
	case SourceS3:
		if c.Bucket == "" {
			return fmt.Errorf("%w: BUCKET_NAME is required for the s3 source", domain.ErrConfig)
		}
	case SourceFilesystem:
		if c.SourceDir == "" {
			return fmt.Errorf("%w: SOURCE_DIR is required for the filesystem source", domain.ErrConfig)
		}
	default:
		return fmt.Errorf("%w: unknown BILLRAG_SOURCE %q", domain.ErrConfig, c.SourceKind)
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: CHUNK_SIZE must be positive", domain.ErrConfig)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: CHUNK_OVERLAP must be in [0, CHUNK_SIZE)", domain.ErrConfig)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: TOP_K must be positive", domain.ErrConfig)
	}
	if c.MaxToolRounds <= 0 {
		return fmt.Errorf("%w: MAX_TOOL_ROUNDS must be positive", domain.ErrConfig)
	}
	if c.IngestConcurrency <= 0 {
		return fmt.Errorf("%w: INGEST_CONCURRENCY must be positive", domain.ErrConfig)
	}
	return nil
}

// lookupEnv is swappable in tests.
var lookupEnv = os.LookupEnv

// getEnv reads an environment variable with a default fallback.
func getEnv(key, fallback string) string {
	if value, exists := lookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v, exists := lookupEnv(key)
	if !exists {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v, exists := lookupEnv(key)
	if !exists {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, exists := lookupEnv(key)
	if !exists {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
