// Package s3 provides a content source adapter for S3-compatible object storage.
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Config holds configuration for the S3 content source.
type Config struct {
	// Endpoint overrides the AWS endpoint, e.g. for MinIO. Empty uses AWS.
	Endpoint string

	// Region is the bucket region.
	Region string

	// AccessKey and SecretKey are static credentials. When both are empty
	// the default AWS credential chain is used.
	AccessKey string
	SecretKey string

	// Bucket is the bucket holding the bill PDFs (required).
	Bucket string

	// Prefix optionally restricts listing to a key prefix.
	Prefix string
}

// Source lists and fetches PDF documents from an object storage bucket.
// The object ETag serves as the content version: S3 recomputes it from the
// object bytes, so it changes exactly when the content changes.
type Source struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an S3 content source.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", domain.ErrConfig)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO and most S3 clones require path-style addressing.
			o.UsePathStyle = true
		}
	})

	return &Source{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// List returns every PDF in the bucket with its ETag as content version.
func (s *Source) List(ctx context.Context) ([]domain.DocumentRef, error) {
	var refs []domain.DocumentRef

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list bucket %s: %w", domain.ErrServiceUnavailable, s.bucket, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(strings.ToLower(key), ".pdf") {
				continue
			}
			refs = append(refs, domain.DocumentRef{
				ID:             key,
				ContentVersion: strings.Trim(aws.ToString(obj.ETag), `"`),
			})
		}
	}

	return refs, nil
}

// Get fetches the raw bytes of an object.
func (s *Source) Get(ctx context.Context, documentID string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(documentID),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", documentID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", documentID, err)
	}

	return body, nil
}
