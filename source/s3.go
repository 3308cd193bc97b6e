package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds configuration for an S3Source.
type S3Config struct {
	// Endpoint is the S3 endpoint (e.g., "s3.amazonaws.com",
	// "minio.example.com:9000").
	Endpoint string

	// Bucket is the S3 bucket name.
	Bucket string

	// Prefix is the key prefix to filter objects (optional).
	Prefix string

	// UseSSL enables HTTPS connections to the endpoint.
	UseSSL bool

	// AccessKeyID and SecretAccessKey authenticate the client. When
	// both are empty, credentials come from the standard AWS
	// environment variables.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// IncludePatterns is a list of glob patterns to include, matched
	// against keys relative to Prefix. Default: **/*.pdf
	IncludePatterns []string

	// ExcludePatterns is a list of glob patterns to exclude.
	ExcludePatterns []string
}

// S3Source traverses an S3 bucket and yields its matching objects.
type S3Source struct {
	config S3Config
	client *minio.Client
}

// NewS3Source creates an S3 source.
func NewS3Source(config S3Config) (*S3Source, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("s3 source: Endpoint is required")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("s3 source: Bucket is required")
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.pdf", "**/*.PDF", "*.pdf", "*.PDF"}
	}
	if err := ValidatePatterns(config.IncludePatterns); err != nil {
		return nil, fmt.Errorf("s3 source: %w", err)
	}
	if err := ValidatePatterns(config.ExcludePatterns); err != nil {
		return nil, fmt.Errorf("s3 source: %w", err)
	}

	var creds *credentials.Credentials
	if config.AccessKeyID != "" || config.SecretAccessKey != "" {
		creds = credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, config.SessionToken)
	} else {
		creds = credentials.NewEnvAWS()
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 source: creating client for %s: %w", config.Endpoint, err)
	}

	return &S3Source{config: config, client: client}, nil
}

// Type returns "s3" as the source type.
func (s *S3Source) Type() string {
	return "s3"
}

// Traverse lists the bucket and yields an Item for every matching
// object.
func (s *S3Source) Traverse(ctx context.Context) (<-chan Item, <-chan error) {
	items := make(chan Item)
	errs := make(chan error, 1)

	go func() {
		defer close(items)
		defer close(errs)

		opts := minio.ListObjectsOptions{
			Prefix:    s.config.Prefix,
			Recursive: true,
		}

		for object := range s.client.ListObjects(ctx, s.config.Bucket, opts) {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			default:
			}

			if object.Err != nil {
				errs <- fmt.Errorf("listing bucket %s: %w", s.config.Bucket, object.Err)
				return
			}

			// Keys ending with / are directory placeholders
			if strings.HasSuffix(object.Key, "/") {
				continue
			}

			relPath := object.Key
			if s.config.Prefix != "" {
				relPath = strings.TrimPrefix(object.Key, s.config.Prefix)
				relPath = strings.TrimPrefix(relPath, "/")
			}

			if matchesAnyPattern(relPath, s.config.ExcludePatterns) {
				continue
			}
			if !matchesAnyPattern(relPath, s.config.IncludePatterns) {
				continue
			}

			obj, err := s.client.GetObject(ctx, s.config.Bucket, object.Key, minio.GetObjectOptions{})
			if err != nil {
				errs <- fmt.Errorf("getting object %s: %w", object.Key, err)
				return
			}

			content, err := io.ReadAll(obj)
			obj.Close()
			if err != nil {
				errs <- fmt.Errorf("reading object %s: %w", object.Key, err)
				return
			}

			select {
			case items <- Item{
				Path:      relPath,
				SourceURL: s.objectURL(object.Key),
				Content:   content,
				Metadata: map[string]any{
					"source_type":   "s3",
					"bucket":        s.config.Bucket,
					"key":           object.Key,
					"size":          object.Size,
					"last_modified": object.LastModified,
					"etag":          object.ETag,
				},
			}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return items, errs
}

// objectURL constructs the absolute URL for an object key.
func (s *S3Source) objectURL(key string) string {
	scheme := "http"
	if s.config.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.config.Endpoint, s.config.Bucket, key)
}
