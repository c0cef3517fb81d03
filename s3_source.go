package rbtranslations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Client defines the S3 operations used by S3Source.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config contains configuration for the S3 catalog source.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // Optional: for S3-compatible services
	Prefix         string // Key prefix the catalog files live under
	ForcePathStyle bool   // For S3-compatible services like MinIO
}

// S3Option defines a function that configures S3Source.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient *http.Client
	s3Client   S3Client
	parsers    []Parser
}

// WithS3Client sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithS3HTTPClient sets a custom HTTP client for S3 requests.
func WithS3HTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3Parsers restricts the catalog formats the source recognizes.
func WithS3Parsers(parsers ...Parser) S3Option {
	return func(o *s3Options) {
		o.parsers = parsers
	}
}

// S3Source loads catalogs from an S3 or S3-compatible bucket. Catalog
// objects follow the same naming scheme as DirSource, below the configured
// key prefix. It is safe for concurrent use.
type S3Source struct {
	client  S3Client
	bucket  string
	prefix  string
	parsers []Parser
}

// NewS3Source creates a catalog source reading from an S3 bucket.
func NewS3Source(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Source, error) {
	if cfg.Bucket == "" {
		return nil, ErrInvalidS3Config
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		if cfg.Region == "" {
			return nil, ErrInvalidS3Config
		}

		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Join(ErrInvalidS3Config, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	parsers := options.parsers
	if len(parsers) == 0 {
		parsers = defaultParsers()
	}

	return &S3Source{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		parsers: parsers,
	}, nil
}

func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Locales implements the Source interface by listing objects below the
// prefix that belong to the basename.
func (s *S3Source) Locales(ctx context.Context, basename string) ([]string, error) {
	seen := make(map[string]bool)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.key(basename)),
	}

	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, errors.Join(ErrFailedToListBucket, err)
		}

		for _, obj := range out.Contents {
			name := path.Base(aws.ToString(obj.Key))
			if locale, ok := localeFromFileName(name, basename, s.parsers); ok {
				seen[locale] = true
			}
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	locales := make([]string, 0, len(seen))
	for locale := range seen {
		locales = append(locales, locale)
	}
	slices.Sort(locales)
	return locales, nil
}

// Load implements the Source interface. Formats are probed in parser order;
// a missing object is expected during fallback resolution and only yields
// ErrCatalogNotFound after all formats were tried.
func (s *S3Source) Load(ctx context.Context, basename, locale string) (map[string]string, error) {
	stem := basename
	if locale != "" {
		stem = basename + "_" + locale
	}

	for _, ext := range []string{"properties", "json", "yaml", "yml", "toml"} {
		parser := parserForExtension(s.parsers, ext)
		if parser == nil {
			continue
		}

		key := s.key(stem + "." + ext)
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			var noSuchKey *types.NoSuchKey
			if errors.As(err, &noSuchKey) {
				continue
			}
			return nil, errors.Join(ErrFailedToFetchObject, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, err))
		}

		content, err := io.ReadAll(out.Body)
		_ = out.Body.Close()
		if err != nil {
			return nil, errors.Join(ErrFailedToFetchObject, err)
		}

		catalog, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("catalog s3://%s/%s: %w", s.bucket, key, err)
		}
		return catalog, nil
	}

	return nil, ErrCatalogNotFound
}
