package rbtranslations_test

import (
	"bytes"
	"context"
	"io"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mnlipp/rbtranslations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3Client serves objects from memory, paginating list results to
// exercise the continuation-token loop.
type fakeS3Client struct {
	objects  map[string][]byte
	pageSize int
}

func (f *fakeS3Client) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3Client) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	prefix := aws.ToString(params.Prefix)
	after := aws.ToString(params.ContinuationToken)

	keys := slices.Sorted(maps.Keys(f.objects))
	var matched []string
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) && key > after {
			matched = append(matched, key)
		}
	}

	pageSize := f.pageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for i, key := range matched {
		if i == pageSize {
			out.IsTruncated = aws.Bool(true)
			out.NextContinuationToken = aws.String(matched[i-1])
			break
		}
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	return out, nil
}

func newFakeS3Source(t *testing.T, client *fakeS3Client, prefix string) *rbtranslations.S3Source {
	t.Helper()
	source, err := rbtranslations.NewS3Source(context.Background(),
		rbtranslations.S3Config{Bucket: "catalogs", Prefix: prefix},
		rbtranslations.WithS3Client(client))
	require.NoError(t, err)
	return source
}

func TestS3SourceLocales(t *testing.T) {
	client := &fakeS3Client{
		objects: map[string][]byte{
			"l10n/messages.properties":    []byte("greeting = Hello\n"),
			"l10n/messages_de.properties": []byte("greeting = Hallo\n"),
			"l10n/messages_fr.yaml":       []byte("greeting: Bonjour\n"),
			"l10n/errors.properties":      []byte("io = I/O failure\n"),
			"l10n/messages.txt":           []byte("not a catalog"),
		},
		pageSize: 2,
	}
	source := newFakeS3Source(t, client, "l10n")

	locales, err := source.Locales(context.Background(), "messages")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "de", "fr"}, locales)
}

func TestS3SourceLoad(t *testing.T) {
	client := &fakeS3Client{
		objects: map[string][]byte{
			"l10n/messages.properties":    []byte("greeting = Hello\n"),
			"l10n/messages_de.properties": []byte("greeting = Hallo\n"),
			"l10n/messages_fr.yaml":       []byte("greeting: Bonjour\n"),
		},
	}
	source := newFakeS3Source(t, client, "l10n")

	catalog, err := source.Load(context.Background(), "messages", "de")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", catalog["greeting"])

	// Formats beyond properties resolve through their own parsers.
	catalog, err = source.Load(context.Background(), "messages", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", catalog["greeting"])

	_, err = source.Load(context.Background(), "messages", "it")
	assert.ErrorIs(t, err, rbtranslations.ErrCatalogNotFound)
}

func TestS3SourceBackedTranslator(t *testing.T) {
	client := &fakeS3Client{
		objects: map[string][]byte{
			"messages.properties":       []byte("greeting = Hello\nfarewell = Goodbye\n"),
			"messages_de.properties":    []byte("greeting = Hallo\n"),
			"messages_de_DE.properties": []byte("greeting = Hallo aus Deutschland\n"),
		},
	}
	source := newFakeS3Source(t, client, "")

	translator, err := rbtranslations.NewTranslator(context.Background(), source, "messages")
	require.NoError(t, err)

	assert.Equal(t, "Hallo aus Deutschland", translator.T("de_DE", "greeting"))
	assert.Equal(t, "Goodbye", translator.T("de_DE", "farewell"))
}

func TestNewS3SourceValidation(t *testing.T) {
	_, err := rbtranslations.NewS3Source(context.Background(), rbtranslations.S3Config{})
	assert.ErrorIs(t, err, rbtranslations.ErrInvalidS3Config)

	// Without an injected client a region is required.
	_, err = rbtranslations.NewS3Source(context.Background(),
		rbtranslations.S3Config{Bucket: "catalogs"})
	assert.ErrorIs(t, err, rbtranslations.ErrInvalidS3Config)
}
