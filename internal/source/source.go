// Package source opens log sources for sequential forward reading.
// Plain files, gzip-compressed files and s3:// objects are supported.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
)

// s3Scheme prefixes object-store URIs of the form s3://bucket/key.
const s3Scheme = "s3://"

// Opener resolves a path or URI into a line-oriented byte stream.
// The S3 client is created lazily on first use and reused afterwards.
type Opener struct {
	mu       sync.Mutex
	s3Client *s3.Client
}

var _ contract.SourceOpener = &Opener{} // Compile-time check

// NewOpener returns a ready-to-use Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the log source at path. Paths ending in .gz are decompressed
// transparently; s3:// URIs are fetched from the object store. The caller
// owns the returned ReadCloser.
func (o *Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, s3Scheme) {
		return o.openS3(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		return wrapGzip(f)
	}
	return f, nil
}

// openS3 fetches an object body from S3 and streams it.
func (o *Opener) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := splitS3URI(uri)
	if err != nil {
		return nil, err
	}

	client, err := o.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", bucket, key, err)
	}

	if strings.HasSuffix(key, ".gz") {
		return wrapGzip(out.Body)
	}
	return out.Body, nil
}

// client returns the shared S3 client, creating it from the ambient AWS
// configuration on first use.
func (o *Opener) client(ctx context.Context) (*s3.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.s3Client != nil {
		return o.s3Client, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	o.s3Client = s3.NewFromConfig(cfg)
	return o.s3Client, nil
}

// splitS3URI splits s3://bucket/key into its bucket and key parts.
func splitS3URI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}

// gzipReadCloser closes both the gzip layer and the underlying stream.
type gzipReadCloser struct {
	*gzip.Reader
	underlying io.Closer
}

func (g *gzipReadCloser) Close() error {
	zErr := g.Reader.Close()
	if err := g.underlying.Close(); err != nil {
		return err
	}
	return zErr
}

// wrapGzip layers a gzip reader over rc, closing rc on header failure.
func wrapGzip(rc io.ReadCloser) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(rc)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	return &gzipReadCloser{Reader: zr, underlying: rc}, nil
}
