package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
)

// objectGetter is the part of *s3.Client used by S3Source.
type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the dataset from one object in S3-compatible storage.
type S3Source struct {
	client objectGetter
	Bucket string
	Key    string
}

// NewS3Source creates a source for an s3://bucket/key URL.
// A custom endpoint switches to path-style addressing for MinIO and
// similar stores. Without static credentials requests are anonymous.
func NewS3Source(cfg config.DatasetConfig) (*S3Source, error) {
	bucket, key, err := parseS3Path(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts := s3.Options{Region: cfg.S3Region}
	if cfg.S3AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "",
		)
	}
	if cfg.S3Endpoint != "" {
		endpoint := cfg.S3Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	return &S3Source{client: s3.New(opts), Bucket: bucket, Key: key}, nil
}

// Open fetches the object and returns its body.
// A missing object carries status 404 so it maps like an HTTP not found.
func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, &core.FetchError{Source: s.String(), StatusCode: s3StatusCode(err), Err: err}
	}
	return out.Body, nil
}

func (s *S3Source) String() string {
	return "s3://" + s.Bucket + "/" + s.Key
}

func s3StatusCode(err error) int {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return http.StatusNotFound
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return http.StatusNotFound
	}
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		return re.HTTPStatusCode()
	}
	return 0
}

// parseS3Path extracts bucket and key from an "s3://bucket/path/to/file" URI.
func parseS3Path(s3Path string) (bucket, key string, err error) {
	u, err := url.Parse(s3Path)
	if err != nil {
		return "", "", fmt.Errorf("parse S3 path %q: %w", s3Path, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("expected s3:// scheme, got %q in %q", u.Scheme, s3Path)
	}
	bucket = u.Host
	if bucket == "" {
		return "", "", fmt.Errorf("empty bucket in S3 path %q", s3Path)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("empty key in S3 path %q", s3Path)
	}
	return bucket, key, nil
}
