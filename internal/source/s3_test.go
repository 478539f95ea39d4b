package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
)

type fakeGetter struct {
	body   string
	err    error
	bucket string
	key    string
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestParseS3Path(t *testing.T) {
	tests := []struct {
		path       string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{path: "s3://registry/companies.csv", wantBucket: "registry", wantKey: "companies.csv"},
		{path: "s3://registry/exports/2024/companies.csv", wantBucket: "registry", wantKey: "exports/2024/companies.csv"},
		{path: "s3://registry/", wantErr: true},
		{path: "s3:///companies.csv", wantErr: true},
		{path: "https://registry/companies.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			bucket, key, err := parseS3Path(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseS3Path(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseS3Path(%q) error = %v", tt.path, err)
			}
			if bucket != tt.wantBucket || key != tt.wantKey {
				t.Errorf("got (%q, %q), want (%q, %q)", bucket, key, tt.wantBucket, tt.wantKey)
			}
		})
	}
}

func TestS3Source_Load(t *testing.T) {
	getter := &fakeGetter{body: companiesCSV}
	src := &S3Source{client: getter, Bucket: "registry", Key: "companies.csv"}

	ds, err := core.NewCSVLoader(src, 0).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ds.Len())
	}
	if getter.bucket != "registry" || getter.key != "companies.csv" {
		t.Errorf("GetObject called with %q/%q", getter.bucket, getter.key)
	}
}

func TestS3Source_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "missing key", err: &types.NoSuchKey{}, wantStatus: 404, wantCode: "SRC004"},
		{name: "missing bucket", err: &types.NoSuchBucket{}, wantStatus: 404, wantCode: "SRC004"},
		{name: "transport", err: errors.New("dial tcp: connection refused"), wantStatus: 0, wantCode: "SRC001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &S3Source{client: &fakeGetter{err: tt.err}, Bucket: "registry", Key: "companies.csv"}

			_, err := core.NewCSVLoader(src, 0).Load(context.Background())

			var fe *core.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *core.FetchError", err)
			}
			if fe.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", fe.StatusCode, tt.wantStatus)
			}
			if got := core.MapError(err).Code; got != tt.wantCode {
				t.Errorf("MapError code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestNewS3Source(t *testing.T) {
	src, err := NewS3Source(config.DatasetConfig{
		URL:               "s3://registry/companies.csv",
		S3Region:          "eu-central-1",
		S3Endpoint:        "minio.local:9000",
		S3AccessKeyID:     "key",
		S3SecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3Source() error = %v", err)
	}
	if src.String() != "s3://registry/companies.csv" {
		t.Errorf("String() = %q", src.String())
	}

	if _, err := NewS3Source(config.DatasetConfig{URL: "s3://registry"}); err == nil {
		t.Error("NewS3Source() expected error without a key")
	}
}
