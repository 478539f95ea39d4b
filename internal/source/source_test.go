package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://example.com/companies.csv"},
		{name: "s3", url: "s3://registry/companies.csv"},
		{name: "file url", url: "file:///srv/data/companies.csv"},
		{name: "bare path", url: "testdata/companies.csv"},
		{name: "unsupported", url: "ftp://example.com/companies.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, closeFn, err := New(context.Background(), config.DatasetConfig{
				URL:          tt.url,
				FetchTimeout: time.Second,
				S3Region:     "us-east-1",
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer closeFn()
			if loader == nil {
				t.Fatal("New() returned nil loader")
			}
		})
	}
}

func TestNew_LoadsLocalFile(t *testing.T) {
	loader, closeFn, err := New(context.Background(), config.DatasetConfig{URL: "testdata/companies.csv"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closeFn()

	ds, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ds.Len())
	}
}

func TestWithTimeout(t *testing.T) {
	slow := core.LoaderFunc(func(ctx context.Context) (*core.Dataset, error) {
		<-ctx.Done()
		return nil, &core.FetchError{Source: "slow", Err: ctx.Err()}
	})

	_, err := WithTimeout(slow, 20*time.Millisecond).Load(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}

	if got := WithTimeout(slow, 0); got == nil {
		t.Error("WithTimeout(l, 0) should return l")
	}
}
