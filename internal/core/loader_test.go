package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeSource struct {
	body    string
	openErr error
	readErr error
	opens   int
}

func (f *fakeSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f.opens++
	if f.openErr != nil {
		return nil, f.openErr
	}
	var r io.Reader = strings.NewReader(f.body)
	if f.readErr != nil {
		r = io.MultiReader(r, &errReader{err: f.readErr})
	}
	return io.NopCloser(r), nil
}

func (f *fakeSource) String() string { return "fake" }

type errReader struct{ err error }

func (e *errReader) Read([]byte) (int, error) { return 0, e.err }

func TestCSVLoader_Load(t *testing.T) {
	src := &fakeSource{body: "RAZON SOCIAL,NIT\nFABRICA SA,1\nCOMERCIAL LTDA,2\n"}
	loader := NewCSVLoader(src, 0)

	ds, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ds.Len())
	}

	// Every call re-reads the source.
	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if src.opens != 2 {
		t.Errorf("opens = %d, want 2", src.opens)
	}
}

func TestCSVLoader_OpenFailureIsFetchError(t *testing.T) {
	src := &fakeSource{openErr: errors.New("dial tcp: connection refused")}

	_, err := NewCSVLoader(src, 0).Load(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.Source != "fake" {
		t.Errorf("Source = %q, want %q", fe.Source, "fake")
	}
	if src.opens != 1 {
		t.Errorf("opens = %d, want a single attempt", src.opens)
	}
}

func TestCSVLoader_FetchErrorPassedThrough(t *testing.T) {
	want := &FetchError{Source: "http://example.test/data.csv", StatusCode: 500}
	src := &fakeSource{openErr: want}

	_, err := NewCSVLoader(src, 0).Load(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe != want {
		t.Fatalf("err = %v, want the source's FetchError unchanged", err)
	}
}

func TestCSVLoader_BodyReadFailureIsFetchError(t *testing.T) {
	src := &fakeSource{
		body:    "RAZON SOCIAL\nFABRICA SA\n",
		readErr: errors.New("connection reset by peer"),
	}

	_, err := NewCSVLoader(src, 0).Load(context.Background())
	if !IsFetchError(err) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if IsParseError(err) {
		t.Error("truncated body must not be reported as a parse failure")
	}
}

func TestCSVLoader_MalformedIsParseError(t *testing.T) {
	src := &fakeSource{body: "A\n1,2\n"}

	_, err := NewCSVLoader(src, 0).Load(context.Background())
	if !IsParseError(err) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestCSVLoader_UnterminatedQuoteIsParseError(t *testing.T) {
	src := &fakeSource{body: "NIT,RAZON SOCIAL\n1,\"FABRICA SA\n2,COMERCIAL LTDA\n"}

	ds, err := NewCSVLoader(src, 0).Load(context.Background())
	if !IsParseError(err) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("err = %v, want ErrUnterminatedQuote", err)
	}
	if ds != nil {
		t.Errorf("dataset = %v, want nil on parse failure", ds)
	}
}

func TestCSVLoader_MaxBytes(t *testing.T) {
	src := &fakeSource{body: "RAZON SOCIAL\n" + strings.Repeat("FABRICA SA\n", 100)}

	_, err := NewCSVLoader(src, 64).Load(context.Background())
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("err = %v, want ErrPayloadTooLarge", err)
	}
	if !IsParseError(err) {
		t.Errorf("err = %v, want *ParseError", err)
	}
}
