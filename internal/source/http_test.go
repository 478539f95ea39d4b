package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/companysearch/internal/core"
)

const companiesCSV = "NIT,RAZON SOCIAL\n900123456,FABRICA SA\n800987654,COMERCIAL LTDA\n"

func TestHTTPSource_Load(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(companiesCSV))
	}))
	defer srv.Close()

	loader := core.NewCSVLoader(NewHTTPSource(srv.URL+"/pub?output=csv", time.Second), 0)
	ds, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff([]string{"NIT", "RAZON SOCIAL"}, ds.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if name, _ := ds.Records[1].Get("RAZON SOCIAL"); name != "COMERCIAL LTDA" {
		t.Errorf("second record name = %q, want COMERCIAL LTDA", name)
	}
	if accept == "" {
		t.Error("request should send an Accept header")
	}
}

func TestHTTPSource_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantCode: "SRC002"},
		{name: "not found", status: http.StatusNotFound, wantCode: "SRC004"},
		{name: "forbidden", status: http.StatusForbidden, wantCode: "SRC002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			loader := core.NewCSVLoader(NewHTTPSource(srv.URL, time.Second), 0)
			_, err := loader.Load(context.Background())

			var fe *core.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *core.FetchError", err)
			}
			if fe.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", fe.StatusCode, tt.status)
			}
			if got := core.MapError(err).Code; got != tt.wantCode {
				t.Errorf("MapError code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url, time.Second).Open(context.Background())

	var fe *core.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *core.FetchError", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", fe.StatusCode)
	}
}

func TestHTTPSource_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, 50*time.Millisecond).Open(context.Background())
	if !core.IsFetchError(err) {
		t.Fatalf("err = %v, want *core.FetchError", err)
	}
	if got := core.MapError(err).Code; got != "SRC003" {
		t.Errorf("MapError code = %q, want SRC003", got)
	}
}

func TestHTTPSource_StringMasksToken(t *testing.T) {
	src := NewHTTPSource("https://docs.google.com/spreadsheets/d/e/SECRET/pub?gid=1", time.Second)
	if got, want := src.String(), "https://docs.google.com/[MASKED]?[MASKED]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
