package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/companysearch/internal/core"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.csv")
	csv := "NIT,RAZON SOCIAL\n900123456,FABRICA SA\n800987654,COMERCIAL LTDA\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchCommand_JSON(t *testing.T) {
	path := writeDataset(t)

	stdout, _, err := runCLI(t, "search", "fab", "--source", path, "--format", "json")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}

	var got struct {
		Status  core.Status         `json:"status"`
		Count   int                 `json:"count"`
		Records []map[string]string `json:"records"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got.Status != core.StatusMatches || got.Count != 1 {
		t.Errorf("got %q with %d records, want one match", got.Status, got.Count)
	}
	if got.Records[0]["RAZON SOCIAL"] != "FABRICA SA" {
		t.Errorf("record = %v", got.Records[0])
	}
}

func TestSearchCommand_JoinsArgs(t *testing.T) {
	path := writeDataset(t)

	stdout, _, err := runCLI(t, "search", "comercial", "ltda", "--source", path, "--format", "csv")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	want := "NIT,RAZON SOCIAL\n800987654,COMERCIAL LTDA\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestSearchCommand_Statuses(t *testing.T) {
	path := writeDataset(t)

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{name: "no query", args: []string{"search", "--source", path}, wantStderr: noQueryText},
		{name: "zero matches", args: []string{"search", "xyz", "--source", path}, wantStderr: noMatchesText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("statuses are not errors, got %v", err)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestSearchCommand_LoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	_, _, err := runCLI(t, "search", "fab", "--source", missing)
	if !core.IsFetchError(err) {
		t.Fatalf("err = %v, want *core.FetchError", err)
	}
}

func TestSearchCommand_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "search", "fab", "--source", writeDataset(t), "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("err = %v, want unknown format", err)
	}
}

func TestWriteTable(t *testing.T) {
	cols := []string{"NIT", "RAZON SOCIAL"}
	res := core.Result{
		Status:  core.StatusMatches,
		Columns: cols,
		Records: []core.Record{core.NewRecord(cols, []string{"900123456", "FABRICA SA"})},
	}

	var out, errOut bytes.Buffer
	if err := writeResult(&out, &errOut, res, "table"); err != nil {
		t.Fatalf("writeResult() error = %v", err)
	}
	for _, want := range []string{"RAZON SOCIAL", "FABRICA SA", "900123456"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table missing %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errOut.String(), "1 empresa encontrada") {
		t.Errorf("stderr = %q, want match summary", errOut.String())
	}
}
