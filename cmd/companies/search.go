package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/companysearch/internal/core"
)

const (
	noQueryText   = "Por favor, ingrese un término de búsqueda."
	noMatchesText = "No se encontraron empresas con el nombre ingresado."
)

var formats = []string{"table", "json", "csv"}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Run one search and print the matching companies",
		Example: `  companies search fabrica
  companies search "alimentos del" --format csv > out.csv`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormat(format) {
				return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(formats, ", "))
			}

			svc, closeFn, err := setup(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: "+strings.Join(formats, ", "))
	return cmd
}

func validFormat(f string) bool {
	for _, v := range formats {
		if f == v {
			return true
		}
	}
	return false
}

// writeResult prints matches to out in the given format. Status banners go
// to errOut so that out stays parseable.
func writeResult(out, errOut io.Writer, res core.Result, format string) error {
	switch res.Status {
	case core.StatusNoQuery:
		fmt.Fprintln(errOut, noQueryText)
	case core.StatusZeroMatches:
		fmt.Fprintln(errOut, noMatchesText)
	}

	switch format {
	case "json":
		return writeJSON(out, res)
	case "csv":
		if res.Status != core.StatusMatches {
			return nil
		}
		return writeCSV(out, res)
	default:
		if res.Status != core.StatusMatches {
			return nil
		}
		return writeTable(out, errOut, res)
	}
}

// jsonResult mirrors the body of GET /api/search.
type jsonResult struct {
	SearchID string        `json:"search_id"`
	Status   core.Status   `json:"status"`
	Query    string        `json:"query"`
	Columns  []string      `json:"columns"`
	Count    int           `json:"count"`
	Records  []core.Record `json:"records"`
}

func writeJSON(w io.Writer, res core.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		SearchID: res.ID,
		Status:   res.Status,
		Query:    res.Query,
		Columns:  res.Columns,
		Count:    res.Count(),
		Records:  res.Records,
	})
}

func writeCSV(w io.Writer, res core.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns); err != nil {
		return err
	}
	for _, rec := range res.Records {
		if err := cw.Write(rec.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func writeTable(out, errOut io.Writer, res core.Result) error {
	rows := make([][]string, len(res.Records))
	for i, rec := range res.Records {
		rows[i] = rec.Values()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(res.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(out, t.Render()); err != nil {
		return err
	}
	n := res.Count()
	if n == 1 {
		fmt.Fprintln(errOut, "1 empresa encontrada")
	} else {
		fmt.Fprintf(errOut, "%d empresas encontradas\n", n)
	}
	return nil
}
