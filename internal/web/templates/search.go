package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/JonMunkholm/companysearch/internal/core"
)

// User-facing strings of the search page.
const (
	PromptLabel   = "Ingrese el nombre de la empresa a buscar:"
	SubmitLabel   = "Buscar"
	NoQueryText   = "Por favor, ingrese un término de búsqueda."
	NoMatchesText = "No se encontraron empresas con el nombre ingresado."
	AnimationPath = "/api/animation"
	ResultsPath   = "/results"
	searchInputID = "q"
	outcomeID     = "outcome"
)

// SearchPageData is everything the search page shows.
type SearchPageData struct {
	Query     string            // Raw text to keep in the input
	Submitted bool              // The form was sent, so a result or error follows
	Result    core.Result       // Outcome when Submitted and Error is nil
	Error     *core.UserMessage // Load failure to report instead of a result
	Animation bool              // Render the animation container
}

// SearchPage renders the form and, once submitted, its outcome.
func SearchPage(data SearchPageData) templ.Component {
	var results templ.Component = templ.NopComponent
	if data.Submitted {
		results = Results(data)
	}

	return page(Layout(Title, data.Animation),
		component(g.Group{
			h.H1(g.Text(Title)),
			g.If(data.Animation, h.Div(
				h.ID("animation"),
				h.Class("animation"),
				h.DataAttr("src", AnimationPath),
				h.Aria("hidden", "true"),
			)),
			searchForm(data.Query),
		}),
		container(outcomeID, results),
	)
}

// Results renders the outcome of a submitted search: the result table, the
// warning for a blank query, the zero-match banner or the load failure. It
// is also served alone as the page's results fragment.
func Results(data SearchPageData) templ.Component {
	return component(outcome(data))
}

// container renders child inside <div id="id">.
func container(id string, child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+templ.EscapeString(id)+`">`); err != nil {
			return err
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

func searchForm(query string) g.Node {
	return h.Form(
		h.Method("get"),
		h.Action("/"),
		h.Class("search"),
		h.DataAttr("results", ResultsPath),
		h.Label(h.For(searchInputID), g.Text(PromptLabel)),
		h.Input(
			h.Type("text"),
			h.ID(searchInputID),
			h.Name("q"),
			h.Value(query),
			h.AutoComplete("off"),
			h.AutoFocus(),
		),
		h.Button(h.Type("submit"), g.Text(SubmitLabel)),
	)
}

func outcome(data SearchPageData) g.Node {
	if data.Error != nil {
		return errorAlert(data.Error.Message, data.Error.Action, data.Error.Code)
	}
	switch data.Result.Status {
	case core.StatusNoQuery:
		return alert("warning", g.Text(NoQueryText))
	case core.StatusZeroMatches:
		return alert("error", g.Text(NoMatchesText))
	}
	return resultTable(data.Result)
}

func resultTable(res core.Result) g.Node {
	return h.Section(
		h.Class("results"),
		h.P(h.Class("muted"), g.Text(matchSummary(res.Count()))),
		h.Div(
			h.Class("table-wrap"),
			h.Table(
				h.THead(h.Tr(g.Map(res.Columns, func(col string) g.Node {
					return h.Th(h.Scope("col"), g.Text(col))
				}))),
				h.TBody(g.Map(res.Records, func(rec core.Record) g.Node {
					return h.Tr(g.Map(rec.Values(), func(v string) g.Node {
						return h.Td(g.Text(v))
					}))
				})),
			),
		),
	)
}

func matchSummary(n int) string {
	if n == 1 {
		return "1 empresa encontrada"
	}
	return strconv.Itoa(n) + " empresas encontradas"
}
