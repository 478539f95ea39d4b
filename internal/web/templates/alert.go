package templates

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ErrorAlert renders a standalone error banner with the support code.
// It is the error response of the results fragment.
func ErrorAlert(message, action, code string) templ.Component {
	return component(errorAlert(message, action, code))
}

// ErrorPage renders a full page around an error banner.
func ErrorPage(message, action, code string) templ.Component {
	return page(Layout(Title, false),
		component(h.H1(g.Text(Title))),
		ErrorAlert(message, action, code),
		component(h.P(h.A(h.Href("/"), g.Text("Volver a la búsqueda")))),
	)
}

func errorAlert(message, action, code string) g.Node {
	return alert("error",
		h.Strong(g.Text(message)),
		g.If(action != "", h.Span(g.Text(" "+action))),
		g.If(code != "", h.Small(h.Class("code"), g.Text(" (Código: "+code+")"))),
	)
}
