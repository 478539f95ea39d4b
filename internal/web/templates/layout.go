// Package templates renders the search front-end.
//
// Markup is built with gomponents. Pages are templ components: Layout
// renders the document shell and places the page body, passed as templ
// children, inside it.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Title is the page heading.
const Title = "Motor de Búsqueda"

// LottieScript is the player used by the animation container.
const LottieScript = "https://cdnjs.cloudflare.com/ajax/libs/lottie-web/5.12.2/lottie_light.min.js"

// component adapts a gomponents node to templ.Component.
func component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// Layout renders the HTML document with the children from ctx inside <main>.
// The Lottie player is only loaded when withAnimation is set.
func Layout(title string, withAnimation bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)
		body := g.NodeFunc(func(w io.Writer) error {
			return children.Render(ctx, w)
		})

		return h.Doctype(
			h.HTML(
				h.Lang("es"),
				h.Head(
					h.Meta(h.Charset("utf-8")),
					h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
					h.TitleEl(g.Text(title)),
					h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
					g.If(withAnimation, h.Script(h.Src(LottieScript), h.Defer())),
					h.Script(h.Src("/static/app.js"), h.Defer()),
				),
				h.Body(
					h.Main(h.Class("layout"), body),
				),
			),
		).Render(w)
	})
}

// page renders body inside layout.
func page(layout templ.Component, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout.Render(templ.WithChildren(ctx, templ.Join(body...)), w)
	})
}

// alert renders a banner. kind is "warning" or "error".
func alert(kind string, children ...g.Node) g.Node {
	return h.Div(h.Class("alert alert-"+kind), h.Role("alert"), g.Group(children))
}
