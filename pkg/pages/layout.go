package pages

import (
	"github.com/samber/lo"

	"github.com/syzygy-tables/tablesinfo/pkg/markup"
)

// TitleSuffix is appended to every page title.
const TitleSuffix = " – Syzygy endgame tablebases"

const (
	sourceRepository = "https://github.com/niklasf/syzygy-tables.info"
	stylesheetAsset  = "css/style.min.css"
)

// AssetResolver turns a path relative to the static root into a versioned
// URL.
type AssetResolver interface {
	URL(path string) (string, error)
}

// Context is passed to every page builder.
type Context struct {
	// Development shows the warning banner on top of every page.
	Development bool
	// Assets resolves static asset URLs. Required.
	Assets AssetResolver
}

// Content is the page specific input to Layout. Any field may be nil.
type Content struct {
	Title   string
	Left    markup.Node
	Right   markup.Node
	Head    markup.Node
	Scripts markup.Node
}

type navLink struct {
	label string
	href  string
	attrs []markup.Node
}

var footerLinks = []navLink{
	{label: "Endgames", href: "/endgames"},
	{label: "Metrics", href: "/metrics"},
	{label: "Legal", href: "/legal", attrs: []markup.Node{markup.A("data-jslicense", "1")}},
	{label: "GitHub", href: sourceRepository},
}

var (
	devBanner = markup.El("div",
		markup.A("style", "background:#c00;color:#fff;text-align:center;font-weight:bold;position:fixed;z-index:1;width:100%;top:0;"),
		markup.Text("Careful, this is an unreliable development version"),
	)

	headMeta = markup.Frag(
		markup.El("meta", markup.A("name", "viewport"), markup.A("content", "width=device-width,initial-scale=1.0,user-scalable=yes")),
		markup.El("meta", markup.A("name", "keywords"), markup.A("content", "Syzygy,chess,endgame,tablebase")),
		markup.El("meta", markup.A("name", "author"), markup.A("content", "Niklas Fiekas")),
		markup.El("link", markup.A("rel", "author"), markup.A("title", "Legal"), markup.Href("/legal")),
		markup.El("link", markup.A("rel", "icon"), markup.Href("/static/favicon.32.png"), markup.A("type", "image/png"), markup.A("sizes", "32x32")),
		markup.El("link", markup.A("rel", "icon"), markup.Href("/static/favicon.96.png"), markup.A("type", "image/png"), markup.A("sizes", "96x96")),
		markup.El("link", markup.A("rel", "sitemap"), markup.Href("/sitemap.txt"), markup.A("type", "text/plain")),
	)

	footer = markup.El("footer",
		markup.El("div", markup.Class("inner"),
			markup.El("p",
				markup.Text("Powered by Ronald de Man's "),
				markup.El("a", markup.Href("https://github.com/syzygy1/tb"), markup.Text("Syzygy endgame tablebases")), markup.Text(", "),
				markup.Text("7-piece tables generated by Bojun Guo and a "),
				markup.El("a", markup.Href("https://github.com/niklasf/lila-tablebase#http-api"), markup.Text("public API")), markup.Text(" "),
				markup.Text("hosted by "),
				markup.El("a", markup.Href("https://tablebase.lichess.ovh"), markup.Text("lichess.org")), markup.Text("."),
			),
			markup.El("p", markup.Frag(lo.Map(footerLinks, func(l navLink, i int) markup.Node {
				sep := ". "
				if i == len(footerLinks)-1 {
					sep = "."
				}
				return markup.Frag(markup.El("a", markup.Href(l.href), markup.Frag(l.attrs...), markup.Text(l.label)), markup.Text(sep))
			})...)),
		),
	)

	backToBoard = markup.El("nav",
		markup.El("div", markup.Class("reload"),
			markup.El("a", markup.Class("btn btn-default"), markup.Href("/"), markup.Text("Back to board")),
		),
	)
)

// Layout wraps content in the document shell shared by all pages. The
// column wrappers are always present; only their inner content is optional.
func Layout(c Context, content Content) (markup.Node, error) {
	stylesheet, err := c.Assets.URL(stylesheetAsset)
	if err != nil {
		return nil, err
	}

	return markup.El("html", markup.A("lang", "en"),
		markup.Comment(" "+sourceRepository+" "),
		markup.El("head",
			markup.El("meta", markup.A("charset", "utf-8")),
			markup.El("link", markup.A("rel", "preload"), markup.Href("/static/fonts/fontello.woff2"), markup.A("as", "font"), markup.A("type", "font/woff2"), markup.Flag("crossorigin")),
			markup.El("link", markup.A("rel", "stylesheet"), markup.Href(stylesheet)),
			content.Head,
			markup.El("title", markup.Text(content.Title+TitleSuffix)),
			headMeta,
		),
		markup.El("body",
			markup.If(c.Development, devBanner),
			markup.El("div", markup.Class("left-side"),
				markup.El("div", markup.Class("inner"), content.Left),
			),
			markup.El("div", markup.Class("right-side"),
				markup.El("div", markup.Class("inner"), content.Right),
			),
			footer,
			content.Scripts,
		),
	), nil
}
