package pages

import (
	"github.com/samber/lo"

	"github.com/syzygy-tables/tablesinfo/pkg/markup"
)

// licensedScript is a script we distribute, listed for LibreJS.
type licensedScript struct {
	asset      string
	name       string
	license    string
	licenseURL string
	source     string
	sourceURL  string
}

var licensedScripts = []licensedScript{
	{
		asset:      "js/client.min.js",
		name:       "client.min.js",
		license:    "AGPL-3.0+",
		licenseURL: "https://www.gnu.org/licenses/agpl-3.0.en.html",
		source:     "client.ts",
		sourceURL:  sourceRepository + "/blob/master/src/client.ts",
	},
}

type dependency struct {
	prefix  string
	name    string
	url     string
	license string
}

var dependencies = []dependency{
	{name: "chessground", url: "https://github.com/ornicar/chessground", license: "GPL-3.0+"},
	{name: "chessops", url: "https://github.com/niklasf/chessops", license: "GPL-3.0+"},
	{name: "python-chess", url: "https://github.com/niklasf/python-chess", license: "GPL-3.0+"},
	{name: "tinyhtml", url: "https://github.com/niklasf/python-tinyhtml", license: "MIT/Apache-2.0"},
	{name: "aiohttp", url: "http://aiohttp.readthedocs.org/en/stable/", license: "Apache-2.0"},
	{prefix: "Selected icons from ", name: "Font Awesome", url: "https://fontawesome.com/", license: "SIL"},
	{prefix: "A few styles from ", name: "Bootstrap", url: "https://getbootstrap.com/", license: "MIT"},
}

var (
	legalIntro = markup.Frag(
		markup.El("h1", markup.Text("Legal")),
		markup.El("p", markup.Text("The tablebase lookup is provided on a best-effort basis, without guarantees of correctness or availability. Feedback or questions are welcome.")),
		markup.El("p", markup.Text("There are standard server logs kept no longer than 48 hours.")),
		backToBoard,
	)

	contact = markup.El("section", markup.ID("contact"),
		markup.El("h2", markup.Text("Contact")),
		markup.El("p",
			markup.El("a", markup.Href("mailto:niklas.fiekas@backscattering.de"), markup.Text("niklas.fiekas@backscattering.de")), markup.Text(" "),
			markup.Text("("), markup.El("a", markup.Href("https://pgp.mit.edu/pks/lookup?op=get&search=0x2ECA66C65B255138"), markup.Text("pgp")), markup.Text(")"),
		),
	)

	imprint = markup.El("section", markup.ID("imprint"),
		markup.El("h2", markup.Text("Imprint")),
		markup.El("p",
			markup.Text("Niklas Fiekas"),
			markup.El("br"), markup.Text("Tannenhöhe 16"),
			markup.El("br"), markup.Text("38678 Clausthal-Zellerfeld"),
			markup.El("br"), markup.Text("Germany"),
		),
	)

	dependencyList = markup.El("ul", markup.Frag(lo.Map(dependencies, func(d dependency, _ int) markup.Node {
		return markup.El("li",
			markup.If(d.prefix != "", markup.Text(d.prefix)),
			markup.El("a", markup.Href(d.url), markup.Text(d.name)),
			markup.Text(" ("+d.license+")"),
		)
	})...))
)

// Legal renders the legal notice: retention and service policy, contact
// details, imprint and software licenses.
func Legal(c Context) (markup.Node, error) {
	rows := make([]markup.Node, 0, len(licensedScripts))
	for _, s := range licensedScripts {
		url, err := c.Assets.URL(s.asset)
		if err != nil {
			return nil, err
		}
		rows = append(rows, markup.El("tr",
			markup.El("td", markup.El("a", markup.Href(url), markup.Text(s.name))),
			markup.El("td", markup.El("a", markup.Href(s.licenseURL), markup.Text(s.license))),
			markup.El("td", markup.El("a", markup.Href(s.sourceURL), markup.Text(s.source))),
		))
	}

	return Layout(c, Content{
		Title: "Legal",
		Left:  legalIntro,
		Right: markup.Frag(
			contact,
			imprint,
			markup.El("section", markup.ID("thanks"),
				markup.El("h2", markup.Text("Software licenses")),
				markup.El("p",
					markup.Text("The "),
					markup.El("a", markup.Href(sourceRepository), markup.Text("code for the website itself")),
					markup.Text(" is "),
					markup.El("a", markup.Href(sourceRepository+"/blob/master/LICENSE"), markup.Text("licensed under the AGPL-3.0+")),
					markup.Text("."),
				),
				markup.El("table", markup.ID("jslicense-labels1"),
					markup.El("thead",
						markup.El("tr",
							markup.El("th", markup.Text("Script")),
							markup.El("th", markup.Text("License")),
							markup.El("th", markup.Text("Source")),
						),
					),
					markup.El("tbody", rows...),
				),
				markup.El("p", markup.Text("It also uses the following software/artwork:")),
				dependencyList,
			),
		),
	})
}
