package pages

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/syzygy-tables/tablesinfo/pkg/assets"
	"github.com/syzygy-tables/tablesinfo/pkg/markup"
)

type fakeAssets struct{}

func (fakeAssets) URL(path string) (string, error) {
	return "/static/" + path + "?mtime=42", nil
}

type missingAssets struct{}

func (missingAssets) URL(path string) (string, error) {
	return "", assets.ErrResourceNotFound
}

func testContext(development bool) Context {
	return Context{Development: development, Assets: fakeAssets{}}
}

func renderDoc(t *testing.T, n markup.Node) (string, *html.Node) {
	t.Helper()
	out, err := markup.String(n)
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	return out, doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func devBanners(doc *html.Node) []*html.Node {
	return findAll(doc, func(n *html.Node) bool {
		return n.Data == "div" && strings.Contains(attr(n, "style"), "position:fixed")
	})
}

func TestLayoutDevelopmentBanner(t *testing.T) {
	for _, dev := range []bool{true, false} {
		node, err := Layout(testContext(dev), Content{Title: "Test"})
		require.NoError(t, err)
		out, doc := renderDoc(t, node)

		want := 0
		if dev {
			want = 1
		}
		assert.Len(t, devBanners(doc), want)
		assert.Equal(t, dev, strings.Contains(out, "Careful, this is an unreliable development version"))
	}
}

func TestLayoutTitle(t *testing.T) {
	node, err := Layout(testContext(false), Content{Title: "Legal"})
	require.NoError(t, err)
	_, doc := renderDoc(t, node)

	titles := findAll(doc, byTag("title"))
	require.Len(t, titles, 1)
	assert.Equal(t, "Legal – Syzygy endgame tablebases", textOf(titles[0]))
}

func TestLayoutHead(t *testing.T) {
	node, err := Layout(testContext(false), Content{
		Title: "Head",
		Head:  markup.El("meta", markup.A("name", "robots"), markup.A("content", "noindex")),
	})
	require.NoError(t, err)
	out, doc := renderDoc(t, node)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html><html lang=\"en\"><!-- https://github.com/niklasf/syzygy-tables.info -->"))
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/css/style.min.css?mtime=42"/>`)
	assert.Contains(t, out, `<meta name="robots" content="noindex"/>`)

	icons := findAll(doc, func(n *html.Node) bool { return n.Data == "link" && attr(n, "rel") == "icon" })
	require.Len(t, icons, 2)
	assert.Equal(t, "32x32", attr(icons[0], "sizes"))
	assert.Equal(t, "96x96", attr(icons[1], "sizes"))

	sitemap := findAll(doc, func(n *html.Node) bool { return n.Data == "link" && attr(n, "rel") == "sitemap" })
	assert.Len(t, sitemap, 1)
}

func TestLayoutColumnsAlwaysPresent(t *testing.T) {
	node, err := Layout(testContext(false), Content{Title: "Empty"})
	require.NoError(t, err)
	out, _ := renderDoc(t, node)

	assert.Contains(t, out, `<div class="left-side"><div class="inner"></div></div>`)
	assert.Contains(t, out, `<div class="right-side"><div class="inner"></div></div>`)
}

func TestLayoutScriptsAfterFooter(t *testing.T) {
	node, err := Layout(testContext(false), Content{
		Title:   "Scripts",
		Scripts: markup.El("script", markup.A("src", "/static/js/client.min.js")),
	})
	require.NoError(t, err)
	out, _ := renderDoc(t, node)

	footerAt := strings.Index(out, "</footer>")
	scriptAt := strings.Index(out, "<script")
	require.Positive(t, footerAt)
	assert.Greater(t, scriptAt, footerAt)
}

func TestLayoutMissingStylesheet(t *testing.T) {
	_, err := Layout(Context{Assets: missingAssets{}}, Content{Title: "x"})
	assert.ErrorIs(t, err, assets.ErrResourceNotFound)
}

func TestPagesShareFooterAndOmitBanner(t *testing.T) {
	builders := map[string]func(Context) (markup.Node, error){
		"legal":   Legal,
		"metrics": Metrics,
		"stats":   Stats,
		"endgames": func(c Context) (markup.Node, error) {
			return Endgames(c, EndgamesArchiveKiB)
		},
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			node, err := build(testContext(false))
			require.NoError(t, err)
			_, doc := renderDoc(t, node)

			assert.Empty(t, devBanners(doc))

			footers := findAll(doc, byTag("footer"))
			require.Len(t, footers, 1)
			paragraphs := findAll(footers[0], byTag("p"))
			require.Len(t, paragraphs, 2)
			links := findAll(paragraphs[1], byTag("a"))
			require.Len(t, links, 4)

			var labels []string
			for _, l := range links {
				labels = append(labels, textOf(l))
			}
			assert.Equal(t, []string{"Endgames", "Metrics", "Legal", "GitHub"}, labels)
			assert.Equal(t, "1", attr(links[2], "data-jslicense"))
		})
	}
}

func TestPagesPropagateMissingAssets(t *testing.T) {
	c := Context{Assets: missingAssets{}}
	for _, build := range []func(Context) (markup.Node, error){Legal, Metrics, Stats} {
		_, err := build(c)
		assert.True(t, errors.Is(err, assets.ErrResourceNotFound))
	}
	_, err := Endgames(c, 1)
	assert.ErrorIs(t, err, assets.ErrResourceNotFound)
}

func TestLegal(t *testing.T) {
	node, err := Legal(testContext(true))
	require.NoError(t, err)
	out, doc := renderDoc(t, node)

	assert.Len(t, devBanners(doc), 1)
	for _, id := range []string{"contact", "imprint", "thanks"} {
		assert.Len(t, findAll(doc, func(n *html.Node) bool { return n.Data == "section" && attr(n, "id") == id }), 1, id)
	}

	tables := findAll(doc, func(n *html.Node) bool { return attr(n, "id") == "jslicense-labels1" })
	require.Len(t, tables, 1)
	rows := findAll(findAll(tables[0], byTag("tbody"))[0], byTag("tr"))
	require.Len(t, rows, len(licensedScripts))
	cells := findAll(rows[0], byTag("a"))
	require.Len(t, cells, 3)
	assert.Equal(t, "/static/js/client.min.js?mtime=42", attr(cells[0], "href"))
	assert.Equal(t, "AGPL-3.0+", textOf(cells[1]))

	items := findAll(doc, byTag("li"))
	assert.Len(t, items, len(dependencies))
	assert.Contains(t, out, "Selected icons from <a href=\"https://fontawesome.com/\">Font Awesome</a> (SIL)")
	assert.Contains(t, out, "48 hours")
	assert.Contains(t, out, "Back to board")
}

func TestMetrics(t *testing.T) {
	node, err := Metrics(testContext(false))
	require.NoError(t, err)
	out, doc := renderDoc(t, node)

	assert.Contains(t, out, `href="/?fen=1kb5/8/1KN5/3N4/8/8/8/8_b_-_-_0_1"`)
	assert.Contains(t, out, `src="https://backscattering.de/web-boardimage/board.svg?fen=1kb5/8/1KN5/3N4/8/8/8/8&amp;check=b8"`)
	assert.Contains(t, out, `src="https://backscattering.de/web-boardimage/board.svg?fen=8/8/2N5/8/3k4/7N/p2K4/8&amp;check=d4"`)
	assert.Contains(t, out, " with 100 ≥ ")
	assert.Contains(t, out, " &gt; 100 means the position is winning")
	assert.Contains(t, out, "the DTZ is 107")

	images := findAll(doc, byTag("img"))
	require.Len(t, images, 2)
	assert.Equal(t, roundingExample, attr(images[0], "alt"))
	assert.Equal(t, "300", attr(images[0], "width"))

	items := findAll(doc, func(n *html.Node) bool { return strings.HasPrefix(attr(n, "class"), "list-group-item") })
	assert.Len(t, items, 5)
}

func TestMetricsIsDeterministic(t *testing.T) {
	for _, dev := range []bool{true, false} {
		a, err := Metrics(testContext(dev))
		require.NoError(t, err)
		b, err := Metrics(testContext(dev))
		require.NoError(t, err)
		outA, _ := renderDoc(t, a)
		outB, _ := renderDoc(t, b)
		assert.Equal(t, outA, outB)
	}
}

func TestBoardURL(t *testing.T) {
	assert.Equal(t, "/?fen=8/8/2N5/8/3k4/7N/p2K4/8_b_-_-_0_1", boardURL(cursedExample))
}

func TestStats(t *testing.T) {
	node, err := Stats(testContext(false))
	require.NoError(t, err)
	_, doc := renderDoc(t, node)

	panels := findAll(doc, func(n *html.Node) bool { return attr(n, "class") == "panel-heading" })
	require.Len(t, panels, 2)
	assert.Equal(t, "GET /stats.json", textOf(panels[0]))
	assert.Equal(t, "GET /stats/KRNvKNN.json", textOf(panels[1]))

	codes := findAll(findAll(doc, byTag("pre"))[0], byTag("code"))
	require.Len(t, codes, 1)
	example := textOf(codes[0])
	assert.Equal(t, statsExample, example)
	for _, field := range []string{`"md5"`, `"sha1"`, `"sha256"`, `"sha512"`, `"b2"`, `"histogram"`, `"longest"`} {
		assert.Contains(t, example, field)
	}
}

func TestEndgamesEmbedsArchiveSize(t *testing.T) {
	node, err := Endgames(testContext(false), 4396)
	require.NoError(t, err)
	out, doc := renderDoc(t, node)

	assert.Contains(t, out, "("+KiB(4396)+")")
	assert.Contains(t, out, "(4.3 MiB)")
	assert.Len(t, findAll(doc, func(n *html.Node) bool { return attr(n, "href") == "/endgames.pgn" }), 1)
	assert.Contains(t, out, `<div class="right-side"><div class="inner"></div></div>`)
}

func TestPagesWithFileResolver(t *testing.T) {
	root := t.TempDir()
	mtime := time.Unix(1600000000, 0)
	for _, p := range []string{stylesheetAsset, "js/client.min.js"} {
		path := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	node, err := Legal(Context{Assets: assets.NewResolver(root)})
	require.NoError(t, err)
	out, _ := renderDoc(t, node)
	assert.Contains(t, out, "/static/css/style.min.css?mtime=1600000000")
	assert.Contains(t, out, "/static/js/client.min.js?mtime=1600000000")
}
