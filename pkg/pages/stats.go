package pages

import (
	"github.com/syzygy-tables/tablesinfo/pkg/markup"
)

// statsExample is an annotated, abbreviated response of /stats/KRNvKNN.json.
// It is documentation, not valid JSON.
const statsExample = `{
  "rtbw": {
    "bytes": 290002640, // file size
    "tbcheck": "a320ac...", // internal checksum
    "md5": "6ee435...",
    "sha1": "07a0e4...",
    "sha256": "f3386d...",
    "sha512": "c4bf73...",
    "b2": "b970e0...", // blake 2
    "ipfs": "QmXW4S..."
  },
  "rtbz": {
    // ...
  },
  "longest": [
    // longest winning endgames for black/white
    // with/without 50-move rule
    {
      "epd": "3n1n2/8/8/8/4R3/8/8/NK1k4 b - -",
      "ply": 100,
      "wdl": -2
    },
    {
      "epd": "6k1/5n2/8/8/8/5n2/1RK5/1N6 w - -",
      "ply": 485,
      "wdl": 1
    },
    {
      "epd": "8/8/8/8/8/8/N1nk4/RKn5 b - -",
      "ply": 7,
      "wdl": 2
    }
  ],
  "histogram": {
    "white": { // white to move
      "win": [
        0,
        1924310948,
        35087,
        363845772,
        37120,
        138550471,
        // ...
      ]
      "loss": [
        98698, // # of positions losing in 0
        144, // # of positions losing in 1
        3810, // # of positions losing in 2
        0, // 3
        596, // 4
        0, // 5
        58 // 6
      ],
      "wdl": { // # of positions with each wdl
        "-2": 0,
        "-1": 103306,
        "0": 1333429189,
        "1": 162344388,
        "2": 2959977091
      }
    },
    "b": { // black to move
      // ...
    },
  }
}`

func endpoint(path string, description ...markup.Node) markup.Node {
	return markup.El("div", markup.Class("panel panel-default"),
		markup.El("div", markup.Class("panel-heading"),
			markup.Text("GET "), markup.El("a", markup.Href(path), markup.Text(path)),
		),
		markup.El("div", markup.Class("panel-body"), markup.Frag(description...)),
	)
}

var (
	statsIntro = markup.Frag(
		markup.El("h1", markup.Text("Machine readable endgame statistics")),
		backToBoard,
	)

	statsAPI = markup.El("section", markup.ID("api"),
		markup.El("h2", markup.Text("API")),
		endpoint("/stats.json",
			markup.Text("All endgame stats with keys such as "), markup.El("code", markup.Text("KRNvKNN")), markup.Text("."),
		),
		endpoint("/stats/KRNvKNN.json",
			markup.Text("Endgame stats for a specific endgame, e.g., "), markup.El("code", markup.Text("KRNvKNN")), markup.Text(". "),
			markup.Text("Redirects to normalized endgame names."),
		),
	)

	statsExampleSection = markup.El("section", markup.ID("example"),
		markup.El("h2", markup.Text("Example (KRNvKNN)")),
		markup.El("pre", markup.El("code", markup.Text(statsExample))),
	)
)

// Stats documents the JSON statistics API.
func Stats(c Context) (markup.Node, error) {
	return Layout(c, Content{
		Title: "Machine readable endgame statistics",
		Left:  statsIntro,
		Right: markup.Frag(statsAPI, statsExampleSection),
	})
}
