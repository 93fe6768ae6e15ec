package pages

import (
	"github.com/syzygy-tables/tablesinfo/pkg/markup"
)

// EndgamesArchiveKiB is the size of endgames.pgn as published.
const EndgamesArchiveKiB = 4396

// Endgames offers the archive of longest endgames per material
// configuration. archiveKiB is the archive size in KiB.
func Endgames(c Context, archiveKiB float64) (markup.Node, error) {
	return Layout(c, Content{
		Title: "Endgames",
		Left: markup.Frag(
			markup.El("h1", markup.Text("Endgames")),
			markup.El("p", markup.Text("These are the longest endgames (maximum DTZ) for each material configuration.")),
			markup.El("p",
				markup.El("a", markup.Href("/endgames.pgn"),
					markup.El("span", markup.Class("icon icon-download")), markup.Text(" endgames.pgn"),
				),
				markup.Text(" ("+KiB(archiveKiB)+")"),
			),
			backToBoard,
		),
	})
}
