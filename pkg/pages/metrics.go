package pages

import (
	"strings"

	"github.com/syzygy-tables/tablesinfo/pkg/markup"
)

// boardImageService renders illustrative board diagrams.
const boardImageService = "https://backscattering.de/web-boardimage/board.svg"

const (
	roundingExample = "1kb5/8/1KN5/3N4/8/8/8/8 b - -"
	cursedExample   = "8/8/2N5/8/3k4/7N/p2K4/8 b - -"
)

// boardURL links an EPD to the interactive board. Move counters are
// appended since the board expects a full FEN.
func boardURL(epd string) string {
	return "/?fen=" + strings.ReplaceAll(epd, " ", "_") + "_0_1"
}

func exampleBoard(epd, check string) markup.Node {
	placement, _, _ := strings.Cut(epd, " ")
	return markup.El("a", markup.Href(boardURL(epd)),
		markup.El("img",
			markup.A("width", "300"),
			markup.A("height", "300"),
			markup.A("alt", epd),
			markup.A("src", boardImageService+"?fen="+placement+"&check="+check),
		),
	)
}

func exampleLink(epd string) markup.Node {
	return markup.El("a", markup.Href(boardURL(epd)), markup.Text(epd))
}

var (
	wdl50   = markup.Frag(markup.Text("WDL"), markup.El("sub", markup.Text("50")))
	dtz50pp = markup.Frag(markup.Text("DTZ"), markup.El("sub", markup.Text("50")), markup.Text("′′"))
	varN    = markup.El("var", markup.Text("n"))

	metricsIntro = markup.Frag(
		markup.El("h1", markup.Text("Metrics")),
		markup.El("p", markup.Text("Information stored in Syzygy tablebases")),
		backToBoard,
	)

	wdlSection = markup.El("section", markup.ID("wdl"),
		markup.El("h2", wdl50),
		markup.El("p",
			markup.Text("5-valued "),
			markup.El("em", markup.Text("Win/Draw/Loss")),
			markup.Text(" information can be used to decide which positions to aim for."),
		),
		markup.El("div", markup.Class("list-group stats"),
			markup.El("div", markup.Class("list-group-item white-win"), markup.Text("Win (+2)")),
			markup.El("div", markup.Class("list-group-item white-win frustrated"), markup.Text("Win prevented by 50-move rule (+1)")),
			markup.El("div", markup.Class("list-group-item draws"), markup.Text("Drawn (0)")),
			markup.El("div", markup.Class("list-group-item black-win frustrated"), markup.Text("Loss saved by 50-move rule (-1)")),
			markup.El("div", markup.Class("list-group-item black-win"), markup.Text("Loss (-2)")),
		),
	)

	dtzSection = markup.El("section", markup.ID("dtz"),
		markup.El("h2", dtz50pp, markup.Text(" with rounding")),
		markup.El("p",
			markup.Text("Once a tablebase position has been reached, the "),
			markup.El("em", markup.Text("Distance To Zeroing")), markup.Text(" "),
			markup.Text("(of the fifty-move counter by a capture or pawn move) "),
			markup.Text("can be used to reliably make progress in favorable positions and stall "),
			markup.Text("in unfavorable positions."),
		),
		markup.El("p", markup.Text("The precise meanings are as follows:")),
		markup.El("p",
			markup.Text("A DTZ value "), varN, markup.Text(" with 100 ≥ "), varN, markup.Text(" ≥ 1 means the position is winning, "),
			markup.Text("and a zeroing move or checkmate can be forced in "), varN, markup.Text(" or "), varN, markup.Text(" + 1 half-moves."),
		),
		exampleBoard(roundingExample, "b8"),
		markup.El("p",
			markup.Text("For an example of this ambiguity, see how the DTZ repeats after the only-move Ka8 in "),
			exampleLink(roundingExample), markup.Text(". "),
			markup.Text("This is due to the fact that some Syzygy tables store rounded moves "),
			markup.Text("instead of half-moves, to save space. This implies some primary tablebase lines "),
			markup.Text("may waste up to 1 ply. Rounding is never used for endgame phases where it would "),
			markup.Text("change the game theoretical outcome ("), wdl50, markup.Text(")."),
		),
		markup.El("p",
			markup.Text("Users need to be careful in positions "),
			markup.Text("that are nearly drawn under "),
			markup.Text("the 50-move rule! Carelessly wasting 1 more ply "),
			markup.Text("by not following the tablebase recommendation, for a total of 2 wasted plies, "),
			markup.Text("may change the outcome of the game."),
		),
		markup.El("p",
			markup.Text("A DTZ value "), varN, markup.Text(" > 100 means the position is winning, but drawn under the 50-move rule. "),
			markup.Text("A zeroing move or checkmate can be forced in "), varN, markup.Text(" or "), varN, markup.Text(" + 1 half-moves, "),
			markup.Text("or in "), varN, markup.Text(" - 100 or "), varN, markup.Text(" + 1 - 100 half-moves "),
			markup.Text("if a later phase is responsible for the draw."),
		),
		exampleBoard(cursedExample, "d4"),
		markup.El("p",
			markup.Text("For example, in "), exampleLink(cursedExample), markup.Text(" "),
			markup.Text("black promotes the pawn in 7 ply, but the DTZ is 107, "),
			markup.Text("indicating that white can hold a draw under the 50-move rule "),
			markup.Text("in a later phase of the endgame."),
		),
		markup.El("p",
			markup.Text("An in-depth discussion of rounding can be found in "),
			markup.El("a", markup.Href("http://www.talkchess.com/forum3/viewtopic.php?f=7&t=58488#p651293"), markup.Text("this thread")), markup.Text("."),
		),
	)
)

// Metrics explains the WDL and DTZ values stored in the tables, with
// example positions.
func Metrics(c Context) (markup.Node, error) {
	return Layout(c, Content{
		Title: "Metrics",
		Left:  metricsIntro,
		Right: markup.Frag(wdlSection, dtzSection),
	})
}
