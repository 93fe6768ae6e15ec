package tablebase

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidSignature is returned for strings that do not describe a legal
// material configuration.
var ErrInvalidSignature = errors.New("invalid material signature")

// pieceOrder is the canonical order of pieces within one side.
const pieceOrder = "KQRBNP"

// MaxPieces is the largest number of pieces covered by the tables.
const MaxPieces = 7

// NormalizeSignature sorts the pieces of both sides and puts the stronger
// side first, so that e.g. "KNNvKRN" becomes "KRNvKNN".
func NormalizeSignature(s string) (string, error) {
	white, black, ok := strings.Cut(s, "v")
	if !ok {
		return "", fmt.Errorf("%w: %q: missing separator", ErrInvalidSignature, s)
	}
	w, err := sortSide(white)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidSignature, s, err)
	}
	b, err := sortSide(black)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidSignature, s, err)
	}
	if n := len(w) + len(b); n > MaxPieces {
		return "", fmt.Errorf("%w: %q: %d pieces", ErrInvalidSignature, s, n)
	}

	if weaker(w, b) {
		w, b = b, w
	}
	return string(w) + "v" + string(b), nil
}

func sortSide(side string) ([]byte, error) {
	pieces := []byte(side)
	kings := 0
	for _, p := range pieces {
		switch {
		case p == 'K':
			kings++
		case strings.IndexByte(pieceOrder, p) < 0:
			return nil, fmt.Errorf("unknown piece %q", p)
		}
	}
	if kings != 1 {
		return nil, fmt.Errorf("side %q needs exactly one king", side)
	}
	slices.SortStableFunc(pieces, func(a, b byte) int {
		return strings.IndexByte(pieceOrder, a) - strings.IndexByte(pieceOrder, b)
	})
	return pieces, nil
}

// weaker reports whether side w should be listed second: it has fewer
// pieces, or as many pieces but weaker ones.
func weaker(w, b []byte) bool {
	if len(w) != len(b) {
		return len(w) < len(b)
	}
	for i := range w {
		wi := strings.IndexByte(pieceOrder, w[i])
		bi := strings.IndexByte(pieceOrder, b[i])
		if wi != bi {
			return wi > bi
		}
	}
	return false
}
