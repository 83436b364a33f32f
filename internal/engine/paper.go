// Package engine implements the financial reconciliation calculations for an
// occasion. Every function is pure with respect to its inputs: no I/O, no
// hidden state, no error paths. Malformed or missing numbers are treated as
// zero upstream, so a summary can always be produced from partial data.
package engine

import "github.com/wewg24/rlc-bingo-manager-v2/internal/model"

// PaperSold converts a physical count triple into units sold. Over-counted
// inventory (end + free exceeding start) floors at zero rather than going
// negative; the entry screen tolerates in-progress counts.
func PaperSold(start, end, free int) int {
	sold := start - end - free
	if sold < 0 {
		return 0
	}
	return sold
}

// RecalcPaper refreshes the derived sold count on every paper line.
func RecalcPaper(lines []model.PaperInventoryLine) {
	for i := range lines {
		lines[i].Sold = PaperSold(lines[i].Start, lines[i].End, lines[i].Free)
	}
}
