// Package terminal reports the size of the attached terminal so that text
// previews can be fitted to it.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 7
	ViewportMinCols = 15
	// Lines kept free for the header, legend and status line
	ViewportTopMargin = 6
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Viewport returns how many map rows and columns fit a terminal of the given
// size. Each map column is drawn as cellWidth characters. Rows and columns are
// kept odd so the observer can be centred.
func Viewport(termWidth, termHeight, cellWidth int) (rows, cols int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	cols = termWidth / cellWidth
	rows = termHeight - ViewportTopMargin

	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}

	if rows%2 == 0 {
		rows--
	}
	if cols%2 == 0 {
		cols--
	}
	return rows, cols
}

// CurrentViewport is Viewport for the attached terminal
func CurrentViewport(cellWidth int) (rows, cols int) {
	w, h := GetSize()
	return Viewport(w, h, cellWidth)
}
