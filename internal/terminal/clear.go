// Package terminal holds small helpers for raw terminal output.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const fallbackWidth = 80

// ClearPreviousLines erases textLength characters of echoed input from stdout,
// including the empty line the cursor moved to when Enter was pressed. Used to
// scrub pasted sign-in links.
func ClearPreviousLines(textLength int) {
	width := fallbackWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	clearRows(os.Stdout, RowsUsed(textLength, width)+1)
}

// RowsUsed returns how many terminal rows n characters wrap onto at width.
// It is at least 1.
func RowsUsed(n, width int) int {
	if width <= 0 {
		width = fallbackWidth
	}
	rows := (n + width - 1) / width
	if rows < 1 {
		return 1
	}
	return rows
}

// clearRows clears the current row and the rows-1 rows above it, leaving the
// cursor at the start of the topmost one.
func clearRows(w io.Writer, rows int) {
	for i := 0; i < rows; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < rows-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
