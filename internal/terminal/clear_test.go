package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowsUsed(t *testing.T) {
	tests := []struct {
		n, width, want int
	}{
		{0, 80, 1},
		{1, 80, 1},
		{80, 80, 1},
		{81, 80, 2},
		{200, 80, 3},
		{10, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RowsUsed(tt.n, tt.width), "n=%d width=%d", tt.n, tt.width)
	}
}

func TestClearRows(t *testing.T) {
	var b bytes.Buffer
	clearRows(&b, 3)
	assert.Equal(t, 3, strings.Count(b.String(), "\x1b[2K"))
	assert.Equal(t, 2, strings.Count(b.String(), "\x1b[1A"))
}
