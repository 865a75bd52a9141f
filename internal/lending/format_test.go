// internal/lending/format_test.go
package lending

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	got := FormatINR(50000)
	assert.True(t, strings.HasPrefix(got, "₹"))
	assert.Contains(t, got, "000")
	assert.Equal(t, strings.TrimPrefix(got, "₹"), FormatNumber(50000))

	// Grouping separators are inserted but digits are preserved.
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, FormatNumber(1000000))
	assert.Equal(t, "1000000", digits)
}
