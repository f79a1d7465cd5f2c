package aggregate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatINR_IndianGroupingNoDecimals(t *testing.T) {
	formatted := FormatINR(1234567)

	require.True(t, strings.HasPrefix(formatted, "₹"))
	require.Contains(t, formatted, "12,34,567")
	require.NotContains(t, formatted, ".")
}

func TestFormatINR_RoundsToWholeRupees(t *testing.T) {
	require.Equal(t, FormatINR(100), FormatINR(99.6))
}
