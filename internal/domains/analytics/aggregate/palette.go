package aggregate

import (
	"strings"
	"unicode/utf16"
)

// MutedToken marks segments without a dedicated color: unrecognized stages
// and the synthesized "Other" client bucket.
const MutedToken = "muted"

// DefaultClientPalette holds the client color tokens in index order. The
// values are configuration; only the indexing must stay deterministic.
var DefaultClientPalette = []string{
	"#2563eb",
	"#16a34a",
	"#d97706",
	"#dc2626",
	"#7c3aed",
	"#0891b2",
	"#db2777",
	"#65a30d",
	"#ea580c",
	"#4f46e5",
}

var stageColorTokens = map[string]string{
	"arrival":   "stage-arrival",
	"quoted":    "stage-quoted",
	"won":       "stage-won",
	"completed": "stage-completed",
	"lost":      "stage-lost",
}

// StageColorToken resolves the color token for a stage label. Lookup is
// case-insensitive and unknown labels resolve to MutedToken.
func StageColorToken(stage string) string {
	if token, ok := stageColorTokens[strings.ToLower(stage)]; ok {
		return token
	}
	return MutedToken
}

// ColorIndex maps an arbitrary string key onto [0, paletteSize) using a
// 32-bit signed rolling hash over the key's UTF-16 code units:
// h = h*31 + unit, wrapping on overflow, then abs(h) mod paletteSize.
// The same key always yields the same index across calls and restarts.
func ColorIndex(key string, paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	var h int32
	for _, unit := range utf16.Encode([]rune(key)) {
		h = h*31 + int32(unit)
	}
	// Widen before negating so the minimum int32 keeps its magnitude.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(paletteSize))
}

// ClientColorToken picks a palette token for a client name.
func ClientColorToken(client string, palette []string) string {
	if len(palette) == 0 {
		return MutedToken
	}
	return palette[ColorIndex(client, len(palette))]
}
