package stegocore

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	zwsp = '​' // bit 0
	zwnj = '‌' // bit 1
)

// Theme selects which built-in cover-grapheme list EncodeEmoji draws from.
type Theme string

const (
	ThemeFaces   Theme = "faces"
	ThemeNature  Theme = "nature"
	ThemeObjects Theme = "objects"
	ThemeMixed   Theme = "mixed"
	ThemeCustom  Theme = "custom"
)

// themeFaces, themeNature, and themeObjects are the three fixed cover lists;
// the specific emoji are not security-relevant, only their plausibility as
// ordinary chat text.
var (
	themeFaces   = []string{"😀", "😁", "😂", "😅", "😉", "😊", "😍", "🤔", "😎", "🥳", "😴", "🙃"}
	themeNature  = []string{"🌲", "🌻", "🌙", "⭐", "🌈", "🔥", "🌊", "❄️", "🍀", "🐝", "🐢", "🦋"}
	themeObjects = []string{"📦", "🔑", "💡", "📎", "🧵", "🪐", "🎈", "🧭", "🎲", "🔔", "🗝️", "📌"}
	themeMixed   = concatThemes(themeFaces, themeNature, themeObjects)
)

func concatThemes(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func themeList(t Theme, custom []string) []string {
	switch t {
	case ThemeFaces:
		return themeFaces
	case ThemeNature:
		return themeNature
	case ThemeObjects:
		return themeObjects
	case ThemeCustom:
		if len(custom) == 0 {
			return themeMixed
		}
		return normalizeCustomCovers(custom)
	default:
		return themeMixed
	}
}

// EncodeEmoji interleaves the invisible bitstream for body with cover
// graphemes drawn from theme, per spec §4.F. Cover grapheme count is
// max(12, ceil(len(body)/16)); chunk i of the invisible stream follows
// cover grapheme i, with any rounding remainder appended after the last
// cover grapheme.
func EncodeEmoji(body []byte, theme Theme, custom []string) (string, error) {
	invisible := make([]rune, 0, len(body)*8)
	for _, b := range body {
		for bit := 7; bit >= 0; bit-- {
			if (b>>uint(bit))&1 == 1 {
				invisible = append(invisible, zwnj)
			} else {
				invisible = append(invisible, zwsp)
			}
		}
	}

	e := len(body) / 16
	if len(body)%16 != 0 {
		e++
	}
	if e < 12 {
		e = 12
	}

	list := themeList(theme, custom)
	covers, err := pickRandomGraphemes(list, e)
	if err != nil {
		return "", err
	}

	chunkSize := len(invisible) / e
	if len(invisible)%e != 0 {
		chunkSize++
	}

	var sb strings.Builder
	pos := 0
	for i := 0; i < e; i++ {
		sb.WriteString(covers[i])
		end := pos + chunkSize
		if end > len(invisible) {
			end = len(invisible)
		}
		for _, r := range invisible[pos:end] {
			sb.WriteRune(r)
		}
		pos = end
	}
	for _, r := range invisible[pos:] {
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// pickRandomGraphemes draws n graphemes uniformly at random (with
// replacement) from list using the process CSPRNG.
func pickRandomGraphemes(list []string, n int) ([]string, error) {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		idx, err := randIndex(len(list))
		if err != nil {
			return nil, err
		}
		out[i] = list[idx]
	}
	return out, nil
}

func randIndex(n int) (int, error) {
	max := big.NewInt(int64(n))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// splitGraphemes segments s into Unicode extended grapheme clusters.
func splitGraphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// normalizeCustomCovers reduces each caller-supplied cover entry to its
// first extended grapheme cluster, so a multi-codepoint emoji (ZWJ
// sequence, skin-tone modifier, flag) counts as one cover unit instead of
// several, and a string with trailing garbage doesn't corrupt it. Empty
// entries are dropped; if every entry is empty this falls back to the
// mixed theme so encoding never gets stuck with zero cover candidates.
func normalizeCustomCovers(custom []string) []string {
	out := make([]string, 0, len(custom))
	for _, c := range custom {
		graphemes := splitGraphemes(c)
		if len(graphemes) == 0 {
			continue
		}
		out = append(out, graphemes[0])
	}
	if len(out) == 0 {
		return themeMixed
	}
	return out
}

// DecodeEmojiBits scans text code point by code point, collecting only
// ZWSP/ZWNJ into a bit string in encounter order and ignoring everything
// else — tolerant of arbitrary cover text or stripping between invisibles.
// A bit count not a multiple of 8 is truncated (salvage), per spec §4.F.
func DecodeEmojiBits(text string) []byte {
	var bits []byte
	for _, r := range text {
		switch r {
		case zwsp:
			bits = append(bits, 0)
		case zwnj:
			bits = append(bits, 1)
		}
	}
	usable := (len(bits) / 8) * 8
	bits = bits[:usable]
	if len(bits) == 0 {
		return nil
	}
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | bits[i*8+j]
		}
		out[i] = b
	}
	return out
}
