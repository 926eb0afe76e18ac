package folco

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// emojiSignals holds the code points taken as evidence of an emoji: the
// symbol blocks with emoji presentation, the lone symbols of the Latin and
// CJK blocks which have one, and the sequence joiners.
var emojiSignals = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00a9, Hi: 0x00a9, Stride: 1}, // copyright
		{Lo: 0x00ae, Hi: 0x00ae, Stride: 1}, // registered
		{Lo: 0x200d, Hi: 0x200d, Stride: 1}, // zero width joiner
		{Lo: 0x203c, Hi: 0x203c, Stride: 1},
		{Lo: 0x2049, Hi: 0x2049, Stride: 1},
		{Lo: 0x20e3, Hi: 0x20e3, Stride: 1}, // enclosing keycap
		{Lo: 0x2122, Hi: 0x2122, Stride: 1},
		{Lo: 0x2139, Hi: 0x2139, Stride: 1},
		{Lo: 0x2190, Hi: 0x21ff, Stride: 1}, // arrows
		{Lo: 0x2300, Hi: 0x23ff, Stride: 1}, // miscellaneous technical
		{Lo: 0x24c2, Hi: 0x24c2, Stride: 1},
		{Lo: 0x25a0, Hi: 0x25ff, Stride: 1}, // geometric shapes
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1}, // miscellaneous symbols and dingbats
		{Lo: 0x2b00, Hi: 0x2bff, Stride: 1}, // miscellaneous symbols and arrows
		{Lo: 0x3030, Hi: 0x3030, Stride: 1},
		{Lo: 0x303d, Hi: 0x303d, Stride: 1},
		{Lo: 0x3297, Hi: 0x3297, Stride: 1},
		{Lo: 0x3299, Hi: 0x3299, Stride: 1},
		{Lo: 0xfe0f, Hi: 0xfe0f, Stride: 1}, // variation selector 16
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1faff, Stride: 1}, // emoji planes
	},
	LatinOffset: 2,
}

// ResolveDecalSource turns a user supplied string into svg markup usable as
// a decal. Decals are tinted, so only vector markup is accepted: either the
// markup itself (detected by a leading '<') or the path of a file holding it.
func ResolveDecalSource(input string) (SvgSource, error) {
	s := strings.TrimSpace(input)
	if isMarkup(s) {
		return FromSvg(s), nil
	}
	if s != "" && fileExists(s) {
		data, err := os.ReadFile(s)
		if err != nil {
			return SvgSource{}, &Error{Kind: KindSourceResolution, Op: "read decal", Path: s, Err: err}
		}
		return FromSvg(string(data)), nil
	}
	return SvgSource{}, &Error{Kind: KindSourceResolution, Op: "resolve decal", Input: input, Err: ErrSourceNotFoundOrMarkup}
}

// ResolveOverlaySource turns a user supplied string into an overlay source.
// The checks run in a fixed order and the first match wins:
//
//   - svg markup (leading '<')
//   - an existing file with a .svg extension (case-insensitive)
//   - a string holding at least one emoji code point
//   - anything else is taken as an emoji name
//
// A readable file without the .svg extension is treated as an emoji name,
// never as a file.
func ResolveOverlaySource(input string) (SvgSource, error) {
	s := strings.TrimSpace(input)
	switch {
	case isMarkup(s):
		return FromSvg(s), nil
	case isSvgFile(s):
		data, err := os.ReadFile(s)
		if err != nil {
			return SvgSource{}, &Error{Kind: KindSourceResolution, Op: "read overlay", Path: s, Err: err}
		}
		return FromSvg(string(data)), nil
	case IsEmoji(s):
		return FromEmoji(s), nil
	case s == "":
		return SvgSource{}, &Error{Kind: KindSourceResolution, Op: "resolve overlay", Input: input, Err: ErrEmptySource}
	}
	return FromEmojiName(s), nil
}

// IsEmoji reports whether s contains at least one code point which only
// appears in emoji sequences.
func IsEmoji(s string) bool {
	for _, r := range s {
		if unicode.Is(emojiSignals, r) {
			return true
		}
	}
	return false
}

func isMarkup(s string) bool {
	return strings.HasPrefix(s, "<")
}

func isSvgFile(s string) bool {
	return strings.EqualFold(filepath.Ext(s), ".svg") && fileExists(s)
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
