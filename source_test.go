package folco

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duck = "\U0001F986"

func TestSvgSource_Tags(t *testing.T) {
	assert := assert.New(t)

	// Same content, different tags.
	svg, emoji, name := FromSvg("x"), FromEmoji("x"), FromEmojiName("x")
	assert.NotEqual(svg, emoji)
	assert.NotEqual(emoji, name)
	assert.Equal(SourceSvg, svg.Kind())
	assert.Equal(SourceEmoji, emoji.Kind())
	assert.Equal(SourceEmojiName, name.Kind())

	for _, s := range []SvgSource{svg, emoji, name} {
		b, err := json.Marshal(s)
		require.NoError(t, err)
		var back SvgSource
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(s, back)
	}

	b, err := json.Marshal(FromEmojiName("duck"))
	require.NoError(t, err)
	assert.JSONEq(`{"kind":"emoji_name","value":"duck"}`, string(b))

	var zero SvgSource
	assert.True(zero.IsZero())
	assert.ErrorIs(zero.Validate(), ErrUnknownSourceKind)
	assert.ErrorIs(FromSvg("").Validate(), ErrEmptySource)
}

func TestResolveDecalSource(t *testing.T) {
	assert := assert.New(t)

	src, err := ResolveDecalSource("  <svg/>  ")
	require.NoError(t, err)
	assert.Equal(FromSvg("<svg/>"), src)

	path := filepath.Join(t.TempDir(), "star")
	require.NoError(t, os.WriteFile(path, []byte("<svg>star</svg>"), 0o644))
	src, err = ResolveDecalSource(path)
	require.NoError(t, err)
	assert.Equal(FromSvg("<svg>star</svg>"), src)

	for _, input := range []string{"/no/such/file", "", "duck", duck, t.TempDir()} {
		_, err = ResolveDecalSource(input)
		assert.ErrorIs(err, ErrSourceNotFoundOrMarkup, input)
		assert.ErrorIs(err, &Error{Kind: KindSourceResolution}, input)
	}
}

func TestResolveOverlaySource(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	svgFile := filepath.Join(dir, "icon.SVG")
	require.NoError(t, os.WriteFile(svgFile, []byte("<svg>icon</svg>"), 0o644))

	// A readable file without the .svg extension is taken as a name.
	plain := filepath.Join(dir, "duck")
	require.NoError(t, os.WriteFile(plain, []byte("<svg>duck</svg>"), 0o644))

	cases := []struct {
		input string
		want  SvgSource
	}{
		{"<svg/>", FromSvg("<svg/>")},
		{"  <svg/>\n", FromSvg("<svg/>")},
		{svgFile, FromSvg("<svg>icon</svg>")},
		{duck, FromEmoji(duck)},
		{"❤\ufe0f", FromEmoji("❤\ufe0f")},
		{"\U0001F469\u200d\U0001F4BB", FromEmoji("\U0001F469\u200d\U0001F4BB")},
		{"#\ufe0f\u20e3", FromEmoji("#\ufe0f\u20e3")},
		{"☀", FromEmoji("☀")},
		{"\u2b50", FromEmoji("\u2b50")},
		{"\u231b", FromEmoji("\u231b")},
		{"\u23f0", FromEmoji("\u23f0")},
		{"\u2b06\ufe0f", FromEmoji("\u2b06\ufe0f")},
		{"\u00a9", FromEmoji("\u00a9")},
		{"\u25b6", FromEmoji("\u25b6")},
		{"\u303d", FromEmoji("\u303d")},
		{"duck", FromEmojiName("duck")},
		{"thumbs up", FromEmojiName("thumbs up")},
		{plain, FromEmojiName(plain)},
		{filepath.Join(dir, "missing.svg"), FromEmojiName(filepath.Join(dir, "missing.svg"))},
	}
	for _, c := range cases {
		got, err := ResolveOverlaySource(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(c.want, got, c.input)
	}

	_, err := ResolveOverlaySource("   ")
	assert.ErrorIs(err, ErrEmptySource)
}

func TestIsEmoji(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsEmoji(duck))
	assert.True(IsEmoji("go " + duck))
	assert.True(IsEmoji("✨"))
	for _, sym := range []string{"\u2b50", "\u231b", "\u23f0", "\u2b06", "\u00a9", "\u00ae", "\u2122", "\u25b6", "\u303d", "\u3299", "\u24c2", "\u2049"} {
		assert.True(IsEmoji(sym), "%U", []rune(sym)[0])
	}
	assert.False(IsEmoji("duck"))
	assert.False(IsEmoji("café"))
	assert.False(IsEmoji(""))
	assert.False(IsEmoji("na\u00efve r\u00e9sum\u00e9"))
}
