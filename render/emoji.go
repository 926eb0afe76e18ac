package render

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/folco/utils"
	"github.com/kyokomi/emoji/v2"
	"go.uber.org/zap"
)

// DefaultTwemojiURL is the base URL of the twemoji svg assets.
const DefaultTwemojiURL = "https://cdn.jsdelivr.net/gh/jdecked/twemoji@latest/assets/svg/"

// ErrUnknownEmoji is returned when an emoji name has no known glyph.
var ErrUnknownEmoji = errors.New("unknown emoji name")

// EmojiSource provides the svg artwork of emoji glyphs.
type EmojiSource interface {
	// SVG returns the svg document of an emoji grapheme.
	SVG(ctx context.Context, grapheme string) ([]byte, error)
}

// LookupEmoji returns the glyph of an emoji name such as "duck",
// "thumbs up" or ":red_heart:".
func LookupEmoji(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.Trim(key, ":")
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if key == "" {
		return "", false
	}
	glyph, ok := emoji.CodeMap()[":"+key+":"]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(glyph), true
}

// TwemojiName returns the asset name of a grapheme in the twemoji set: the
// lower case hex code points joined by dashes. The emoji presentation
// selector is dropped unless the sequence is joined by a ZWJ.
func TwemojiName(grapheme string) string {
	keepFE0F := strings.ContainsRune(grapheme, '\u200d')
	parts := make([]string, 0, len(grapheme))
	for _, r := range grapheme {
		if r == '\ufe0f' && !keepFE0F {
			continue
		}
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-")
}

// Twemoji fetches emoji artwork from a twemoji asset server, keeping a copy
// of every downloaded document in CacheDir when it is set.
type Twemoji struct {
	BaseURL  string
	CacheDir string
	Client   *http.Client
	Logger   *zap.Logger
}

var _ EmojiSource = (*Twemoji)(nil)

// SVG implements EmojiSource.
func (t *Twemoji) SVG(ctx context.Context, grapheme string) ([]byte, error) {
	name := TwemojiName(grapheme)
	if name == "" {
		return nil, fmt.Errorf("empty emoji")
	}

	cached := ""
	if t.CacheDir != "" {
		cached = filepath.Join(t.CacheDir, name+".svg")
		if data, err := os.ReadFile(cached); err == nil {
			return data, nil
		}
	}

	base := t.BaseURL
	if base == "" {
		base = DefaultTwemojiURL
	}
	uri := strings.TrimSuffix(base, "/") + "/" + name + ".svg"
	data, err := utils.Download(ctx, t.Client, uri)
	if err != nil {
		return nil, fmt.Errorf("emoji %q: %w", grapheme, err)
	}
	if ctype := utils.DetectContentType(data); ctype != "image/svg+xml" {
		return nil, fmt.Errorf("emoji %q: unexpected content type %s", grapheme, ctype)
	}

	if cached != "" {
		if err := writeCache(cached, data); err != nil {
			t.logger().Warn("could not cache emoji", zap.String("path", cached), zap.Error(err))
		}
	}
	return data, nil
}

func (t *Twemoji) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

// writeCache writes data via a temp file, then atomically replaces the target.
func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
