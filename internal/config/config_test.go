package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("FOLCO_CACHE_DIR", "/var/cache/folco-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(0, cfg.Workers)
	assert.Equal(256, cfg.IconSize)
	assert.Equal(32, cfg.ProgressCapacity)
	assert.False(cfg.Verbose)
	assert.Contains(cfg.EmojiBaseURL, "twemoji")
	assert.Equal(filepath.Join("/var/cache/folco-test", "twemoji"), cfg.TwemojiCacheDir())
}

func TestLoad_Overrides(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("FOLCO_WORKERS", "4")
	t.Setenv("FOLCO_ICON_SIZE", "128")
	t.Setenv("FOLCO_PROGRESS_CAPACITY", "1")
	t.Setenv("FOLCO_VERBOSE", "true")
	t.Setenv("FOLCO_EMOJI_BASE_URL", "http://localhost:8080/svg/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(4, cfg.Workers)
	assert.Equal(128, cfg.IconSize)
	assert.Equal(1, cfg.ProgressCapacity)
	assert.True(cfg.Verbose)
	assert.Equal("http://localhost:8080/svg/", cfg.EmojiBaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FOLCO_WORKERS", "many")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")

	t.Setenv("FOLCO_WORKERS", "-1")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("FOLCO_WORKERS", "1")
	t.Setenv("FOLCO_ICON_SIZE", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("FOLCO_ICON_SIZE", "64")
	t.Setenv("FOLCO_EMOJI_BASE_URL", "twemoji/svg")
	_, err = Load()
	assert.ErrorContains(t, err, "FOLCO_EMOJI_BASE_URL")
}

func TestTwemojiCacheDir_Empty(t *testing.T) {
	assert.Empty(t, Config{}.TwemojiCacheDir())
}
