package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Counter(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 3, time.Millisecond*10, false)
	bar.Start()
	bar.SetMessage("Processing: photos")
	bar.Inc()
	bar.Inc()
	bar.Println("Failed /tmp/nope")
	bar.Inc()
	bar.Inc() // never goes past the total
	bar.Finish("Completed: 2 succeeded, 1 failed")

	out := buf.String()
	assert.Contains(t, out, "3/3")
	assert.NotContains(t, out, "4/3")
	assert.Contains(t, out, "Failed /tmp/nope\n")
	assert.True(t, strings.HasSuffix(out, "Completed: 2 succeeded, 1 failed\n"))
	assert.False(t, IsTerminal(&buf))

	// Stopping twice must not panic.
	bar.Stop()
}

func TestUtils_Clamp(t *testing.T) {
	assert.Equal(t, 10, Clamp(3, 10, 40))
	assert.Equal(t, 40, Clamp(90, 10, 40))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 5, Max(2, 5))
}
