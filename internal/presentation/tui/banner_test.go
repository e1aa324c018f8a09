package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	out := buf.String()
	for _, line := range bannerLines {
		assert.Contains(t, out, line)
	}
	assert.Contains(t, out, "v1.2.3")
	assert.NotContains(t, out, "\x1b[", "buffers are not terminals")
	assert.Equal(t, len(bannerLines)+3, strings.Count(out, "\n"))
}
