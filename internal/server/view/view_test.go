package view

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	preview, ok := funcs["preview"].(func(string) string)
	require.True(t, ok)

	long := strings.Repeat("é", 300)
	got := preview(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 200)+"...", got)
}

func TestPreviewShortStringUnchanged(t *testing.T) {
	preview, ok := funcs["preview"].(func(string) string)
	require.True(t, ok)

	assert.Equal(t, "short", preview("short"))
	assert.Equal(t, "", preview(""))
}
