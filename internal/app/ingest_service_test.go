package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFileType(t *testing.T) {
	assert.Equal(t, "pdf", normalizeFileType("report.PDF"))
	assert.Equal(t, "docx", normalizeFileType("/tmp/dir/notes.docx"))
	assert.Equal(t, "txt", normalizeFileType("a.b.txt"))
	assert.Equal(t, "", normalizeFileType("archive.zip"))
	assert.Equal(t, "", normalizeFileType("noextension"))
}

func TestSplitTextShortInput(t *testing.T) {
	chunks := splitText("short text", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitTextEmptyInput(t *testing.T) {
	assert.Empty(t, splitText("", 1000, 200))
	assert.Empty(t, splitText("   \n\n  ", 1000, 200))
}

func TestSplitTextChunkSizeAndOverlap(t *testing.T) {
	words := make([]string, 300)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	chunks := splitText(text, 100, 20)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 100, "chunk %d over size", i)
		assert.NotEmpty(t, chunk)
	}

	// Consecutive chunks share text because of the overlap.
	first := chunks[0]
	second := chunks[1]
	tail := first[len(first)-10:]
	assert.Contains(t, second, strings.TrimSpace(tail))
}

func TestSplitTextPrefersNewlineBoundary(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)

	chunks := splitText(text, 100, 10)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, strings.Repeat("a", 60), chunks[0])
}

func TestSplitTextInvalidSettingsFallBack(t *testing.T) {
	text := strings.Repeat("x ", 2000)

	// Overlap >= size would stall the window; the defaults take over.
	chunks := splitText(text, 100, 100)
	assert.NotEmpty(t, chunks)

	chunks = splitText(text, 0, -1)
	assert.NotEmpty(t, chunks)
}
