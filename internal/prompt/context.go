package prompt

import (
	"fmt"
	"strings"

	"kairosai/internal/index"
)

// NoContentSentinel is returned for empty chunk sets so downstream prompts
// always receive well-formed context text.
const NoContentSentinel = "No relevant document content found."

// AssembleChat concatenates retrieved chunks into numbered blocks for the
// conversational path.
func AssembleChat(chunks []index.RetrievedChunk) string {
	if len(chunks) == 0 {
		return NoContentSentinel
	}
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("Document %d:\n%s\n", i+1, chunkText(chunk)))
	}
	return strings.Join(parts, "\n")
}

// AssembleSources concatenates chunks with their best-known source label so
// generated documents can reference provenance.
func AssembleSources(chunks []index.RetrievedChunk) string {
	if len(chunks) == 0 {
		return NoContentSentinel
	}
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("[Source: %s]\nDocument Chunk %d:\n%s\n",
			sourceLabel(chunk, i), i+1, chunkText(chunk)))
	}
	return strings.Join(parts, "\n")
}

// chunkText extracts the chunk's text, trying known field locations in fixed
// priority order and falling back to stringifying the whole chunk.
func chunkText(chunk index.RetrievedChunk) string {
	if chunk.Content != "" {
		return chunk.Content
	}
	for _, key := range []string{"text", "chunk_text", "content"} {
		if v, ok := chunk.Metadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("%v", chunk)
}

// sourceLabel resolves the chunk's source: document_name, then source, then a
// synthetic positional placeholder.
func sourceLabel(chunk index.RetrievedChunk, i int) string {
	for _, key := range []string{"document_name", "source"} {
		if v, ok := chunk.Metadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("Document_%d", i+1)
}
