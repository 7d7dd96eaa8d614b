package model

import (
	"encoding/json"
	"time"
)

// DocumentChunk stores one text fragment of an ingested document together with
// its embedding. The embedding is kept as a JSON array of float32 for
// portability; (document_id, chunk_index) identifies a chunk across re-ingests.
type DocumentChunk struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID uint      `gorm:"not null;uniqueIndex:idx_doc_chunk,priority:1" json:"document_id"`
	ProjectID  uint      `gorm:"not null;index" json:"project_id"`
	ChunkIndex int       `gorm:"not null;uniqueIndex:idx_doc_chunk,priority:2" json:"chunk_index"`
	ChunkText  string    `gorm:"type:text;not null" json:"chunk_text"`
	Metadata   string    `gorm:"type:text" json:"-"` // JSON object
	Embedding  string    `gorm:"type:text" json:"-"` // JSON array of float32
	CreatedAt  time.Time `json:"created_at"`
}

// EmbeddingVector returns the parsed embedding slice; empty on parse error.
func (c *DocumentChunk) EmbeddingVector() []float32 {
	if c.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(c.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (c *DocumentChunk) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		c.Embedding = "[]"
		return
	}
	b, _ := json.Marshal(vec)
	c.Embedding = string(b)
}

// MetadataMap returns the parsed chunk metadata; empty map on parse error.
func (c *DocumentChunk) MetadataMap() map[string]any {
	m := map[string]any{}
	if c.Metadata != "" {
		_ = json.Unmarshal([]byte(c.Metadata), &m)
	}
	return m
}

// SetMetadata stores the metadata map as JSON.
func (c *DocumentChunk) SetMetadata(m map[string]any) {
	if len(m) == 0 {
		c.Metadata = ""
		return
	}
	b, _ := json.Marshal(m)
	c.Metadata = string(b)
}
