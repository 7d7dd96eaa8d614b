package ai

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

const defaultLocalDimension = 256

// LocalEmbedder is a deterministic feature-hashing embedder used when no
// embedding provider is configured. The same text always hashes to the same
// vector, so retrieval stays stable across restarts.
type LocalEmbedder struct {
	dimension    int
	tokenPattern *regexp.Regexp
}

func NewLocalEmbedder(dimension int) *LocalEmbedder {
	if dimension <= 0 {
		dimension = defaultLocalDimension
	}
	return &LocalEmbedder{
		dimension:    dimension,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
	}
}

func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("embedding input is empty")
	}

	vec := make([]float32, e.dimension)
	tokens := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	for _, tok := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		sum := h.Sum32()
		bucket := int(sum % uint32(e.dimension))
		// Second hash bit picks the sign so colliding terms partially cancel.
		sign := float32(1)
		if (sum>>16)&1 == 1 {
			sign = -1
		}
		vec[bucket] += sign
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

func (e *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// RemoteEmbedder adapts the OpenAI-compatible embeddings endpoint to the
// embedder shape the chunk index consumes.
type RemoteEmbedder struct {
	client *OpenAICompatibleClient
	cfg    EmbeddingConfig
}

func NewRemoteEmbedder(client *OpenAICompatibleClient, cfg EmbeddingConfig) *RemoteEmbedder {
	if client == nil {
		client = NewOpenAICompatibleClient()
	}
	return &RemoteEmbedder{client: client, cfg: cfg}
}

func (e *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.client.Embed(ctx, e.cfg, text)
}

func (e *RemoteEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.client.EmbedBatch(ctx, e.cfg, texts)
}
