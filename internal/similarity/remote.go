package similarity

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Embedder converts skill names into vectors. The production implementation
// calls the Gemini embedding API; tests substitute a fake.
type Embedder interface {
	// EmbedBatch returns one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// GeminiEmbedder implements Embedder against the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

// defaultEmbeddingModel is used when no model name is configured.
const defaultEmbeddingModel = "text-embedding-004"

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, apiKey, modelName string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		modelName = defaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		model:  client.EmbeddingModel(modelName),
	}, nil
}

// EmbedBatch embeds all texts in a single batch request.
func (g *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	batch := g.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := g.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("batch embedding failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("empty embedding for %q", texts[i])
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// Close releases the underlying API client.
func (g *GeminiEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Remote is the semantic similarity strategy: skill names are embedded by a
// remote service and compared by cosine similarity. Every call carries a
// bounded timeout; any transport failure, timeout, or malformed response
// surfaces as a RemoteUnavailableError for the fallback decorator to recover.
type Remote struct {
	embedder Embedder
	config   Config
	timeout  time.Duration
}

// defaultRemoteTimeout bounds a single embedding round trip.
const defaultRemoteTimeout = 5 * time.Second

// NewRemote creates a remote strategy over the given embedder.
func NewRemote(embedder Embedder, config Config, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &Remote{embedder: embedder, config: config, timeout: timeout}
}

// Similarity embeds both skills and returns their cosine similarity mapped
// into [0,1]. Identical names short-circuit to 1.0 without a network call.
func (r *Remote) Similarity(ctx context.Context, a, b string) (float64, error) {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return 1.0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	vectors, err := r.embedder.EmbedBatch(ctx, []string{a, b})
	if err != nil {
		return 0, &RemoteUnavailableError{Message: "embedding call failed", Cause: err}
	}
	if len(vectors) != 2 {
		return 0, &RemoteUnavailableError{Message: fmt.Sprintf("expected 2 vectors, got %d", len(vectors))}
	}

	sim, err := cosine(vectors[0], vectors[1])
	if err != nil {
		return 0, &RemoteUnavailableError{Message: "malformed embedding response", Cause: err}
	}

	// Cosine lands in [-1,1]; clamp into the strategy's [0,1] contract.
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

// Related derives relatedness from the remote similarity score using the same
// threshold as the lexical strategy.
func (r *Remote) Related(ctx context.Context, a, b string) (bool, error) {
	sim, err := r.Similarity(ctx, a, b)
	if err != nil {
		return false, err
	}
	return sim >= r.config.RelatedThreshold, nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
