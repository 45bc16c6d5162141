package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harunnryd/shoki/internal/config"
	shokiErrors "github.com/harunnryd/shoki/internal/errors"

	"github.com/gofrs/flock"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/philippgille/chromem-go"
)

// UnavailableMessage is the diagnostic result returned by every query when
// the index or the embedding route never initialized.
const UnavailableMessage = "Policy database not available. Please check the vector index setup."

// Embedder turns text into a fixed-length vector. The same embedder must
// serve corpus load and query time, or relevance scores are meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, text string) ([]float32, error)

func (f EmbedderFunc) Embed(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

// Result is one ranked retrieval hit. Score is cosine similarity, which is
// 1 minus cosine distance; it is not clamped, so worse-than-orthogonal
// matches can score below zero.
type Result struct {
	ID          string
	Text        string
	Metadata    map[string]string
	Score       float32
	Unavailable bool
}

// Retriever wraps a chromem collection of policy documents. It is
// constructed once by the composition root and passed by reference; a
// failed initialization leaves it in a degraded state where every query
// returns a single diagnostic result instead of an error.
type Retriever struct {
	col       *chromem.Collection
	embedder  Embedder
	cache     *lru.Cache[string, []float32]
	lock      *flock.Flock
	available bool
}

// New opens the vector index. An empty path opens an in-memory index; a
// non-empty path opens a persistent one guarded by a file lock so two
// processes never share the same index directory.
func New(cfg config.RetrieverConfig, embedder Embedder) *Retriever {
	r := &Retriever{embedder: embedder}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = config.DefaultRetrieverCacheSize
	}
	cache, err := lru.New[string, []float32](cacheSize)
	if err != nil {
		slog.Warn("Embedding cache disabled", "error", err)
	} else {
		r.cache = cache
	}

	collection := strings.TrimSpace(cfg.Collection)
	if collection == "" {
		collection = config.DefaultRetrieverCollection
	}

	var db *chromem.DB
	if strings.TrimSpace(cfg.Path) == "" {
		db = chromem.NewDB()
	} else {
		if err := os.MkdirAll(cfg.Path, 0755); err != nil {
			slog.Warn("Retriever unavailable: cannot create index dir", "path", cfg.Path, "error", err)
			return r
		}

		lock := flock.New(filepath.Join(cfg.Path, "retriever.lock"))
		locked, err := lock.TryLock()
		if err != nil || !locked {
			slog.Warn("Retriever unavailable: index is locked by another process", "path", cfg.Path, "error", err)
			return r
		}
		r.lock = lock

		db, err = chromem.NewPersistentDB(cfg.Path, false)
		if err != nil {
			slog.Warn("Retriever unavailable: cannot open index", "path", cfg.Path, "error", err)
			return r
		}
	}

	// Nil embedding func: embeddings are provided explicitly.
	col, err := db.GetOrCreateCollection(collection, nil, nil)
	if err != nil {
		slog.Warn("Retriever unavailable: cannot open collection", "collection", collection, "error", err)
		return r
	}

	r.col = col
	r.available = embedder != nil
	if embedder == nil {
		slog.Warn("Retriever unavailable: no embedding route configured")
	}
	return r
}

// Available reports whether the index and the embedding route initialized.
func (r *Retriever) Available() bool {
	return r != nil && r.available
}

// Count reports how many documents the collection holds.
func (r *Retriever) Count() int {
	if !r.Available() {
		return 0
	}
	return r.col.Count()
}

// Close releases the index file lock.
func (r *Retriever) Close() {
	if r == nil || r.lock == nil {
		return
	}
	if err := r.lock.Unlock(); err != nil {
		slog.Warn("Failed to release index lock", "error", err)
	}
}

// Load seeds the collection with the document set. The load is idempotent:
// a non-empty collection short-circuits with success, it never upserts.
func (r *Retriever) Load(ctx context.Context, docs []Document) error {
	if !r.Available() {
		return shokiErrors.Unavailable("policy index not initialized")
	}

	if r.col.Count() > 0 {
		slog.Info("Policies already loaded", "count", r.col.Count())
		return nil
	}

	batch := make([]chromem.Document, 0, len(docs))
	for _, doc := range docs {
		embedding, err := r.embed(ctx, doc.Text)
		if err != nil {
			return shokiErrors.Wrap(err, fmt.Sprintf("embed policy %s", doc.ID))
		}
		batch = append(batch, chromem.Document{
			ID:        doc.ID,
			Content:   doc.Text,
			Metadata:  doc.Metadata,
			Embedding: embedding,
		})
	}

	if len(batch) == 0 {
		return nil
	}
	if err := r.col.AddDocuments(ctx, batch, 1); err != nil {
		return shokiErrors.Wrap(err, "load policies")
	}

	slog.Info("Policies loaded", "count", len(batch))
	return nil
}

// Query embeds the question and returns up to k results ordered by
// descending relevance. Degraded states yield a single diagnostic result
// rather than an error.
func (r *Retriever) Query(ctx context.Context, question string, k int) []Result {
	if !r.Available() {
		return []Result{{Text: UnavailableMessage, Unavailable: true}}
	}

	if k <= 0 {
		k = config.DefaultRetrieverTopK
	}
	if count := r.col.Count(); k > count {
		k = count
	}
	if k == 0 {
		return nil
	}

	embedding, err := r.embed(ctx, question)
	if err != nil {
		slog.Warn("Query embedding failed", "error", err)
		return []Result{{Text: UnavailableMessage, Unavailable: true}}
	}

	hits, err := r.col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		slog.Warn("Vector query failed", "error", err)
		return []Result{{Text: UnavailableMessage, Unavailable: true}}
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			ID:       hit.ID,
			Text:     hit.Content,
			Metadata: hit.Metadata,
			Score:    hit.Similarity,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	return results
}

func (r *Retriever) embed(ctx context.Context, text string) ([]float32, error) {
	if r.cache != nil {
		if embedding, ok := r.cache.Get(text); ok {
			return embedding, nil
		}
	}

	embedding, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Add(text, embedding)
	}
	return embedding, nil
}
