package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/harunnryd/shoki/internal/config"

	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known texts to fixed vectors so ranking is
// deterministic; everything else gets a far-away vector.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func testDocs() []Document {
	return []Document{
		{ID: "vacation", Text: "vacation days", Metadata: map[string]string{"category": "Vacation"}},
		{ID: "overtime", Text: "overtime pay", Metadata: map[string]string{"category": "Overtime"}},
		{ID: "dress", Text: "dress code", Metadata: map[string]string{"category": "Dress Code"}},
	}
}

func newLoadedRetriever(t *testing.T) (*Retriever, *fakeEmbedder) {
	t.Helper()

	emb := &fakeEmbedder{vectors: map[string][]float32{
		"vacation days":          {1, 0, 0},
		"overtime pay":           {0.6, 0.8, 0},
		"dress code":             {0, 1, 0},
		"how many vacation days": {0.9, 0.1, 0},
	}}

	r := New(config.RetrieverConfig{}, emb)
	require.True(t, r.Available())
	require.NoError(t, r.Load(context.Background(), testDocs()))
	return r, emb
}

func TestLoad_Idempotent(t *testing.T) {
	r, _ := newLoadedRetriever(t)
	require.Equal(t, 3, r.Count())

	require.NoError(t, r.Load(context.Background(), testDocs()))
	require.Equal(t, 3, r.Count())
}

func TestQuery_RankedByDescendingScore(t *testing.T) {
	r, _ := newLoadedRetriever(t)

	results := r.Query(context.Background(), "how many vacation days", 3)
	require.Len(t, results, 3)
	require.Equal(t, "vacation", results[0].ID)
	require.Equal(t, "Vacation", results[0].Metadata["category"])
	for i := 1; i < len(results); i++ {
		require.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestQuery_ClampsKToCollectionSize(t *testing.T) {
	r, _ := newLoadedRetriever(t)

	results := r.Query(context.Background(), "how many vacation days", 10)
	require.Len(t, results, 3)
}

func TestQuery_CachesQueryEmbeddings(t *testing.T) {
	r, emb := newLoadedRetriever(t)
	loadCalls := emb.calls

	r.Query(context.Background(), "how many vacation days", 2)
	r.Query(context.Background(), "how many vacation days", 2)
	require.Equal(t, loadCalls+1, emb.calls)
}

func TestQuery_UnavailableWithoutEmbedder(t *testing.T) {
	r := New(config.RetrieverConfig{}, nil)
	require.False(t, r.Available())

	results := r.Query(context.Background(), "anything", 3)
	require.Len(t, results, 1)
	require.True(t, results[0].Unavailable)
	require.Equal(t, UnavailableMessage, results[0].Text)
}

// flakyEmbedder serves the corpus load, then fails every later call.
type flakyEmbedder struct {
	budget int
}

func (f *flakyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.budget <= 0 {
		return nil, errors.New("embedding backend down")
	}
	f.budget--
	return []float32{1, 0, 0}, nil
}

func TestQuery_EmbedFailureDegrades(t *testing.T) {
	emb := &flakyEmbedder{budget: len(testDocs())}
	r := New(config.RetrieverConfig{}, emb)
	require.NoError(t, r.Load(context.Background(), testDocs()))

	results := r.Query(context.Background(), "anything", 3)
	require.Len(t, results, 1)
	require.True(t, results[0].Unavailable)
}

func TestLoad_UnavailableRetriever(t *testing.T) {
	r := New(config.RetrieverConfig{}, nil)
	require.Error(t, r.Load(context.Background(), testDocs()))
}
