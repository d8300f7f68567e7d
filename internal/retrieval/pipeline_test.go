package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique/internal/catalog"
	"boutique/internal/models"
	"boutique/internal/store"
)

func seededStore(t *testing.T) *store.MemStore {
	t.Helper()
	st := store.NewMem()
	require.NoError(t, catalog.Seed(context.Background(), st))
	return st
}

func highIDs(c *Context) map[string]bool {
	out := make(map[string]bool)
	for _, it := range c.Items {
		if it.Relevance == models.RelevanceHigh {
			out[it.ID] = true
		}
	}
	return out
}

func TestRetrieveContextAlwaysCarriesFullCatalog(t *testing.T) {
	p := New(seededStore(t), catalog.Categories(), Options{})
	got, err := p.Retrieve(context.Background(), "anything at all zzz")
	require.NoError(t, err)
	assert.Len(t, got.Items, len(catalog.Products))
}

func TestRetrieveVectorStageMarksMatchesHigh(t *testing.T) {
	p := New(seededStore(t), catalog.Categories(), Options{})
	got, err := p.Retrieve(context.Background(), "linen summer suit for a wedding")
	require.NoError(t, err)
	high := highIDs(got)
	assert.True(t, high["5"], "the linen summer suit should be a high-relevance match")
	assert.NotEmpty(t, got.HighlightedIDs)
}

func TestRetrieveCategoryGuarantee(t *testing.T) {
	p := New(seededStore(t), catalog.Categories(), Options{})
	got, err := p.Retrieve(context.Background(), "trousers")
	require.NoError(t, err)
	high := highIDs(got)
	// every in-catalog item of the named category is emphasized
	for _, prod := range catalog.Products {
		if prod.Category == "Trousers" {
			assert.True(t, high[prod.ID], "item %s of named category must be high relevance", prod.ID)
		}
	}
	assert.Len(t, got.Items, len(catalog.Products), "relevance never hides inventory")
}

// failingVectorStore degrades the vector stage only.
type failingVectorStore struct {
	*store.MemStore
}

func (f failingVectorStore) SearchByVector(ctx context.Context, q []float32, threshold float64, k int) ([]store.VectorMatch, error) {
	return nil, errors.New("vector index offline")
}

func TestRetrieveSurvivesVectorStageFailure(t *testing.T) {
	st := seededStore(t)
	p := New(failingVectorStore{st}, catalog.Categories(), Options{})
	got, err := p.Retrieve(context.Background(), "cashmere scarf")
	require.NoError(t, err)
	assert.Len(t, got.Items, len(catalog.Products))
	assert.True(t, highIDs(got)["13"], "lexical fallback should still find the scarf")
}

func TestQueryTokensFiltersAndCaps(t *testing.T) {
	toks := queryTokens("show me something for the summer beach trip in italy with linen and cotton and silk")
	assert.LessOrEqual(t, len(toks), maxQueryTokens)
	assert.NotContains(t, toks, "the")
	assert.NotContains(t, toks, "me")
	assert.Contains(t, toks, "summer")
}

func TestNamedCategoriesSubstringMatch(t *testing.T) {
	p := New(store.NewMem(), []string{"Trousers", "Shoes", "Accessories"}, Options{})
	assert.Equal(t, []string{"Trousers"}, p.namedCategories("any trousers today?"))
	assert.Equal(t, []string{"Shoes"}, p.namedCategories("nice shoe selection"))
	assert.Empty(t, p.namedCategories("watches for dogs")) // Watches not configured
}
