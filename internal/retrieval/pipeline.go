// Package retrieval narrows the catalog to items relevant to a query and
// assembles the full grounding context for the model. Stages augment each
// other: later fallbacks add to earlier results, they never replace them,
// and the assembled context always carries the whole catalog so imperfect
// retrieval can't hide inventory.
package retrieval

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"boutique/internal/embedding"
	"boutique/internal/models"
	"boutique/internal/store"
)

// minStageMatches is the result count under which the next fallback fires.
const minStageMatches = 3

// maxQueryTokens bounds the per-token lexical fan-out.
const maxQueryTokens = 6

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "have": true, "from": true, "what": true, "your": true,
	"you": true, "are": true, "can": true, "about": true, "something": true,
	"looking": true, "need": true, "want": true, "show": true, "find": true,
	"please": true, "some": true, "any": true,
}

// Options tune the vector stage and the context size.
type Options struct {
	TopK             int
	MinSimilarity    float64
	FullCatalogLimit int
}

// Context is the pipeline output: the ids to emphasize and the annotated
// full-catalog sequence handed to the model.
type Context struct {
	HighlightedIDs []string
	Items          []models.AnnotatedProduct
}

type Pipeline struct {
	catalog    store.CatalogStore
	categories []string
	opts       Options
	queryCache *lru.Cache[string, []float32]
}

func New(catalog store.CatalogStore, categories []string, opts Options) *Pipeline {
	if opts.TopK <= 0 {
		opts.TopK = 8
	}
	if opts.MinSimilarity == 0 {
		opts.MinSimilarity = 0.05
	}
	if opts.FullCatalogLimit <= 0 {
		opts.FullCatalogLimit = 250
	}
	cache, _ := lru.New[string, []float32](256)
	return &Pipeline{catalog: catalog, categories: categories, opts: opts, queryCache: cache}
}

// Retrieve runs the staged search and returns the annotated context. The
// stages run sequentially; each fallback needs the previous stage's count.
func (p *Pipeline) Retrieve(ctx context.Context, query string) (*Context, error) {
	matched := make(map[string]bool)
	var ids []string
	add := func(items []models.Product) {
		for _, it := range items {
			if !matched[it.ID] {
				matched[it.ID] = true
				ids = append(ids, it.ID)
			}
		}
	}

	// stage 1: vector similarity; unavailability is degradation, not failure
	vecMatches, err := p.catalog.SearchByVector(ctx, p.queryVector(query), p.opts.MinSimilarity, p.opts.TopK)
	if err != nil {
		log.Warn().Err(err).Msg("vector stage unavailable, continuing with fallbacks")
	}
	for _, m := range vecMatches {
		add([]models.Product{m.Product})
	}

	// stage 2: per-token lexical fallback
	if len(ids) < minStageMatches {
		for _, tok := range queryTokens(query) {
			items, err := p.catalog.SearchLexical(ctx, tok, "", p.opts.TopK)
			if err != nil {
				return nil, err
			}
			add(items)
		}
	}

	// stage 3: category guarantee; an explicitly named category must not
	// come back under-represented
	for _, cat := range p.namedCategories(query) {
		inCat := 0
		for _, id := range ids {
			if prod, ok, _ := p.catalog.GetProduct(ctx, id); ok && prod.Category == cat {
				inCat++
			}
		}
		if inCat >= minStageMatches {
			continue
		}
		items, err := p.catalog.SearchLexical(ctx, strings.ToLower(cat), cat, p.opts.TopK)
		if err != nil {
			return nil, err
		}
		add(items)
	}

	// stage 4: full-catalog context with relevance hints
	all, err := p.catalog.ListProducts(ctx, p.opts.FullCatalogLimit)
	if err != nil {
		return nil, err
	}
	out := &Context{HighlightedIDs: ids, Items: make([]models.AnnotatedProduct, len(all))}
	for i, prod := range all {
		tier := models.RelevanceAvailable
		if matched[prod.ID] {
			tier = models.RelevanceHigh
		}
		out.Items[i] = models.AnnotatedProduct{Product: prod, Relevance: tier}
	}
	return out, nil
}

func (p *Pipeline) queryVector(query string) []float32 {
	if v, ok := p.queryCache.Get(query); ok {
		return v
	}
	v := embedding.Embed(query)
	p.queryCache.Add(query, v)
	return v
}

// queryTokens keeps at most maxQueryTokens meaningful tokens from the query.
func queryTokens(query string) []string {
	var out []string
	for _, tok := range embedding.Tokenize(query) {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		out = append(out, tok)
		if len(out) == maxQueryTokens {
			break
		}
	}
	return out
}

// namedCategories returns categories the query names, matching a token that
// is, contains, or is contained in the category name.
func (p *Pipeline) namedCategories(query string) []string {
	toks := embedding.Tokenize(query)
	var out []string
	for _, cat := range p.categories {
		cl := strings.ToLower(cat)
		for _, tok := range toks {
			if len(tok) <= 2 {
				continue
			}
			if tok == cl || strings.Contains(tok, cl) || strings.Contains(cl, tok) {
				out = append(out, cat)
				break
			}
		}
	}
	return out
}
