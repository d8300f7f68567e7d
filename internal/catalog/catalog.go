// Package catalog holds the static product definition set and seeds it into
// the durable store. Items are upserted by id; re-seeding is idempotent and
// nothing here ever deletes.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"boutique/internal/embedding"
	"boutique/internal/models"
	"boutique/internal/store"
)

// Categories is the fixed category list, derived from the definition set and
// used by the retrieval pipeline's category guarantee.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range Products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Seed upserts the full definition set with freshly computed embeddings.
func Seed(ctx context.Context, cs store.CatalogStore) error {
	items := make([]models.Product, len(Products))
	for i, p := range Products {
		if p.FloorPrice > p.Price {
			return fmt.Errorf("product %s: floor price %v above list price %v", p.ID, p.FloorPrice, p.Price)
		}
		p.Embedding = embedding.Embed(p.EmbedText())
		items[i] = p
	}
	if err := cs.UpsertProducts(ctx, items); err != nil {
		return err
	}
	log.Info().Int("count", len(items)).Msg("catalog seeded")
	return nil
}

// SeedIfEmpty seeds only when the store holds fewer items than the
// definition set, mirroring the storefront's startup auto-seed.
func SeedIfEmpty(ctx context.Context, cs store.CatalogStore) error {
	n, err := cs.CountProducts(ctx)
	if err != nil {
		return err
	}
	if n >= len(Products) {
		log.Debug().Int("count", n).Msg("catalog already seeded")
		return nil
	}
	return Seed(ctx, cs)
}
