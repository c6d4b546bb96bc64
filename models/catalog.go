package models

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
)

var catalogTracer = otel.Tracer("models/catalog")

// Catalog is one consistent snapshot of both product sources: BOM records
// with their line items resolved, and combinations with volume/cost derived.
// Slice order follows the store's iteration order; matchers rely on it for
// first-match-wins semantics.
type Catalog struct {
	Boms         []*BomTable
	Combinations []*ResolvedCombination

	bomById map[string]*BomTable
}

// BomById returns the resolved BOM record for a catalog id, or nil.
func (c *Catalog) BomById(id string) *BomTable {
	return c.bomById[id]
}

// LoadCatalog reads the full BOM and combination catalogs with every
// shared-material reference dereferenced, one read per reference. A missing
// referenced record contributes zero; a store failure aborts the whole load
// since cost correctness depends on complete data.
func LoadCatalog(ctx context.Context) (*Catalog, error) {
	ctx, span := catalogTracer.Start(ctx, "LoadCatalog")
	defer span.End()

	boms, err := ListBomTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading bom tables: %v", err)
	}

	bomById := make(map[string]*BomTable, len(boms))
	for _, bom := range boms {
		if err := bom.ResolveItems(ctx, LookupMaterial); err != nil {
			return nil, err
		}
		bomById[bom.ID] = bom
	}

	combos, err := ListCustomCombinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading custom combinations: %v", err)
	}

	resolved := make([]*ResolvedCombination, 0, len(combos))
	for _, combo := range combos {
		resolved = append(resolved, ResolveCombination(combo, bomById))
	}

	return &Catalog{
		Boms:         boms,
		Combinations: resolved,
		bomById:      bomById,
	}, nil
}
