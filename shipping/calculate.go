package shipping

import (
	"context"

	"go.opentelemetry.io/otel"

	"bitbucket.org/lfkitchen/costing_backend/models"
)

var tracer = otel.Tracer("shipping")

// Calculate runs the full pipeline over parsed order rows against one
// catalog snapshot and returns a fresh session. All derived state from any
// previous run, including verification flags, is discarded.
func Calculate(ctx context.Context, catalog *models.Catalog, rows []OrderRow) *Session {
	_, span := tracer.Start(ctx, "Calculate")
	defer span.End()

	matched := MatchOrders(catalog, rows)
	groups, summary := GroupOrders(matched)
	stats := ReduceSkuStats(catalog, matched)

	return NewSession(&Result{
		Orders:   matched,
		Groups:   groups,
		Summary:  summary,
		SkuStats: stats,
	})
}
