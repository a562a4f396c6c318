package app

import (
	"context"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/todomarket/whatsapp-bot/internal/catalog"
	"go.uber.org/fx"
)

// WarmCatalog fetches the catalog once on startup so the first shopper
// does not pay the cold-cache latency. A failed warm-up is logged and
// tolerated; the store falls back to its hardcoded product list until
// the catalog API recovers.
func WarmCatalog(lc fx.Lifecycle, snapshots catalog.Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			snapshot, err := snapshots.Get(ctx)
			if err != nil {
				log.Warnw(ctx, "catalog warm-up failed", "error", err)
				return nil
			}
			log.Infow(ctx, "catalog warmed up",
				"categories", len(snapshot.Categories()),
				"fetched_at", snapshot.FetchedAt)
			return nil
		},
	})
}
