// internal/tenant/meta/repository.go
//
// Tenant-domain query helpers.
//
// Context
// -------
//   - `AllActive` – boot-time directory seed, admin dashboards.
//   - `Mappings`  – AllActive folded into tenant.Mapping rows.
//
// All helpers exclude suspended or deleted rows at SQL level to keep
// callers simple.  Errors are returned wrapped; callers log them.
package meta

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/newsroom/internal/tenant"
)

const columns = `id, domain, tenant_slug, kind, suspended_at, deleted_at, created_at, updated_at`

// AllActive returns every domain row that is neither suspended nor deleted.
func AllActive(ctx context.Context, db *sqlx.DB) ([]Record, error) {
	const q = `
        SELECT ` + columns + `
        FROM   tenant_domain
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL
        ORDER  BY domain`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("meta.AllActive: %w", err)
	}
	return rows, nil
}

// Mappings loads the active rows as directory entries.
func Mappings(ctx context.Context, db *sqlx.DB) ([]tenant.Mapping, error) {
	rows, err := AllActive(ctx, db)
	if err != nil {
		return nil, err
	}
	out := make([]tenant.Mapping, 0, len(rows))
	for _, r := range rows {
		out = append(out, tenant.Mapping{Domain: r.Domain, Slug: r.TenantSlug})
	}
	return out, nil
}
