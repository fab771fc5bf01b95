// internal/tenant/meta/model.go
//
// `tenant_domain` table row model.
//
// Context
// -------
// When `tenancy.source` is "database" the Tenant Directory is seeded from
// this table once at boot.  Rows are owned by the admin tooling; the
// engine only reads them.
//
// Schema reference
//
//	CREATE TABLE tenant_domain (
//	    id           INT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
//	    domain       VARCHAR(256)  NOT NULL UNIQUE,
//	    tenant_slug  VARCHAR(100)  NOT NULL,
//	    kind         VARCHAR(16)   NOT NULL DEFAULT 'NEWS',
//	    suspended_at TIMESTAMP NULL,
//	    deleted_at   TIMESTAMP NULL,
//	    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// Notes
// -----
//   - Nullable timestamps are `*time.Time`; callers must nil-check before use.
//   - `Kind` is informational here.  The authoritative domain kind comes from
//     the settings provider.
package meta

import "time"

// Record mirrors one row in the `tenant_domain` table.
type Record struct {
	ID          uint64     `db:"id"`
	Domain      string     `db:"domain"`
	TenantSlug  string     `db:"tenant_slug"`
	Kind        string     `db:"kind"`
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
