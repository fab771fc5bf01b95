// internal/tenant/helpers.go
//
// Tenant helper functions shared across the directory and tests.
//
// `resolveDevDomain` picks the real tenant domain that the literal host
// "localhost" stands in for, so dev instances can masquerade as any
// tenant without an extra mapping row.  Precedence:
//
//	NEWSROOM_LOCALHOST_ALIAS env → tenancy.dev_domain → "localhost" itself.
//
// No logging here; caller decides what to log.

package tenant

import "os"

// LocalhostAliasEnv overrides the configured development domain.
const LocalhostAliasEnv = "NEWSROOM_LOCALHOST_ALIAS"

func resolveDevDomain(configured string) Domain {
	if alias := os.Getenv(LocalhostAliasEnv); alias != "" {
		return Normalize(alias)
	}
	if configured != "" {
		return Normalize(configured)
	}
	return LocalDomain
}
