// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `Load` calls `validateStruct` immediately after it unmarshals the merged
// Koanf tree.  Tag rules cover single fields; `crossCheck` covers rules
// that span sections, such as "database source needs a DSN".

package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// ErrMissingDSN is returned when tenancy.source is "database" but no DSN
// was configured.
var ErrMissingDSN = errors.New("config: tenancy.source=database requires database.dsn")

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	if err := v.Struct(c); err != nil {
		return err
	}
	return crossCheck(c)
}

func crossCheck(c *Config) error {
	if c.Tenancy.Source == SourceDatabase && c.Database.DSN == "" {
		return ErrMissingDSN
	}
	return nil
}
