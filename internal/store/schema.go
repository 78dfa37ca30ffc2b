package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/vvka-141/sflink/pkg/sflink"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the wiki tables if they do not exist.
func Migrate(ctx context.Context, conn sflink.DBConnection) error {
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create wiki schema: %w", err)
	}
	return nil
}

// Reset drops the wiki tables and creates them again, empty.
func Reset(ctx context.Context, conn sflink.DBConnection) error {
	const drop = `DROP TABLE IF EXISTS job, categorylinks, smw_property_value, smw_property, smw_object, page CASCADE`
	if _, err := conn.Exec(ctx, drop); err != nil {
		return fmt.Errorf("failed to drop wiki schema: %w", err)
	}
	return Migrate(ctx, conn)
}

// SemanticStoreInstalled reports whether the semantic property tables exist. A
// wiki without them has categories and pages but no property store.
func SemanticStoreInstalled(ctx context.Context, conn sflink.DBConnection) (bool, error) {
	var installed bool
	err := conn.QueryRow(ctx, `SELECT to_regclass('smw_property_value') IS NOT NULL`).Scan(&installed)
	if err != nil {
		return false, fmt.Errorf("failed to inspect wiki schema: %w", err)
	}
	return installed, nil
}
