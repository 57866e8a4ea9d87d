package export

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is stored in export_meta.
const SchemaVersion = 1

// CreateSchema creates all tables and indexes in the database.
func CreateSchema(db *sql.DB) error {
	if err := createCoreTables(db); err != nil {
		return fmt.Errorf("create core tables: %w", err)
	}
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	if err := createMetaTable(db); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}
	return nil
}

// createCoreTables creates the nodes, edges and traversals tables.
func createCoreTables(db *sql.DB) error {
	// Nodes are keyed by level-order slot; x/y are the pixel layout.
	nodesSQL := `
		CREATE TABLE IF NOT EXISTS nodes (
			slot INTEGER PRIMARY KEY,
			value INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			parent_slot INTEGER,
			x REAL NOT NULL,
			y REAL NOT NULL
		)
	`
	if _, err := db.Exec(nodesSQL); err != nil {
		return fmt.Errorf("create nodes table: %w", err)
	}

	edgesSQL := `
		CREATE TABLE IF NOT EXISTS edges (
			parent_slot INTEGER NOT NULL,
			child_slot INTEGER NOT NULL,
			side TEXT NOT NULL CHECK (side IN ('left', 'right')),
			PRIMARY KEY (parent_slot, child_slot),
			FOREIGN KEY (parent_slot) REFERENCES nodes(slot),
			FOREIGN KEY (child_slot) REFERENCES nodes(slot)
		)
	`
	if _, err := db.Exec(edgesSQL); err != nil {
		return fmt.Errorf("create edges table: %w", err)
	}

	traversalsSQL := `
		CREATE TABLE IF NOT EXISTS traversals (
			traversal_order TEXT NOT NULL,
			position INTEGER NOT NULL,
			slot INTEGER NOT NULL,
			value INTEGER NOT NULL,
			PRIMARY KEY (traversal_order, position),
			FOREIGN KEY (slot) REFERENCES nodes(slot)
		)
	`
	if _, err := db.Exec(traversalsSQL); err != nil {
		return fmt.Errorf("create traversals table: %w", err)
	}
	return nil
}

func createIndexes(db *sql.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_nodes_depth ON nodes(depth)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_value ON nodes(value)`,
		`CREATE INDEX IF NOT EXISTS idx_traversals_slot ON traversals(slot)`,
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// createMetaTable creates the export metadata table.
func createMetaTable(db *sql.DB) error {
	metaSQL := `
		CREATE TABLE IF NOT EXISTS export_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)
	`
	if _, err := db.Exec(metaSQL); err != nil {
		return fmt.Errorf("create export_meta table: %w", err)
	}
	return nil
}
