package export

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/dsv/pkg/model"
	"github.com/vanderheijden86/dsv/pkg/tree"
)

// writeSQLite replaces path with a fresh database holding doc.
func writeSQLite(path string, doc Document) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	dbClosed := false
	defer func() {
		if !dbClosed {
			db.Close()
		}
	}()

	if err := CreateSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := insertNodes(db, doc); err != nil {
		return fmt.Errorf("insert nodes: %w", err)
	}
	if err := insertTraversals(db, doc); err != nil {
		return fmt.Errorf("insert traversals: %w", err)
	}
	if err := insertMeta(db, doc); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	dbClosed = true
	if err := db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// insertNodes writes nodes and edges in one transaction.
func insertNodes(db *sql.DB, doc Document) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	nodeStmt, err := tx.Prepare(`
		INSERT INTO nodes (slot, value, depth, parent_slot, x, y)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	edgeStmt, err := tx.Prepare(`
		INSERT INTO edges (parent_slot, child_slot, side)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer edgeStmt.Close()

	var walkErr error
	treeFromDocument(doc).Walk(func(p tree.Position) bool {
		var parent sql.NullInt64
		if p.Parent >= 0 {
			parent = sql.NullInt64{Int64: int64(p.Parent), Valid: true}
		}
		n := doc.Layout.Nodes[p.Slot]
		if _, err := nodeStmt.Exec(p.Slot, p.Value, p.Depth, parent, n.X, n.Y); err != nil {
			walkErr = fmt.Errorf("insert node %d: %w", p.Slot, err)
			return false
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}

	for _, e := range doc.Layout.Edges {
		side := "right"
		if e.To == 2*e.From+1 {
			side = "left"
		}
		if _, err := edgeStmt.Exec(e.From, e.To, side); err != nil {
			return fmt.Errorf("insert edge %d->%d: %w", e.From, e.To, err)
		}
	}

	return tx.Commit()
}

func insertTraversals(db *sql.DB, doc Document) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO traversals (traversal_order, position, slot, value)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	t := treeFromDocument(doc)
	for _, o := range model.Orders {
		for i, v := range t.Traverse(o) {
			if _, err := stmt.Exec(string(o), i, v.Slot, v.Value); err != nil {
				return fmt.Errorf("insert %s traversal step %d: %w", o, i, err)
			}
		}
	}

	return tx.Commit()
}

func insertMeta(db *sql.DB, doc Document) error {
	meta := map[string]string{
		"schema_version": strconv.Itoa(SchemaVersion),
		"title":          doc.Title,
		"generated_at":   doc.GeneratedAt.Format(time.RFC3339),
		"version":        doc.Version,
		"node_count":     strconv.Itoa(doc.Stats.Nodes),
		"height":         strconv.Itoa(doc.Stats.Height),
		"diameter":       strconv.Itoa(doc.Stats.Diameter),
		"tree":           doc.Tree,
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range meta {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO export_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}
	return tx.Commit()
}
