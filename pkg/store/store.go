package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/manuscripta/searchkit/pkg/indexable"
)

// Store persists indexable records and executes search strategies over
// them. One row per record; an external-content FTS5 table indexes the
// text with hyphen- and underscore-aware tokenization so call numbers
// like KCDC_A-005 survive as single tokens.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id                INTEGER PRIMARY KEY,
	doc_id            TEXT NOT NULL,
	type              TEXT NOT NULL,
	subtype           TEXT NOT NULL,
	indexable         TEXT NOT NULL,
	folded            TEXT NOT NULL,
	language_iso639_1 TEXT NOT NULL DEFAULT '',
	language_iso639_2 TEXT NOT NULL DEFAULT '',
	language_display  TEXT NOT NULL DEFAULT '',
	language_pg       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS records_doc_idx ON records(doc_id);
CREATE INDEX IF NOT EXISTS records_facet_idx ON records(subtype, indexable);

CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
	indexable,
	content='records',
	content_rowid='id',
	tokenize = 'unicode61 tokenchars ''-_'''
);

CREATE TRIGGER IF NOT EXISTS records_ai AFTER INSERT ON records BEGIN
	INSERT INTO records_fts(rowid, indexable) VALUES (new.id, new.indexable);
END;

CREATE TRIGGER IF NOT EXISTS records_ad AFTER DELETE ON records BEGIN
	INSERT INTO records_fts(records_fts, rowid, indexable)
	VALUES ('delete', old.id, old.indexable);
END;
`

// Open opens (or creates) the record store at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create record schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceDocument atomically replaces every record of a document with the
// given set. An empty set removes the document from the index.
func (s *Store) ReplaceDocument(ctx context.Context, docID string, records []indexable.Record) error {
	if docID == "" {
		return fmt.Errorf("replace document: empty doc id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("delete records for %s: %w", docID, err)
	}

	const ins = `INSERT INTO records
		(doc_id, type, subtype, indexable, folded,
		 language_iso639_1, language_iso639_2, language_display, language_pg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, r := range records {
		_, err := tx.ExecContext(ctx, ins,
			docID, r.Type, r.Subtype, r.Indexable, foldText(r.Indexable),
			r.ISO6391, r.ISO6392, r.Display, r.Engine)
		if err != nil {
			return fmt.Errorf("insert record for %s: %w", docID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Stats summarizes what the store holds.
type Stats struct {
	Documents int `json:"documents"`
	Records   int `json:"records"`
}

// GetStats returns document and record counts.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT doc_id), COUNT(*) FROM records`)
	if err := row.Scan(&st.Documents, &st.Records); err != nil {
		return Stats{}, fmt.Errorf("store stats: %w", err)
	}
	return st, nil
}
