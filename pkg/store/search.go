package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/manuscripta/searchkit/pkg/strategy"
)

// DefaultSearchLimit caps results when the caller does not.
const DefaultSearchLimit = 30

// Hit is one matching record.
type Hit struct {
	id int64

	DocID     string `json:"doc_id"`
	Type      string `json:"type"`
	Subtype   string `json:"subtype"`
	Indexable string `json:"indexable"`
	Language  string `json:"language,omitempty"`
}

// Result is the response for one search.
type Result struct {
	Query    string            `json:"query"`
	Strategy strategy.Strategy `json:"strategy"`
	Hits     []Hit             `json:"hits"`
}

// Search classifies the query and executes the selected strategy.
func (s *Store) Search(ctx context.Context, query string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	res := &Result{
		Query:    query,
		Strategy: strategy.Classify(query),
		Hits:     []Hit{},
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return res, nil
	}

	var (
		hits []Hit
		err  error
	)
	switch res.Strategy {
	case strategy.ExactID:
		hits, err = s.searchLiteral(ctx, []string{trimmed}, limit)
	case strategy.Hybrid:
		hits, err = s.searchHybrid(ctx, trimmed, limit)
	case strategy.FullText:
		hits, err = s.searchFullText(ctx, trimmed, limit)
	case strategy.WordSplit:
		hits, err = s.searchLiteral(ctx, strings.Fields(trimmed), limit)
	}
	if err != nil {
		return nil, err
	}
	res.Hits = hits
	return res, nil
}

const hitColumns = `r.id, r.doc_id, r.type, r.subtype, r.indexable, r.language_display`

// searchLiteral matches records containing every given word, folded.
// With a single word this is the exact-identifier path.
func (s *Store) searchLiteral(ctx context.Context, words []string, limit int) ([]Hit, error) {
	var (
		conds []string
		args  []any
	)
	for _, w := range words {
		conds = append(conds, `instr(r.folded, ?) > 0`)
		args = append(args, foldText(w))
	}
	args = append(args, limit)

	q := fmt.Sprintf(`SELECT %s FROM records r WHERE %s ORDER BY r.id LIMIT ?`,
		hitColumns, strings.Join(conds, " AND "))
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("literal search: %w", err)
	}
	defer rows.Close()
	return scanHits(rows, nil)
}

// searchFullText runs an FTS5 match ordered by bm25. Every word is
// quoted so user punctuation cannot become FTS5 syntax.
func (s *Store) searchFullText(ctx context.Context, query string, limit int) ([]Hit, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	q := fmt.Sprintf(`SELECT %s
		FROM records r JOIN records_fts f ON r.id = f.rowid
		WHERE records_fts MATCH ?
		ORDER BY bm25(records_fts)
		LIMIT ?`, hitColumns)
	rows, err := s.db.QueryContext(ctx, q, match, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	defer rows.Close()
	return scanHits(rows, nil)
}

// searchHybrid unions the full-text match with a per-word literal match,
// deduplicating by record. Vocabulary outside the engine's dictionary
// fails the first leg but still surfaces through the second.
func (s *Store) searchHybrid(ctx context.Context, query string, limit int) ([]Hit, error) {
	seen := make(map[int64]bool)

	out, err := s.searchFullText(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("hybrid full-text leg: %w", err)
	}
	for _, h := range out {
		seen[h.id] = true
	}

	if len(out) < limit {
		literal, err := s.searchLiteral(ctx, strings.Fields(query), limit)
		if err != nil {
			return nil, fmt.Errorf("hybrid literal leg: %w", err)
		}
		for _, h := range literal {
			if len(out) >= limit {
				break
			}
			if seen[h.id] {
				continue
			}
			seen[h.id] = true
			out = append(out, h)
		}
	}
	return out, nil
}

// ftsQuery turns raw query text into an FTS5 match expression: each word
// double-quoted (quotes doubled), joined by implicit AND.
func ftsQuery(query string) string {
	words := strings.Fields(query)
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, `"`+strings.ReplaceAll(w, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

func scanHits(rows *sql.Rows, seen map[int64]bool) ([]Hit, error) {
	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.id, &h.DocID, &h.Type, &h.Subtype, &h.Indexable, &h.Language); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		if seen != nil {
			if seen[h.id] {
				continue
			}
			seen[h.id] = true
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// FacetCount is one (subtype, value) bucket with its distinct-document
// count. Subtype consistency upstream is what keeps one concept in one
// bucket across languages.
type FacetCount struct {
	Subtype string `json:"subtype"`
	Value   string `json:"value"`
	Count   int    `json:"count"`
}

// FacetCounts groups records by (subtype, indexable) counting distinct
// documents. fieldType filters to one field category when non-empty.
func (s *Store) FacetCounts(ctx context.Context, fieldType string, limit int) ([]FacetCount, error) {
	if limit <= 0 {
		limit = 100
	}

	q := `SELECT subtype, indexable, COUNT(DISTINCT doc_id) AS n
		FROM records`
	var args []any
	if fieldType != "" {
		q += ` WHERE type = ?`
		args = append(args, fieldType)
	}
	q += ` GROUP BY subtype, indexable ORDER BY n DESC, subtype, indexable LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("facet counts: %w", err)
	}
	defer rows.Close()

	var facets []FacetCount
	for rows.Next() {
		var f FacetCount
		if err := rows.Scan(&f.Subtype, &f.Value, &f.Count); err != nil {
			return nil, fmt.Errorf("scan facet: %w", err)
		}
		facets = append(facets, f)
	}
	return facets, rows.Err()
}
