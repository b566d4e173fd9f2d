package store

import (
	"context"
	"testing"

	"github.com/manuscripta/searchkit/pkg/indexable"
	"github.com/manuscripta/searchkit/pkg/strategy"
)

func seedArchive(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	docs := map[string][]indexable.Record{
		"m1": {
			record("descriptive", "title", "Kundeling archives ID 108", "en"),
			record("metadata", "identifier", "KCDC_A-005", ""),
			record("metadata", "subject", "History", "en"),
			{Type: "metadata", Subtype: "subject", Indexable: "歷史", ISO6391: "zh"},
		},
		"m2": {
			record("descriptive", "title", "Annual report of the monastery", "en"),
			record("metadata", "identifier", "KCDC_B-017", ""),
			record("metadata", "subject", "History", "en"),
			{Type: "metadata", Subtype: "subject", Indexable: "歷史", ISO6391: "zh"},
		},
		"m3": {
			record("descriptive", "title", "Land grant deed", "en"),
			record("metadata", "subject", "Taxation", "en"),
		},
	}
	for id, records := range docs {
		if err := s.ReplaceDocument(ctx, id, records); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
}

func TestSearchExactID(t *testing.T) {
	s := openTestStore(t)
	seedArchive(t, s)

	res, err := s.Search(context.Background(), "KCDC_A-005", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != strategy.ExactID {
		t.Errorf("strategy = %q, want %q", res.Strategy, strategy.ExactID)
	}
	if len(res.Hits) != 1 || res.Hits[0].DocID != "m1" {
		t.Fatalf("hits = %+v, want the one m1 identifier", res.Hits)
	}

	// Identifier matching is case-insensitive.
	res, err = s.Search(context.Background(), "kcdc_a-005", 0)
	if err != nil {
		t.Fatalf("Search lowercase: %v", err)
	}
	if len(res.Hits) != 1 {
		t.Errorf("lowercase hits = %d, want 1", len(res.Hits))
	}
}

func TestSearchFullText(t *testing.T) {
	s := openTestStore(t)
	seedArchive(t, s)

	res, err := s.Search(context.Background(), "monastery", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != strategy.FullText {
		t.Errorf("strategy = %q, want %q", res.Strategy, strategy.FullText)
	}
	if len(res.Hits) != 1 || res.Hits[0].DocID != "m2" {
		t.Errorf("hits = %+v, want the m2 title", res.Hits)
	}
}

func TestSearchHybrid(t *testing.T) {
	s := openTestStore(t)
	seedArchive(t, s)

	res, err := s.Search(context.Background(), "Kundeling archives", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != strategy.Hybrid {
		t.Errorf("strategy = %q, want %q", res.Strategy, strategy.Hybrid)
	}
	if len(res.Hits) == 0 {
		t.Fatal("hybrid search found nothing, want the m1 title")
	}
	for _, h := range res.Hits {
		if h.DocID != "m1" {
			t.Errorf("unexpected hit %+v", h)
		}
	}
}

func TestSearchWordSplit(t *testing.T) {
	s := openTestStore(t)
	seedArchive(t, s)

	res, err := s.Search(context.Background(), "歷史", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != strategy.WordSplit {
		t.Errorf("strategy = %q, want %q", res.Strategy, strategy.WordSplit)
	}
	if len(res.Hits) != 2 {
		t.Errorf("hits = %+v, want the two Chinese subject records", res.Hits)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	s := openTestStore(t)
	seedArchive(t, s)

	res, err := s.Search(context.Background(), "   ", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 0 {
		t.Errorf("hits = %+v, want none for blank query", res.Hits)
	}
}

func TestSearchLimit(t *testing.T) {
	s := openTestStore(t)
	seedArchive(t, s)

	res, err := s.Search(context.Background(), "History", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 1 {
		t.Errorf("hits = %d, want limit of 1", len(res.Hits))
	}
}

func TestFacetCounts(t *testing.T) {
	s := openTestStore(t)
	seedArchive(t, s)

	facets, err := s.FacetCounts(context.Background(), "metadata", 0)
	if err != nil {
		t.Fatalf("FacetCounts: %v", err)
	}

	got := make(map[string]int)
	for _, f := range facets {
		got[f.Subtype+"/"+f.Value] = f.Count
	}

	// Both languages of the same concept count the same documents.
	if got["subject/History"] != 2 {
		t.Errorf("count for subject/History = %d, want 2", got["subject/History"])
	}
	if got["subject/歷史"] != 2 {
		t.Errorf("count for subject/歷史 = %d, want 2", got["subject/歷史"])
	}
	if got["subject/Taxation"] != 1 {
		t.Errorf("count for subject/Taxation = %d, want 1", got["subject/Taxation"])
	}
	if got["title/Land grant deed"] != 0 {
		t.Errorf("descriptive fields leaked into metadata facets: %v", got)
	}
}
