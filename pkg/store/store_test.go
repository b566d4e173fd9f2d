package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/manuscripta/searchkit/pkg/indexable"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(fieldType, subtype, text, iso1 string) indexable.Record {
	return indexable.Record{Type: fieldType, Subtype: subtype, Indexable: text, ISO6391: iso1}
}

func TestReplaceDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.ReplaceDocument(ctx, "m1", []indexable.Record{
		record("descriptive", "title", "Annual report", "en"),
		record("metadata", "subject", "History", "en"),
	})
	if err != nil {
		t.Fatalf("ReplaceDocument: %v", err)
	}

	st, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if st.Documents != 1 || st.Records != 2 {
		t.Errorf("stats = %+v, want 1 document, 2 records", st)
	}

	// Replacing swaps the record set, it does not accumulate.
	err = s.ReplaceDocument(ctx, "m1", []indexable.Record{
		record("descriptive", "title", "Revised report", "en"),
	})
	if err != nil {
		t.Fatalf("ReplaceDocument (second): %v", err)
	}
	st, _ = s.GetStats(ctx)
	if st.Documents != 1 || st.Records != 1 {
		t.Errorf("stats after replace = %+v, want 1 document, 1 record", st)
	}

	// An empty set removes the document.
	if err := s.ReplaceDocument(ctx, "m1", nil); err != nil {
		t.Fatalf("ReplaceDocument (empty): %v", err)
	}
	st, _ = s.GetStats(ctx)
	if st.Documents != 0 || st.Records != 0 {
		t.Errorf("stats after removal = %+v, want empty store", st)
	}

	if err := s.ReplaceDocument(ctx, "", nil); err == nil {
		t.Error("ReplaceDocument with empty doc id: err = nil, want error")
	}
}

func TestFoldText(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Histoire", "histoire"},
		{"Histôire", "histoire"},
		{"KCDC_A-005", "kcdc_a-005"},
		{"學生生活", "學生生活"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := foldText(tt.input); got != tt.want {
			t.Errorf("foldText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFtsQuery(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Kundeling archives", `"Kundeling" "archives"`},
		{`say "hello"`, `"say" """hello"""`},
		{"  spaced   out  ", `"spaced" "out"`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ftsQuery(tt.input); got != tt.want {
			t.Errorf("ftsQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
