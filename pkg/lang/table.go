package lang

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Entry is one row of the reference table.
type Entry struct {
	ISO6392 string `json:"iso639_2"`
	ISO6391 string `json:"iso639_1"`
	Display string `json:"display_name"`
}

// Table is the read-only language reference table. It is safe to share
// across concurrent resolvers without locking.
type Table struct {
	entries []Entry
	byISO1  map[string]int
	byISO2  map[string]int
	engine  map[string]bool
}

//go:embed langbase.csv
var langbaseCSV []byte

// NewTable builds a Table from entries. engineLangs is the allow-list of
// display names the search engine has a text configuration for; nil means
// DefaultEngineLanguages. The first entry wins when two rows share a code.
func NewTable(entries []Entry, engineLangs []string) *Table {
	if engineLangs == nil {
		engineLangs = DefaultEngineLanguages
	}
	t := &Table{
		entries: entries,
		byISO1:  make(map[string]int, len(entries)),
		byISO2:  make(map[string]int, len(entries)),
		engine:  make(map[string]bool, len(engineLangs)),
	}
	for i, e := range entries {
		if e.ISO6391 != "" {
			if _, dup := t.byISO1[e.ISO6391]; !dup {
				t.byISO1[e.ISO6391] = i
			}
		}
		if e.ISO6392 != "" {
			if _, dup := t.byISO2[e.ISO6392]; !dup {
				t.byISO2[e.ISO6392] = i
			}
		}
	}
	for _, l := range engineLangs {
		t.engine[strings.ToLower(l)] = true
	}
	return t
}

// Default returns the table built from the embedded language base.
func Default() *Table {
	t, err := parseTable(bytes.NewReader(langbaseCSV), nil)
	if err != nil {
		// The embedded table is fixed at build time.
		panic(fmt.Sprintf("lang: embedded langbase: %v", err))
	}
	return t
}

// LoadTable reads a reference table from a CSV file with columns
// (iso639_2, iso639_1, display_name). A non-UTF-8 encoding may be named
// and is transcoded before parsing. A header row is skipped if present.
func LoadTable(path, encoding string, engineLangs []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open language table: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if encoding != "" && !isUTF8(encoding) {
		e, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	t, err := parseTable(reader, engineLangs)
	if err != nil {
		return nil, fmt.Errorf("language table %s: %w", path, err)
	}
	return t, nil
}

func parseTable(reader io.Reader, engineLangs []string) (*Table, error) {
	r := csv.NewReader(reader)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var entries []Entry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(record) < 3 {
			continue
		}
		e := Entry{
			ISO6392: strings.TrimSpace(record[0]),
			ISO6391: strings.TrimSpace(record[1]),
			Display: strings.TrimSpace(record[2]),
		}
		if e.ISO6392 == "iso639_2" { // header row
			continue
		}
		if e.ISO6392 == "" && e.ISO6391 == "" {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries")
	}
	return NewTable(entries, engineLangs), nil
}

// Len returns the number of table entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the table rows in load order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
