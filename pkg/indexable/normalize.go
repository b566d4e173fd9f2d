package indexable

import (
	"strings"

	"github.com/manuscripta/searchkit/pkg/lang"
)

// DefaultFieldType is the field category used when the caller does not name one.
const DefaultFieldType = "descriptive"

// Record is one flattened, language-tagged unit of searchable text.
// The language columns come from the resolver and may all be empty when
// the value's language code did not resolve; the text is indexed anyway.
type Record struct {
	Type      string `json:"type"`
	Subtype   string `json:"subtype"`
	Indexable string `json:"indexable"`
	ISO6391   string `json:"language_iso639_1,omitempty"`
	ISO6392   string `json:"language_iso639_2,omitempty"`
	Display   string `json:"language_display,omitempty"`
	Engine    string `json:"language_pg,omitempty"`
}

func (r *Record) setLanguage(d lang.Descriptor) {
	r.ISO6391 = d.ISO6391
	r.ISO6392 = d.ISO6392
	r.Display = d.Display
	r.Engine = d.Engine
}

// Normalize flattens one metadata field into indexable records.
//
// Simple fields (no label) emit one record per (language, value) pair with
// the lowercased key as subtype. Labeled fields resolve a single canonical
// subtype before any value is visited, so every record of the field
// carries the same subtype no matter which language's values come first
// or whether that language has its own label. Downstream facet counting
// groups by (subtype, indexable); a per-language subtype would split one
// concept into several buckets.
//
// Unspecified-language sentinels are remapped to defaultLang for language
// resolution only. Missing or empty inputs yield an empty slice, never an
// error.
func Normalize(f *Field, key, defaultLang string, table *lang.Table, fieldType string) []Record {
	if f == nil || f.Value == nil {
		return nil
	}
	if fieldType == "" {
		fieldType = DefaultFieldType
	}

	subtype := key
	if f.Labeled() {
		if canonical := canonicalLabel(f.Label, defaultLang); canonical != "" {
			subtype = canonical
		}
	}
	subtype = strings.ToLower(subtype)

	var records []Record
	for pair := f.Value.Oldest(); pair != nil; pair = pair.Next() {
		code := pair.Key
		if isUnspecified(code) {
			code = defaultLang
		}
		desc := table.Resolve(code)
		for _, v := range pair.Value {
			rec := Record{Type: fieldType, Subtype: subtype, Indexable: v}
			rec.setLanguage(desc)
			records = append(records, rec)
		}
	}
	return records
}

// canonicalLabel picks the one label that names this field across all
// languages. Priority: English, the resource's default language, the
// first labeled language in insertion order (sentinels skipped), then a
// sentinel-keyed label. Empty means no label qualified and the caller
// falls back to the field key.
func canonicalLabel(labels *LangMap, defaultLang string) string {
	if vals, ok := labels.Get("en"); ok && len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	if vals, ok := labels.Get(defaultLang); ok && len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	var canonical string
	for pair := labels.Oldest(); pair != nil; pair = pair.Next() {
		if isUnspecified(pair.Key) {
			continue
		}
		if len(pair.Value) > 0 {
			canonical = pair.Value[0]
			break
		}
	}
	if canonical == "" {
		for _, sentinel := range []string{"@none", "none"} {
			if vals, ok := labels.Get(sentinel); ok && len(vals) > 0 {
				canonical = vals[0]
				break
			}
		}
	}
	return canonical
}

// Document is one resource's descriptive metadata, normalized as a unit.
type Document struct {
	ID              string          `json:"id"`
	DefaultLanguage string          `json:"default_language,omitempty"`
	Fields          []DocumentField `json:"fields"`
}

// DocumentField pairs a field with its key and category.
type DocumentField struct {
	Key   string `json:"key"`
	Type  string `json:"type,omitempty"`
	Field *Field `json:"field"`
}

// NormalizeDocument flattens every field of a document, in field order.
// An absent default language means English.
func NormalizeDocument(doc *Document, table *lang.Table) []Record {
	if doc == nil {
		return nil
	}
	defaultLang := doc.DefaultLanguage
	if defaultLang == "" {
		defaultLang = "en"
	}

	var records []Record
	for _, df := range doc.Fields {
		records = append(records, Normalize(df.Field, df.Key, defaultLang, table, df.Type)...)
	}
	return records
}
