package lang

import "strings"

// Descriptor is the resolved identity of a language code.
// Either all four fields are set or all four are empty: a code resolves
// fully or not at all. Engine is empty when the search engine has no
// dedicated stemming configuration for the language (e.g. Chinese),
// even if the code itself resolved.
type Descriptor struct {
	ISO6391 string `json:"iso639_1,omitempty"`
	ISO6392 string `json:"iso639_2,omitempty"`
	Display string `json:"display_name,omitempty"`
	Engine  string `json:"engine_language,omitempty"`
}

// IsZero reports whether the code did not resolve.
func (d Descriptor) IsZero() bool {
	return d.ISO6391 == "" && d.ISO6392 == "" && d.Display == "" && d.Engine == ""
}

// DefaultEngineLanguages are the text-search configurations the engine
// ships a stemmer for (the PostgreSQL snowball set). Languages outside
// this list are indexed but fall back to a generic path at query time.
var DefaultEngineLanguages = []string{
	"arabic", "armenian", "basque", "catalan", "danish", "dutch",
	"english", "finnish", "french", "german", "greek", "hindi",
	"hungarian", "indonesian", "irish", "italian", "lithuanian",
	"nepali", "norwegian", "portuguese", "romanian", "russian",
	"serbian", "spanish", "swedish", "tamil", "turkish", "yiddish",
}

// Resolve maps a language code to its Descriptor.
// Region subtags are discarded ("en-US" resolves as "en"). Two-letter
// codes are looked up by the ISO 639-1 column, three-letter codes by the
// ISO 639-2 column. Anything else, including codes absent from the table,
// yields the zero Descriptor. Unknown input is never an error.
func (t *Table) Resolve(code string) Descriptor {
	if code == "" {
		return Descriptor{}
	}
	if i := strings.Index(code, "-"); i >= 0 {
		code = code[:i]
	}

	var idx int
	var ok bool
	switch len(code) {
	case 2:
		idx, ok = t.byISO1[code]
	case 3:
		idx, ok = t.byISO2[code]
	}
	if !ok {
		return Descriptor{}
	}

	e := t.entries[idx]
	display := strings.ToLower(e.Display)
	d := Descriptor{
		ISO6391: e.ISO6391,
		ISO6392: e.ISO6392,
		Display: display,
	}
	if t.engine[display] {
		d.Engine = display
	}
	return d
}
