package indexable

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LangMap maps a language code to its ordered list of strings. Key order
// is the order the source serialized them in, which the normalizer's
// output order depends on; a stdlib map would lose it.
type LangMap = orderedmap.OrderedMap[string, []string]

// NewLangMap returns an empty LangMap.
func NewLangMap() *LangMap {
	return orderedmap.New[string, []string]()
}

// Unspecified-language sentinels. The JSON-LD serializer emits "@none";
// older exports carry "none". Both mean "no language declared".
func isUnspecified(code string) bool {
	return code == "none" || code == "@none"
}

// Field is one metadata field instance attached to a resource.
//
// Two wire shapes exist. A labeled field carries separate label and value
// language maps:
//
//	{"label": {"en": ["Subject"]}, "value": {"en": ["History"], "zh": ["歷史"]}}
//
// A simple field (title, summary) is a bare language map and decodes with
// Label nil:
//
//	{"en": ["Annual report"], "zh": ["年度報告"]}
type Field struct {
	Label *LangMap `json:"label,omitempty"`
	Value *LangMap `json:"value,omitempty"`
}

// Labeled reports whether the field carries a label structure.
func (f *Field) Labeled() bool {
	return f != nil && f.Label != nil
}

// UnmarshalJSON accepts both wire shapes, preserving language order.
func (f *Field) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, raw); err != nil {
		return fmt.Errorf("metadata field: %w", err)
	}

	if _, labeled := raw.Get("label"); labeled {
		var shaped struct {
			Label *LangMap `json:"label"`
			Value *LangMap `json:"value"`
		}
		if err := json.Unmarshal(data, &shaped); err != nil {
			return fmt.Errorf("labeled field: %w", err)
		}
		f.Label = shaped.Label
		if f.Label == nil {
			f.Label = NewLangMap()
		}
		f.Value = shaped.Value
		return nil
	}

	values := NewLangMap()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		var vals []string
		if err := json.Unmarshal(pair.Value, &vals); err != nil {
			return fmt.Errorf("field language %q: %w", pair.Key, err)
		}
		values.Set(pair.Key, vals)
	}
	f.Label = nil
	f.Value = values
	return nil
}
