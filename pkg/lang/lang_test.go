package lang

import "testing"

func testTable() *Table {
	return NewTable([]Entry{
		{"eng", "en", "English"},
		{"zho", "zh", "Chinese"},
		{"fra", "fr", "French"},
		{"deu", "de", "German"},
		{"spa", "es", "Spanish"},
		{"bod", "bo", "Tibetan"},
	}, nil)
}

func TestResolveByTwoLetterCode(t *testing.T) {
	tbl := testTable()
	got := tbl.Resolve("en")
	want := Descriptor{ISO6391: "en", ISO6392: "eng", Display: "english", Engine: "english"}
	if got != want {
		t.Errorf("Resolve(%q) = %+v, want %+v", "en", got, want)
	}
}

func TestResolveByThreeLetterCode(t *testing.T) {
	tbl := testTable()
	if got, want := tbl.Resolve("eng"), tbl.Resolve("en"); got != want {
		t.Errorf("Resolve(%q) = %+v, want same as Resolve(%q) = %+v", "eng", got, "en", want)
	}
}

func TestResolveRegionSubtag(t *testing.T) {
	tbl := testTable()
	if got, want := tbl.Resolve("en-US"), tbl.Resolve("en"); got != want {
		t.Errorf("Resolve(%q) = %+v, want %+v", "en-US", got, want)
	}
	if got, want := tbl.Resolve("zh-Hant-TW"), tbl.Resolve("zh"); got != want {
		t.Errorf("Resolve(%q) = %+v, want %+v", "zh-Hant-TW", got, want)
	}
}

func TestResolveNoEngineConfig(t *testing.T) {
	tbl := testTable()
	for _, code := range []string{"zh", "zho", "bo"} {
		got := tbl.Resolve(code)
		if got.IsZero() {
			t.Fatalf("Resolve(%q) = zero descriptor, want resolved", code)
		}
		if got.Engine != "" {
			t.Errorf("Resolve(%q).Engine = %q, want empty (no stemmer config)", code, got.Engine)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	tbl := testTable()
	for _, code := range []string{"", "x", "xyz", "xx", "toolong", "qq-QQ"} {
		got := tbl.Resolve(code)
		if !got.IsZero() {
			t.Errorf("Resolve(%q) = %+v, want zero descriptor", code, got)
		}
	}
}

func TestResolveCustomEngineList(t *testing.T) {
	tbl := NewTable([]Entry{{"eng", "en", "English"}}, []string{"simple"})
	got := tbl.Resolve("en")
	if got.Engine != "" {
		t.Errorf("Resolve(%q).Engine = %q, want empty with custom allow-list", "en", got.Engine)
	}
}

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	if tbl.Len() == 0 {
		t.Fatal("Default() table is empty")
	}

	got := tbl.Resolve("en")
	want := Descriptor{ISO6391: "en", ISO6392: "eng", Display: "english", Engine: "english"}
	if got != want {
		t.Errorf("Default().Resolve(%q) = %+v, want %+v", "en", got, want)
	}

	// Tibetan resolves but has no engine stemmer.
	bo := tbl.Resolve("bod")
	if bo.Display != "tibetan" || bo.Engine != "" {
		t.Errorf("Default().Resolve(%q) = %+v, want tibetan with empty engine", "bod", bo)
	}

	// Newari has no two-letter code; only the three-letter column matches.
	if got := tbl.Resolve("new"); got.Display != "newari" {
		t.Errorf("Default().Resolve(%q).Display = %q, want %q", "new", got.Display, "newari")
	}
}
