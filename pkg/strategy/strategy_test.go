package strategy

import "testing"

func TestIsLatin(t *testing.T) {
	latin := []string{
		"",
		"Kundeling archives ID 108 (012 1-1/#/11/7/4)",
		"simple search",
		"café au lait",
		"A-005",
		"1234 !?",
	}
	for _, text := range latin {
		if !IsLatin(text) {
			t.Errorf("IsLatin(%q) = false, want true", text)
		}
	}

	nonLatin := []string{
		"學生生活",
		"History 歷史",
		"བོད་ཡིག",
		"Пушкин",
	}
	for _, text := range nonLatin {
		if IsLatin(text) {
			t.Errorf("IsLatin(%q) = true, want false", text)
		}
	}
}

func TestShouldUseHybrid(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Kundeling archives ID 108 (012 1-1/#/11/7/4)", true}, // symbols + proper noun + numbers
		{"Kundeling archives", true},                           // proper noun, long word
		{"Kundeling archives ID 108", true},                    // proper noun + numbers
		{"archives ID 108", true},                              // numbers with >2 words
		{"John Smith", true},                                   // proper nouns
		{"ID 108", false},                                      // all-caps word is not a proper noun
		{"simple search", false},
		{"test", false},       // single word
		{"", false},           // empty
		{"   ", false},        // whitespace only
		{"KCDC_A-005", false}, // identifier shape
		{"catalogue raisonné entries", true}, // long word
	}
	for _, tt := range tests {
		if got := ShouldUseHybrid(tt.text); got != tt.want {
			t.Errorf("ShouldUseHybrid(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Strategy
	}{
		{"KCDC_A-005", ExactID},
		{"KCDC_B-005", ExactID},
		{"A-005", ExactID},
		{"KCDC_A", ExactID},
		{"KCDC_AB", FullText}, // not an ID, single Latin word
		{"Kundeling archives ID 108 (012 1-1/#/11/7/4)", Hybrid},
		{"John Smith", Hybrid},
		{"ID 108", FullText},
		{"simple search", FullText},
		{"test", FullText},
		{"", FullText},
		{"學生生活", WordSplit},
		{"歷史 研究", WordSplit},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	a := Analyze("KCDC_A-005")
	if a.Strategy != ExactID || !a.IDLike || a.IDPattern != "call_number" {
		t.Errorf("Analyze(%q) = %+v, want exact_id via call_number", "KCDC_A-005", a)
	}

	a = Analyze("Kundeling archives")
	if a.Strategy != Hybrid || a.IDLike || !a.Latin || !a.Hybrid {
		t.Errorf("Analyze(%q) = %+v, want hybrid Latin", "Kundeling archives", a)
	}

	a = Analyze("學生生活")
	if a.Strategy != WordSplit || a.Latin {
		t.Errorf("Analyze(%q) = %+v, want word_split non-Latin", "學生生活", a)
	}
}
