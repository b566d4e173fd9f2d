package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/manuscripta/searchkit/pkg/lang"
	"github.com/manuscripta/searchkit/pkg/store"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cat := lang.NewCatalog("", "", nil)
	if err := cat.Load(); err != nil {
		t.Fatalf("catalog load: %v", err)
	}
	st, err := store.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewRouter(cat, st)
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, target, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestClassifyRoute(t *testing.T) {
	router := testRouter(t)

	var resp struct {
		Strategy string `json:"strategy"`
		IDLike   bool   `json:"id_like"`
	}
	code := doJSON(t, router, http.MethodGet, "/v1/classify/KCDC_A-005", "", &resp)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp.Strategy != "exact_id" || !resp.IDLike {
		t.Errorf("response = %+v, want exact_id", resp)
	}
}

func TestIndexAndSearchRoutes(t *testing.T) {
	router := testRouter(t)

	doc := `{
		"id": "m1",
		"default_language": "en",
		"fields": [
			{"key": "metadata", "type": "metadata",
			 "field": {"label": {"en": ["Subject"]},
			           "value": {"en": ["History"], "zh": ["歷史"]}}}
		]
	}`
	var indexed struct {
		DocID   string `json:"doc_id"`
		Records int    `json:"records"`
	}
	code := doJSON(t, router, http.MethodPost, "/v1/index", doc, &indexed)
	if code != http.StatusOK {
		t.Fatalf("index status = %d, want 200", code)
	}
	if indexed.DocID != "m1" || indexed.Records != 2 {
		t.Errorf("index response = %+v, want 2 records for m1", indexed)
	}

	var found struct {
		Strategy string `json:"strategy"`
		Hits     []struct {
			DocID   string `json:"doc_id"`
			Subtype string `json:"subtype"`
		} `json:"hits"`
	}
	code = doJSON(t, router, http.MethodGet, "/v1/search?q=History", "", &found)
	if code != http.StatusOK {
		t.Fatalf("search status = %d, want 200", code)
	}
	if len(found.Hits) != 1 || found.Hits[0].DocID != "m1" || found.Hits[0].Subtype != "subject" {
		t.Errorf("search response = %+v, want the m1 subject record", found)
	}
}

func TestFacetsRoute(t *testing.T) {
	router := testRouter(t)

	doc := `{"id": "m1", "fields": [
		{"key": "metadata", "type": "metadata",
		 "field": {"label": {"en": ["Subject"]}, "value": {"en": ["History"], "zh": ["歷史"]}}}
	]}`
	if code := doJSON(t, router, http.MethodPost, "/v1/index", doc, nil); code != http.StatusOK {
		t.Fatalf("index status = %d, want 200", code)
	}

	var resp struct {
		Facets []struct {
			Subtype string `json:"subtype"`
			Value   string `json:"value"`
			Count   int    `json:"count"`
		} `json:"facets"`
	}
	if code := doJSON(t, router, http.MethodGet, "/v1/facets?type=metadata", "", &resp); code != http.StatusOK {
		t.Fatalf("facets status = %d, want 200", code)
	}
	if len(resp.Facets) != 2 {
		t.Fatalf("facets = %+v, want 2 buckets", resp.Facets)
	}
	for _, f := range resp.Facets {
		if f.Subtype != "subject" || f.Count != 1 {
			t.Errorf("facet = %+v, want subject bucket with count 1", f)
		}
	}
}

func TestLanguagesAndHealthRoutes(t *testing.T) {
	router := testRouter(t)

	var langs struct {
		Languages []struct {
			ISO6391 string `json:"iso639_1"`
		} `json:"languages"`
	}
	if code := doJSON(t, router, http.MethodGet, "/v1/languages", "", &langs); code != http.StatusOK {
		t.Fatalf("languages status = %d, want 200", code)
	}
	if len(langs.Languages) == 0 {
		t.Error("languages list is empty")
	}

	var health struct {
		Status    string `json:"status"`
		Languages int    `json:"languages"`
	}
	if code := doJSON(t, router, http.MethodGet, "/v1/health", "", &health); code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", code)
	}
	if health.Status != "ok" || health.Languages == 0 {
		t.Errorf("health = %+v, want ok with languages loaded", health)
	}
}

func TestIndexRouteErrors(t *testing.T) {
	router := testRouter(t)

	if code := doJSON(t, router, http.MethodPost, "/v1/index", "{not json", nil); code != http.StatusBadRequest {
		t.Errorf("invalid body status = %d, want 400", code)
	}
	if code := doJSON(t, router, http.MethodPost, "/v1/index", `{"fields": []}`, nil); code != http.StatusBadRequest {
		t.Errorf("missing id status = %d, want 400", code)
	}
	if code := doJSON(t, router, http.MethodGet, "/v1/index", "", nil); code != http.StatusMethodNotAllowed {
		t.Errorf("GET index status = %d, want 405", code)
	}
}

func TestSearchRouteMissingQuery(t *testing.T) {
	router := testRouter(t)
	if code := doJSON(t, router, http.MethodGet, "/v1/search", "", nil); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}
