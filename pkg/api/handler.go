package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/manuscripta/searchkit/pkg/indexable"
	"github.com/manuscripta/searchkit/pkg/kit"
	"github.com/manuscripta/searchkit/pkg/lang"
	"github.com/manuscripta/searchkit/pkg/store"
)

// NewRouter returns an http.Handler with all searchkit API routes.
func NewRouter(cat *lang.Catalog, st *store.Store) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		classify:  classifyEndpoint(),
		index:     indexEndpoint(st, cat),
		search:    searchEndpoint(st),
		facets:    facetsEndpoint(st),
		languages: languagesEndpoint(cat),
		cat:       cat,
		st:        st,
	}

	mux.HandleFunc("GET /v1/classify/{query}", h.handleClassify)
	mux.HandleFunc("GET /v1/index", methodNotAllowed) // prevent GET on index
	mux.HandleFunc("POST /v1/index", h.handleIndex)
	mux.HandleFunc("GET /v1/search", h.handleSearch)
	mux.HandleFunc("GET /v1/facets", h.handleFacets)
	mux.HandleFunc("GET /v1/languages", h.handleLanguages)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	classify  kit.Endpoint
	index     kit.Endpoint
	search    kit.Endpoint
	facets    kit.Endpoint
	languages kit.Endpoint
	cat       *lang.Catalog
	st        *store.Store
}

// --- classify ---

func (h *handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	resp, err := h.classify(r.Context(), &classifyReq{Query: query})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- index ---

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024) // 1 MiB max
	var doc indexable.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.index(r.Context(), &indexReq{Doc: &doc})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- search ---

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	resp, err := h.search(r.Context(), &searchReq{
		Query: query,
		Limit: intParam(r, "limit"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- facets ---

func (h *handler) handleFacets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.facets(r.Context(), &facetsReq{
		Type:  r.URL.Query().Get("type"),
		Limit: intParam(r, "limit"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- languages ---

func (h *handler) handleLanguages(w http.ResponseWriter, r *http.Request) {
	resp, err := h.languages(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status    string `json:"status"`
	Languages int    `json:"languages"`
	Documents int    `json:"documents"`
	Records   int    `json:"records"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := h.st.GetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Languages: h.cat.Table().Len(),
		Documents: stats.Documents,
		Records:   stats.Records,
	})
}

// --- helpers ---

func intParam(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
