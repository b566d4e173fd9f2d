package api

import (
	"context"
	"fmt"

	"github.com/manuscripta/searchkit/pkg/indexable"
	"github.com/manuscripta/searchkit/pkg/kit"
	"github.com/manuscripta/searchkit/pkg/lang"
	"github.com/manuscripta/searchkit/pkg/store"
	"github.com/manuscripta/searchkit/pkg/strategy"
)

// Shared request/response types used by both HTTP and MCP transports.

type classifyReq struct {
	Query string
}

type indexReq struct {
	Doc *indexable.Document
}

type indexResponse struct {
	DocID   string `json:"doc_id"`
	Records int    `json:"records"`
}

type searchReq struct {
	Query string
	Limit int
}

type facetsReq struct {
	Type  string
	Limit int
}

type facetsResponse struct {
	Facets []store.FacetCount `json:"facets"`
}

type languagesResponse struct {
	Languages []lang.Entry `json:"languages"`
}

// Endpoints returns the core kit.Endpoints backed by the catalog and store.

func classifyEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*classifyReq)
		return strategy.Analyze(req.Query), nil
	}
}

func indexEndpoint(st *store.Store, cat *lang.Catalog) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*indexReq)
		if req.Doc == nil || req.Doc.ID == "" {
			return nil, fmt.Errorf("document id is required")
		}
		records := indexable.NormalizeDocument(req.Doc, cat.Table())
		if err := st.ReplaceDocument(ctx, req.Doc.ID, records); err != nil {
			return nil, err
		}
		return indexResponse{DocID: req.Doc.ID, Records: len(records)}, nil
	}
}

func searchEndpoint(st *store.Store) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*searchReq)
		return st.Search(ctx, req.Query, req.Limit)
	}
}

func facetsEndpoint(st *store.Store) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*facetsReq)
		facets, err := st.FacetCounts(ctx, req.Type, req.Limit)
		if err != nil {
			return nil, err
		}
		if facets == nil {
			facets = []store.FacetCount{}
		}
		return facetsResponse{Facets: facets}, nil
	}
}

func languagesEndpoint(cat *lang.Catalog) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return languagesResponse{Languages: cat.Table().Entries()}, nil
	}
}
