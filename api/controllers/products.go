package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/simplefs/catalog-backend/api/responses"
	"github.com/simplefs/catalog-backend/internal/catalog"
	"github.com/simplefs/catalog-backend/internal/options"
	"github.com/simplefs/catalog-backend/pkg/logger"
)

type searchService interface {
	Search(ctx context.Context, params url.Values) (*catalog.SearchResult, error)
	ListOptions(ctx context.Context) ([]options.Option, error)
}

// ProductSearch evaluates the facet filter carried in the query string.
// Malformed filter parameters never fail the request; the only error path
// is the store being unreachable.
func ProductSearch(svc searchService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Search(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OptionsList returns every filterable option with its values, for clients
// building filter UIs.
func OptionsList(svc searchService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.ListOptions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"options": opts})
	}
}
