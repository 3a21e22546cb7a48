package controllers

import (
	"context"
	"net/http"

	"github.com/simplefs/catalog-backend/api/responses"
	"github.com/simplefs/catalog-backend/api/validators"
	"github.com/simplefs/catalog-backend/internal/catalog"
	"github.com/simplefs/catalog-backend/pkg/logger"
	"github.com/simplefs/catalog-backend/pkg/pagination"
)

type itemLister interface {
	ListItems(ctx context.Context, page pagination.Page) (*catalog.ItemsPage, error)
}

// AdminItems serves the paged product listing in the envelope the admin
// frontend expects: {"result":{"success":...,"result":{"data":...,"meta":...}}}.
func AdminItems(svc itemLister, pageSize int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNum, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteLegacy(w, http.StatusBadRequest, false, nil)
			return
		}

		page, err := svc.ListItems(r.Context(), pagination.NewPage(pageNum, pageSize))
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "admin listing failed", err)
			}
			responses.WriteLegacy(w, http.StatusServiceUnavailable, false, nil)
			return
		}
		responses.WriteLegacy(w, http.StatusOK, true, page)
	}
}
