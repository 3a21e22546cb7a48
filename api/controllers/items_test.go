package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simplefs/catalog-backend/internal/catalog"
	"github.com/simplefs/catalog-backend/pkg/pagination"
)

type stubItemLister struct {
	page     *catalog.ItemsPage
	err      error
	lastPage pagination.Page
}

func (s *stubItemLister) ListItems(_ context.Context, page pagination.Page) (*catalog.ItemsPage, error) {
	s.lastPage = page
	return s.page, s.err
}

func TestAdminItemsEnvelope(t *testing.T) {
	lister := &stubItemLister{page: &catalog.ItemsPage{
		Data: []catalog.ItemRow{{ID: 1, Name: "Widget"}},
		Meta: pagination.Meta{Page: 2, Pages: 3},
	}}
	handler := AdminItems(lister, 20, nil)

	req := httptest.NewRequest(http.MethodGet, "/items?page=2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if lister.lastPage.Number != 2 || lister.lastPage.Size != 20 {
		t.Fatalf("page = %+v", lister.lastPage)
	}

	var body struct {
		Result struct {
			Success bool `json:"success"`
			Result  struct {
				Data []struct {
					ID   int64  `json:"id"`
					Name string `json:"name"`
				} `json:"data"`
				Meta struct {
					Page  int `json:"page"`
					Pages int `json:"pages"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if !body.Result.Success {
		t.Fatal("success flag false")
	}
	if len(body.Result.Result.Data) != 1 || body.Result.Result.Data[0].Name != "Widget" {
		t.Fatalf("data = %+v", body.Result.Result.Data)
	}
	if body.Result.Result.Meta.Page != 2 || body.Result.Result.Meta.Pages != 3 {
		t.Fatalf("meta = %+v", body.Result.Result.Meta)
	}
}

func TestAdminItemsDefaultsToFirstPage(t *testing.T) {
	lister := &stubItemLister{page: &catalog.ItemsPage{Meta: pagination.Meta{Page: 1, Pages: 1}}}
	handler := AdminItems(lister, 20, nil)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if lister.lastPage.Number != 1 {
		t.Fatalf("page number = %d, want 1", lister.lastPage.Number)
	}
}

func TestAdminItemsRejectsGarbagePage(t *testing.T) {
	lister := &stubItemLister{}
	handler := AdminItems(lister, 20, nil)

	req := httptest.NewRequest(http.MethodGet, "/items?page=two", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminItemsStoreFailure(t *testing.T) {
	lister := &stubItemLister{err: errors.New("connection refused")}
	handler := AdminItems(lister, 20, nil)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
