package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/store"
)

func parsePagination(r *http.Request) store.Pagination {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return store.Pagination{Page: page, PageSize: pageSize}
}

func parseIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func parseUUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseTime(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// parseMes validates a YYYY-MM month key.
func parseMes(raw string) (string, bool) {
	if _, err := time.Parse("2006-01", raw); err != nil {
		return "", false
	}
	return raw, true
}
