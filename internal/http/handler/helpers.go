package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/stocklight/inventory-backend/internal/repository"
	"github.com/stocklight/inventory-backend/internal/service"
)

func parsePathID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// parseListQuery never rejects a request. Out-of-range page and limit clamp to
// the defaults, and sort/order pass through raw: the repository applies the
// allow-list fallback.
func parseListQuery(r *http.Request) service.ListProductsInput {
	q := r.URL.Query()

	page := repository.DefaultPage
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 1 {
		page = v
	}
	limit := repository.DefaultLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v >= 1 {
		limit = v
		if limit > repository.MaxLimit {
			limit = repository.MaxLimit
		}
	}

	return service.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
}

type paginationMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}
