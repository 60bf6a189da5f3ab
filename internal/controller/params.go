// internal/controller/params.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pageParams reads page/page_size query parameters with listing defaults.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

// idParam parses a numeric path parameter.
func idParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
