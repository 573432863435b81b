package utils

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// IntParam reads a positive integer path parameter.
func IntParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
