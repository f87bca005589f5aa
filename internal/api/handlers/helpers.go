// Package handlers implements the HTTP endpoints.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/confguard/confguard/internal/pkg/errors"
	"github.com/confguard/confguard/internal/pkg/utils"
)

// writeErr renders any error through the response envelope, wrapping
// unexpected ones as internal
func writeErr(w http.ResponseWriter, err error) {
	utils.WriteError(w, errors.From(err))
}

// pathID parses a numeric URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("invalid " + name)
	}
	return id, nil
}
