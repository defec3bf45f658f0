// Package controllers translates HTTP requests into service calls and
// service results into the JSON envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

// pathID parses the {id} URL parameter. A malformed ID is reported the
// same way as a missing record.
func pathID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fail maps service errors onto envelope responses.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInsufficientStock):
		response.Conflict(w, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrReasonRequired):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
